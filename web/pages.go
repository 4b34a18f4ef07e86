package web

import (
	"log"
	"net/http"

	"github.com/invoicepress/invoicepress/tpl"
)

// LandingHandler serves the landing page with the email-capture form.
type LandingHandler struct {
	Templates *tpl.HTMLTemplateStore
	AppName   string
}

func (h *LandingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := map[string]any{"AppName": h.AppName}
	if err := h.Templates.Render(w, "landing", data); err != nil {
		log.Printf("[ERROR] rendering landing page: %v", err)
	}
}
