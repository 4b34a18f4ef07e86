package render

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/invoicepress/invoicepress/invoice"
	"github.com/invoicepress/invoicepress/responses"
)

type renderRequest struct {
	Invoice *invoice.Invoice `json:"invoice"`
	Style   *invoice.Style   `json:"style"`
}

// PreviewHandler handles POST /api/invoices/preview: same pipeline as
// download, plus the preview stamp, served inline.
type PreviewHandler struct{}

func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveRender(w, r, true)
}

// DownloadHandler handles POST /api/invoices/download: the final document as
// a save-as attachment.
type DownloadHandler struct{}

func (h *DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	serveRender(w, r, false)
}

func serveRender(w http.ResponseWriter, r *http.Request, isPreview bool) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Invoice == nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, "invoice payload is required")
		return
	}
	if req.Style == nil {
		req.Style = invoice.DefaultStyle()
	}
	if err := req.Style.Validate(); err != nil {
		responses.WriteSimpleErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	// Derived totals are never trusted from the wire.
	req.Invoice.Recalculate()

	pdfBytes, err := Render(req.Invoice, req.Style, isPreview)
	if err != nil {
		log.Printf("[ERROR] rendering invoice %s: %v", req.Invoice.Number, err)
		responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "failed to generate document")
		return
	}

	if isPreview {
		responses.WritePDFInline(w, req.Invoice.Filename(), pdfBytes)
	} else {
		responses.WritePDFAttachment(w, req.Invoice.Filename(), pdfBytes)
	}
}
