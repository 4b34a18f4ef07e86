package routing

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/invoicepress/invoicepress/responses"
)

// RecoverWrapper converts a handler panic into a JSON 500 response.
// The panic value and stack trace go to the log only; the client sees a
// generic message. Install it as the outermost wrapper of a route group so
// it also covers the other wrappers.
func RecoverWrapper(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[PANIC] %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				responses.WriteSimpleErrorJSON(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		inner.ServeHTTP(w, r)
	})
}
