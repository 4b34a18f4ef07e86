package responses

import (
	"fmt"
	"log"
	"net/http"
)

// WritePDFInline serves PDF bytes for in-browser preview display.
func WritePDFInline(w http.ResponseWriter, filename string, PDFBytes []byte) {
	writePDF(w, "inline", filename, PDFBytes)
}

// WritePDFAttachment serves PDF bytes as a save-as download.
func WritePDFAttachment(w http.ResponseWriter, filename string, PDFBytes []byte) {
	writePDF(w, "attachment", filename, PDFBytes)
}

func writePDF(w http.ResponseWriter, disposition string, filename string, PDFBytes []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
	if _, err := w.Write(PDFBytes); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}
