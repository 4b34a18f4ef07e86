package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepress/invoicepress/invoice"
)

func postRender(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/preview", strings.NewReader(body))
	h.ServeHTTP(rec, req)
	return rec
}

func renderBody(t *testing.T, inv *invoice.Invoice) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"invoice": inv})
	require.NoError(t, err)
	return string(raw)
}

func TestServeRender(t *testing.T) {
	t.Run("preview serves inline pdf", func(t *testing.T) {
		rec := postRender(&PreviewHandler{}, renderBody(t, renderInvoice()))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "inline")
		assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	})

	t.Run("download serves attachment with derived filename", func(t *testing.T) {
		rec := postRender(&DownloadHandler{}, renderBody(t, renderInvoice()))

		require.Equal(t, http.StatusOK, rec.Code)
		disposition := rec.Header().Get("Content-Disposition")
		assert.Contains(t, disposition, "attachment")
		assert.Contains(t, disposition, "Invoice_0042_Globex.pdf")
	})

	t.Run("missing invoice", func(t *testing.T) {
		rec := postRender(&PreviewHandler{}, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := postRender(&PreviewHandler{}, `{nope`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid style", func(t *testing.T) {
		raw, err := json.Marshal(map[string]any{
			"invoice": renderInvoice(),
			"style":   map[string]any{"layout": "grid"},
		})
		require.NoError(t, err)

		rec := postRender(&PreviewHandler{}, string(raw))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wire totals are recomputed", func(t *testing.T) {
		inv := renderInvoice()
		inv.Items = []invoice.Item{{Quantity: "2", Rate: "150"}}
		inv.TaxRate = "10"
		inv.TotalAmount = "1.00" // authored total must be ignored

		rec := postRender(&DownloadHandler{}, renderBody(t, inv))
		require.Equal(t, http.StatusOK, rec.Code)

		honest := renderInvoice()
		honest.Items = []invoice.Item{{Quantity: "2", Rate: "150"}}
		honest.TaxRate = "10"
		honest.Recalculate()
		want, err := Render(honest, invoice.DefaultStyle(), false)
		require.NoError(t, err)
		assert.Equal(t, want, rec.Body.Bytes())
	})
}
