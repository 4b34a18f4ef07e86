package invoice

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Status is informational only. Rendering never branches on it.
type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

// Item is one commercial line of an invoice.
// Quantity/Rate/Amount are decimals-as-text; Amount is derived, never authored.
type Item struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// Invoice is the full document model handed to the render pipeline.
// All party fields are optional; empty lines are skipped at render time.
type Invoice struct {
	Number    string `json:"number"`
	Date      string `json:"date"`
	DueDate   string `json:"due_date"`
	Status    Status `json:"status"`

	BusinessName    string `json:"business_name"`
	BusinessAddress string `json:"business_address"`
	BusinessEmail   string `json:"business_email"`
	BusinessPhone   string `json:"business_phone"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`

	ProjectTitle string `json:"project_title"`
	Description  string `json:"description"`

	Items    []Item `json:"items"`
	Currency string `json:"currency"`
	TaxRate  string `json:"tax_rate"`

	// Derived by Recalculate. Never independently authored.
	Subtotal    string `json:"subtotal"`
	TaxAmount   string `json:"tax_amount"`
	TotalAmount string `json:"total_amount"`

	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
	Terms         string `json:"terms"`

	// Logo is an optional raster image: raw base64 or a data URL.
	Logo string `json:"logo,omitempty"`
}

// New returns an invoice populated with the stock defaults:
// a random INV-#### number, issue date today, due date +30 days,
// and one blank line item.
func New() *Invoice {
	now := time.Now()
	return &Invoice{
		Number:        NewNumber(),
		Date:          now.Format("2006-01-02"),
		DueDate:       now.AddDate(0, 0, 30).Format("2006-01-02"),
		Status:        StatusDraft,
		Items:         []Item{{ID: "1", Description: "", Quantity: "1", Rate: "", Amount: "0"}},
		Currency:      "USD",
		TaxRate:       "0",
		Subtotal:      "0",
		TaxAmount:     "0",
		TotalAmount:   "0",
		PaymentMethod: "Bank Transfer",
		Terms:         "Payment is due within 30 days",
	}
}

// NewNumber generates the default document number pattern INV-####.
func NewNumber() string {
	return fmt.Sprintf("INV-%04d", rand.IntN(10000))
}

// Recalculate rebuilds every derived money field from the line items and the
// tax rate:
//
//	amount_i = round(quantity_i * rate_i, 2)
//	subtotal = sum(amount_i)
//	tax      = round(subtotal * taxRate/100, 2)
//	total    = subtotal + tax
//
// Must be called after any mutation of the item set or the tax rate.
func (inv *Invoice) Recalculate() {
	subtotal := 0.0
	for i := range inv.Items {
		it := &inv.Items[i]
		amount := round2(parseDecimal(it.Quantity) * parseDecimal(it.Rate))
		it.Amount = formatDecimal(amount)
		subtotal += amount
	}
	tax := round2(subtotal * parseDecimal(inv.TaxRate) / 100)
	inv.Subtotal = formatDecimal(subtotal)
	inv.TaxAmount = formatDecimal(tax)
	inv.TotalAmount = formatDecimal(subtotal + tax)
}

// parseDecimal coerces decimal-as-text; unparseable input counts as zero.
func parseDecimal(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func formatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

var nonAlnumRuns = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename derives the download filename from the document number and the
// client name, with non-alphanumeric runs collapsed to underscores.
func (inv *Invoice) Filename() string {
	return fmt.Sprintf(
		"Invoice_%s_%s.pdf",
		nonAlnumRuns.ReplaceAllString(inv.Number, "_"),
		nonAlnumRuns.ReplaceAllString(inv.ClientName, "_"),
	)
}
