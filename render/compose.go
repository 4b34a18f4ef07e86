package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/invoicepress/invoicepress/invoice"
)

const previewStamp = "PREVIEW COPY - NOT FOR OFFICIAL USE"

// Compose turns one invoice plus resolved geometry into the ordered draw
// instruction list for a single page. Layout is a strict top-down cursor:
// every section takes the current y and returns the next one. Compose itself
// performs no I/O and touches no shared state.
func Compose(inv *invoice.Invoice, st *invoice.Style, g Geometry, logo *Logo, m Measurer, preview bool) []Op {
	c := &composer{
		inv:       inv,
		style:     st,
		g:         g,
		m:         m,
		primary:   HexToRGB(st.PrimaryColor),
		secondary: HexToRGB(st.SecondaryColor),
		accent:    HexToRGB(st.AccentColor),
	}

	if st.ShowBorder && st.BorderStyle != invoice.BorderNone {
		c.border()
	}
	if st.Watermark {
		c.watermark()
	}

	y := PageHeight - g.Margin
	if logo != nil {
		y = c.logo(y, logo)
	}
	y = c.title(y)
	y = c.dateLine(y)
	y = c.parties(y)
	y = c.project(y)
	y = c.payment(y)
	c.terms(y)

	if preview {
		c.stamp()
	}
	return c.ops
}

type composer struct {
	inv   *invoice.Invoice
	style *invoice.Style
	g     Geometry
	m     Measurer
	ops   []Op

	primary   RGB
	secondary RGB
	accent    RGB
}

func (c *composer) emit(op Op) {
	c.ops = append(c.ops, op)
}

func (c *composer) text(x, y float64, s string, size float64, bold bool, color RGB) {
	c.emit(TextOp{X: x, Y: y, Text: s, Size: size, Bold: bold, Color: color, Alpha: 1})
}

// label draws a bold section heading two points above body size.
func (c *composer) label(x, y float64, s string) {
	c.text(x, y, s, c.g.FontSize+2, true, c.primary)
}

// headerX resolves horizontal placement of header elements (logo, title,
// date line) for a given element width.
func (c *composer) headerX(width float64) float64 {
	switch c.style.HeaderStyle {
	case invoice.HeaderRightAligned:
		return PageWidth - c.g.Margin - width
	case invoice.HeaderCentered:
		return (PageWidth - width) / 2
	default: // left-aligned
		return c.g.Margin
	}
}

// border draws the page frame inset by the margin, in the primary color with
// a fixed 1pt stroke. Dashed and dotted variants emit one mark per full cell
// so the generated counts are deterministic: dashes every 10pt (5pt drawn),
// dots every 5pt.
func (c *composer) border() {
	m := c.g.Margin
	switch c.style.BorderStyle {
	case invoice.BorderSolid:
		c.emit(RectOp{X: m, Y: m, W: PageWidth - 2*m, H: PageHeight - 2*m, StrokeWidth: 1, Color: c.primary})

	case invoice.BorderDashed:
		// Top and bottom edges run the full page width.
		for k := 0; k < int(math.Floor(PageWidth/10)); k++ {
			x := float64(k) * 10
			c.emit(LineOp{X1: x, Y1: m, X2: x + 5, Y2: m, Width: 1, Color: c.primary})
			c.emit(LineOp{X1: x, Y1: PageHeight - m, X2: x + 5, Y2: PageHeight - m, Width: 1, Color: c.primary})
		}
		// Left and right edges run between the insets.
		for k := 0; k < int(math.Floor((PageHeight-2*m)/10)); k++ {
			y := m + float64(k)*10
			c.emit(LineOp{X1: m, Y1: y, X2: m, Y2: y + 5, Width: 1, Color: c.primary})
			c.emit(LineOp{X1: PageWidth - m, Y1: y, X2: PageWidth - m, Y2: y + 5, Width: 1, Color: c.primary})
		}

	case invoice.BorderDotted:
		for k := 0; k < int(math.Floor(PageWidth/5)); k++ {
			x := float64(k) * 5
			c.emit(DotOp{X: x, Y: m, R: 1, Color: c.primary})
			c.emit(DotOp{X: x, Y: PageHeight - m, R: 1, Color: c.primary})
		}
		for k := 0; k < int(math.Floor((PageHeight-2*m)/5)); k++ {
			y := m + float64(k)*5
			c.emit(DotOp{X: m, Y: y, R: 1, Color: c.primary})
			c.emit(DotOp{X: PageWidth - m, Y: y, R: 1, Color: c.primary})
		}
	}
}

// watermark is emitted before all text ops so later content stays legible:
// the encoder composites strictly in op order.
func (c *composer) watermark() {
	const size = 60
	w := c.m.TextWidth(c.style.WatermarkText, size, true)
	c.emit(TextOp{
		X:      (PageWidth - w) / 2,
		Y:      PageHeight / 2,
		Text:   c.style.WatermarkText,
		Size:   size,
		Bold:   true,
		Color:  c.accent,
		Alpha:  c.style.WatermarkOpacity,
		Rotate: -45,
	})
}

func (c *composer) logo(y float64, logo *Logo) float64 {
	lw := logoWidth(c.style.Layout)
	lh := float64(logo.Height) * lw / float64(logo.Width)
	c.emit(ImageOp{Image: logo, X: c.headerX(lw), Y: y - lh, W: lw, H: lh})
	return y - lh - c.g.LineHeight*c.g.SectionSpacing
}

func (c *composer) title(y float64) float64 {
	text := "INVOICE #" + c.inv.Number
	w := c.m.TextWidth(text, c.g.TitleFontSize, true)
	c.text(c.headerX(w), y, text, c.g.TitleFontSize, true, c.primary)
	return y - c.g.LineHeight*c.g.SectionSpacing
}

func (c *composer) dateLine(y float64) float64 {
	text := fmt.Sprintf("Issue Date: %s    Due Date: %s", c.inv.Date, c.inv.DueDate)
	w := c.m.TextWidth(text, c.g.FontSize, true)
	c.text(c.headerX(w), y, text, c.g.FontSize, true, c.secondary)
	return y - c.g.LineHeight*c.g.SectionSpacing
}

// partyLines builds the up-to-four contact lines of one party. Lines whose
// value is empty are omitted entirely and reserve no vertical space.
func partyLines(name, address, email, phone string) []string {
	var lines []string
	if name != "" {
		lines = append(lines, name)
	}
	if address != "" {
		lines = append(lines, address)
	}
	if email != "" {
		lines = append(lines, "Email: "+email)
	}
	if phone != "" {
		lines = append(lines, "Phone: "+phone)
	}
	return lines
}

func (c *composer) parties(y float64) float64 {
	business := partyLines(c.inv.BusinessName, c.inv.BusinessAddress, c.inv.BusinessEmail, c.inv.BusinessPhone)
	client := partyLines(c.inv.ClientName, c.inv.ClientAddress, c.inv.ClientEmail, c.inv.ClientPhone)

	if c.style.Layout == invoice.LayoutCompact {
		// Single column: From block, a content gap, then the To block.
		c.label(c.g.Margin, y, "From:")
		y -= c.g.LineHeight
		for _, line := range business {
			c.text(c.g.Margin, y, line, c.g.FontSize, false, c.secondary)
			y -= c.g.LineHeight
		}
		y -= c.g.LineHeight * c.g.ContentSpacing

		c.label(c.g.Margin, y, "To:")
		y -= c.g.LineHeight
		for _, line := range client {
			c.text(c.g.Margin, y, line, c.g.FontSize, false, c.secondary)
			y -= c.g.LineHeight
		}
		return y - c.g.LineHeight*c.g.SectionSpacing
	}

	// Two columns sharing the same starting y, each with its own cursor.
	columnWidth := (PageWidth - 3*c.g.Margin) / 2
	rightX := PageWidth - c.g.Margin - columnWidth

	c.label(c.g.Margin, y, "From:")
	businessY := y - c.g.LineHeight
	for _, line := range business {
		c.text(c.g.Margin, businessY, line, c.g.FontSize, false, c.secondary)
		businessY -= c.g.LineHeight
	}

	c.label(rightX, y, "To:")
	clientY := y - c.g.LineHeight
	for _, line := range client {
		c.text(rightX, clientY, line, c.g.FontSize, false, c.secondary)
		clientY -= c.g.LineHeight
	}

	// The taller column determines where the next section starts.
	y = math.Min(businessY, clientY) - c.g.LineHeight*c.g.SectionSpacing
	return y - c.g.LineHeight*c.g.SectionSpacing
}

func (c *composer) project(y float64) float64 {
	c.label(c.g.Margin, y, "Project Details:")
	y -= c.g.LineHeight
	c.text(c.g.Margin, y, "Title: "+c.inv.ProjectTitle, c.g.FontSize, false, c.secondary)
	y -= c.g.LineHeight

	if c.inv.Description != "" {
		c.text(c.g.Margin, y, "Description:", c.g.FontSize, true, c.primary)
		y -= c.g.LineHeight
		for _, line := range strings.Split(c.inv.Description, "\n") {
			c.text(c.g.Margin, y, line, c.g.FontSize, false, c.secondary)
			y -= c.g.LineHeight
		}
		y -= c.g.LineHeight * c.g.ContentSpacing
	}
	return y
}

func (c *composer) payment(y float64) float64 {
	x := PageWidth - c.g.Margin - paymentOffset(c.style.Layout)
	c.label(x, y, "Payment Details:")
	y -= c.g.LineHeight

	lines := []string{
		fmt.Sprintf("Subtotal: %s %s", c.inv.Currency, c.inv.Subtotal),
		fmt.Sprintf("Tax Rate: %s%%", c.inv.TaxRate),
		fmt.Sprintf("Tax Amount: %s %s", c.inv.Currency, c.inv.TaxAmount),
		fmt.Sprintf("Total Amount: %s %s", c.inv.Currency, c.inv.TotalAmount),
		fmt.Sprintf("Payment Method: %s", c.inv.PaymentMethod),
	}
	for _, line := range lines {
		c.text(x, y, line, c.g.FontSize, false, c.secondary)
		y -= c.g.LineHeight
	}
	return y - c.g.LineHeight*c.g.SectionSpacing
}

func (c *composer) terms(y float64) float64 {
	c.label(c.g.Margin, y, "Terms & Conditions:")
	y -= c.g.LineHeight
	for _, line := range strings.Split(c.inv.Terms, "\n") {
		c.text(c.g.Margin, y, line, c.g.FontSize, false, c.secondary)
		y -= c.g.LineHeight
	}
	return y
}

// stamp marks preview renders in the bottom-right corner. Never present in
// the downloadable document.
func (c *composer) stamp() {
	c.text(PageWidth-c.g.Margin-200, c.g.Margin, previewStamp, 10, true, RGB{R: 204})
}
