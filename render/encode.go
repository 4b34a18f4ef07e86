package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoicepress/invoicepress/invoice"
)

// glyphPrograms maps the configurable family to the embedded core font.
// Arial has no distinct glyph program available and falls back to the same
// programs as helvetica, bold and regular.
var glyphPrograms = map[invoice.FontFamily]string{
	invoice.FontHelvetica: "Helvetica",
	invoice.FontTimes:     "Times",
	invoice.FontCourier:   "Courier",
	invoice.FontArial:     "Helvetica",
}

// Pinned so two renders of the same input are byte-identical. The core
// carries no other timestamp metadata.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Encoder serializes draw instructions onto one fresh A4 page. It also
// serves as the compositor's width Measurer, since advance widths come from
// the embedded glyph programs. One encoder per render; nothing is pooled.
type Encoder struct {
	doc    *gofpdf.Fpdf
	family string
}

var _ Measurer = (*Encoder)(nil)

// NewEncoder creates the single-page document and embeds the regular and
// bold glyph programs up front, so an embed failure surfaces before any
// composition work.
func NewEncoder(family invoice.FontFamily) (*Encoder, error) {
	program, ok := glyphPrograms[family]
	if !ok {
		return nil, fmt.Errorf("%w: no program for family %q", ErrFontEmbed, family)
	}

	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	doc.SetCreationDate(creationDate)
	// Resource catalogs are emitted in map order unless sorted; with two
	// glyph programs embedded that order varies per process.
	doc.SetCatalogSort(true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	doc.SetFont(program, "", 12)
	doc.SetFont(program, "B", 12)
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrFontEmbed, family, err)
	}
	return &Encoder{doc: doc, family: program}, nil
}

// TextWidth measures the advance width of text at the given size.
func (e *Encoder) TextWidth(text string, size float64, bold bool) float64 {
	e.doc.SetFont(e.family, fontStyle(bold), size)
	return e.doc.GetStringWidth(text)
}

// Apply executes the instruction list in order, converting from the
// compositor's bottom-up space to the library's top-down space.
func (e *Encoder) Apply(ops []Op) error {
	for _, op := range ops {
		switch o := op.(type) {
		case TextOp:
			e.applyText(o)
		case LineOp:
			e.doc.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
			e.doc.SetLineWidth(o.Width)
			e.doc.Line(o.X1, PageHeight-o.Y1, o.X2, PageHeight-o.Y2)
		case RectOp:
			e.doc.SetDrawColor(o.Color.R, o.Color.G, o.Color.B)
			e.doc.SetLineWidth(o.StrokeWidth)
			e.doc.Rect(o.X, PageHeight-o.Y-o.H, o.W, o.H, "D")
		case DotOp:
			e.doc.SetFillColor(o.Color.R, o.Color.G, o.Color.B)
			e.doc.Circle(o.X, PageHeight-o.Y, o.R, "F")
		case ImageOp:
			e.applyImage(o)
		}
	}
	if err := e.doc.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

func (e *Encoder) applyText(o TextOp) {
	e.doc.SetFont(e.family, fontStyle(o.Bold), o.Size)
	e.doc.SetTextColor(o.Color.R, o.Color.G, o.Color.B)

	translucent := o.Alpha < 1
	if translucent {
		e.doc.SetAlpha(o.Alpha, "Normal")
	}
	x, y := o.X, PageHeight-o.Y
	if o.Rotate != 0 {
		e.doc.TransformBegin()
		e.doc.TransformRotate(o.Rotate, x, y)
		e.doc.Text(x, y, o.Text)
		e.doc.TransformEnd()
	} else {
		e.doc.Text(x, y, o.Text)
	}
	if translucent {
		e.doc.SetAlpha(1, "Normal")
	}
}

func (e *Encoder) applyImage(o ImageOp) {
	opts := gofpdf.ImageOptions{ImageType: o.Image.Format}
	e.doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(o.Image.Data))
	e.doc.ImageOptions("logo", o.X, PageHeight-o.Y-o.H, o.W, o.H, false, opts, 0, "")
}

// Bytes closes the document and returns the final byte stream.
func (e *Encoder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}
