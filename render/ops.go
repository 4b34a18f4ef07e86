package render

import "strconv"

// Draw instructions emitted by the compositor and executed by the encoder.
// Coordinates are bottom-up page space (origin bottom-left, y grows upward);
// the encoder converts to the target library's space. Ops composite strictly
// in slice order, which is how the watermark stays beneath all text.

type Op interface {
	op()
}

// TextOp positions a single run of text by its baseline. Color is applied to
// the whole run; Alpha 1 is opaque; Rotate is degrees counter-clockwise
// around the anchor point.
type TextOp struct {
	X, Y   float64
	Text   string
	Size   float64
	Bold   bool
	Color  RGB
	Alpha  float64
	Rotate float64
}

// LineOp is a stroked segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          RGB
}

// RectOp is a stroked (not filled) rectangle; X,Y is the bottom-left corner.
type RectOp struct {
	X, Y, W, H  float64
	StrokeWidth float64
	Color       RGB
}

// DotOp is a filled circle.
type DotOp struct {
	X, Y, R float64
	Color   RGB
}

// ImageOp places a decoded raster asset; X,Y is the bottom-left corner.
type ImageOp struct {
	Image      *Logo
	X, Y, W, H float64
}

func (TextOp) op()  {}
func (LineOp) op()  {}
func (RectOp) op()  {}
func (DotOp) op()   {}
func (ImageOp) op() {}

// RGB holds an 8-bit color triple.
type RGB struct {
	R, G, B int
}

// HexToRGB converts a #rrggbb (hash optional) hex string. Anything
// unparseable yields black, matching the form's lenient behavior.
func HexToRGB(hex string) RGB {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return RGB{}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// Measurer reports the advance width of text at a given size using the
// document's glyph programs. Implemented by the encoder; fakeable in tests.
type Measurer interface {
	TextWidth(text string, size float64, bold bool) float64
}
