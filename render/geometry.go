package render

import "github.com/invoicepress/invoicepress/invoice"

// A4 page surface in points. One page per document.
const (
	PageWidth  = 595.28
	PageHeight = 841.89
)

// Geometry is the resolved numeric set driving all placement. Recomputed per
// render; nothing is cached across invocations.
type Geometry struct {
	Margin         float64
	LineHeight     float64
	FontSize       float64
	TitleFontSize  float64
	SectionSpacing float64
	ContentSpacing float64
}

// One lookup table per orthogonal style dimension, composed by Resolve.

type layoutPreset struct {
	margin         float64
	sectionSpacing float64
	contentSpacing float64
	logoWidth      float64
	paymentOffset  float64 // right-anchor distance of the payment block
}

var layoutPresets = map[invoice.Layout]layoutPreset{
	invoice.LayoutStandard: {margin: 50, sectionSpacing: 2, contentSpacing: 1, logoWidth: 100, paymentOffset: 200},
	invoice.LayoutCompact:  {margin: 40, sectionSpacing: 1.5, contentSpacing: 0.5, logoWidth: 80, paymentOffset: 200},
	invoice.LayoutDetailed: {margin: 60, sectionSpacing: 3, contentSpacing: 1.5, logoWidth: 120, paymentOffset: 250},
}

type sizePreset struct {
	lineHeight    float64
	fontSize      float64
	titleFontSize float64
}

var sizePresets = map[invoice.Layout]map[invoice.FontScale]sizePreset{
	invoice.LayoutStandard: {
		invoice.ScaleSmall:  {lineHeight: 16, fontSize: 10, titleFontSize: 18},
		invoice.ScaleMedium: {lineHeight: 20, fontSize: 12, titleFontSize: 22},
		invoice.ScaleLarge:  {lineHeight: 24, fontSize: 14, titleFontSize: 26},
	},
	invoice.LayoutCompact: {
		invoice.ScaleSmall:  {lineHeight: 14, fontSize: 9, titleFontSize: 16},
		invoice.ScaleMedium: {lineHeight: 16, fontSize: 10, titleFontSize: 18},
		invoice.ScaleLarge:  {lineHeight: 20, fontSize: 12, titleFontSize: 22},
	},
	invoice.LayoutDetailed: {
		invoice.ScaleSmall:  {lineHeight: 18, fontSize: 11, titleFontSize: 20},
		invoice.ScaleMedium: {lineHeight: 22, fontSize: 13, titleFontSize: 24},
		invoice.ScaleLarge:  {lineHeight: 26, fontSize: 15, titleFontSize: 28},
	},
}

// Resolve maps (layout, scale) to concrete geometry. Pure and total over the
// nine valid combinations; invalid values must be rejected by
// Style.Validate before this is reached.
func Resolve(layout invoice.Layout, scale invoice.FontScale) Geometry {
	lp := layoutPresets[layout]
	sp := sizePresets[layout][scale]
	return Geometry{
		Margin:         lp.margin,
		LineHeight:     sp.lineHeight,
		FontSize:       sp.fontSize,
		TitleFontSize:  sp.titleFontSize,
		SectionSpacing: lp.sectionSpacing,
		ContentSpacing: lp.contentSpacing,
	}
}

func logoWidth(layout invoice.Layout) float64 {
	return layoutPresets[layout].logoWidth
}

func paymentOffset(layout invoice.Layout) float64 {
	return layoutPresets[layout].paymentOffset
}
