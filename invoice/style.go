package invoice

import "fmt"

// Closed style dimensions. Unrecognized values are rejected here at the
// boundary, never deep inside the compositor.

type FontFamily string

const (
	FontHelvetica FontFamily = "helvetica"
	FontTimes     FontFamily = "times"
	FontCourier   FontFamily = "courier"
	FontArial     FontFamily = "arial" // no distinct glyph program; renders as helvetica
)

type FontScale string

const (
	ScaleSmall  FontScale = "small"
	ScaleMedium FontScale = "medium"
	ScaleLarge  FontScale = "large"
)

type Layout string

const (
	LayoutStandard Layout = "standard"
	LayoutCompact  Layout = "compact"
	LayoutDetailed Layout = "detailed"
)

type HeaderStyle string

const (
	HeaderCentered     HeaderStyle = "centered"
	HeaderLeftAligned  HeaderStyle = "left-aligned"
	HeaderRightAligned HeaderStyle = "right-aligned"
)

type BorderStyle string

const (
	BorderNone   BorderStyle = "none"
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// Style is the full rendering style configuration.
type Style struct {
	PrimaryColor   string      `json:"primary_color"`
	SecondaryColor string      `json:"secondary_color"`
	AccentColor    string      `json:"accent_color"`

	FontFamily  FontFamily  `json:"font_family"`
	FontScale   FontScale   `json:"font_size"`
	Layout      Layout      `json:"layout"`
	HeaderStyle HeaderStyle `json:"header_style"`

	ShowBorder  bool        `json:"show_border"`
	BorderStyle BorderStyle `json:"border_style"`

	Watermark        bool    `json:"watermark"`
	WatermarkText    string  `json:"watermark_text"`
	WatermarkOpacity float64 `json:"watermark_opacity"`
}

// DefaultStyle mirrors the stock configuration of the creation form.
func DefaultStyle() *Style {
	return &Style{
		PrimaryColor:     "#1f2937",
		SecondaryColor:   "#111827",
		AccentColor:      "#4b5563",
		FontFamily:       FontHelvetica,
		FontScale:        ScaleMedium,
		Layout:           LayoutStandard,
		HeaderStyle:      HeaderLeftAligned,
		ShowBorder:       true,
		BorderStyle:      BorderSolid,
		Watermark:        false,
		WatermarkText:    "CONFIDENTIAL",
		WatermarkOpacity: 0.1,
	}
}

// StyleError reports an unrecognized value on one of the closed style
// dimensions.
type StyleError struct {
	Field string
	Value string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("invalid style config: unsupported %s %q", e.Field, e.Value)
}

// Validate rejects any enum value outside its closed set. Must pass before
// any drawing begins.
func (s *Style) Validate() error {
	switch s.FontFamily {
	case FontHelvetica, FontTimes, FontCourier, FontArial:
	default:
		return &StyleError{Field: "font family", Value: string(s.FontFamily)}
	}
	switch s.FontScale {
	case ScaleSmall, ScaleMedium, ScaleLarge:
	default:
		return &StyleError{Field: "font size", Value: string(s.FontScale)}
	}
	switch s.Layout {
	case LayoutStandard, LayoutCompact, LayoutDetailed:
	default:
		return &StyleError{Field: "layout", Value: string(s.Layout)}
	}
	switch s.HeaderStyle {
	case HeaderCentered, HeaderLeftAligned, HeaderRightAligned:
	default:
		return &StyleError{Field: "header style", Value: string(s.HeaderStyle)}
	}
	switch s.BorderStyle {
	case BorderNone, BorderSolid, BorderDashed, BorderDotted:
	default:
		return &StyleError{Field: "border style", Value: string(s.BorderStyle)}
	}
	return nil
}
