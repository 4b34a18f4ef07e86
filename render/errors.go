package render

import "errors"

// Render failure taxonomy. Style validation errors surface from the invoice
// package before any of these can occur.
var (
	// ErrAssetDecode marks logo bytes unparseable as PNG or JPEG. Recovered
	// locally: the render continues without the logo.
	ErrAssetDecode = errors.New("render: undecodable logo image")

	// ErrFontEmbed is fatal. Width measurement and all positioning depend on
	// the glyph programs, so nothing can be drawn without them.
	ErrFontEmbed = errors.New("render: glyph program embed failed")

	// ErrEncode is fatal: the underlying document serialization failed.
	ErrEncode = errors.New("render: document serialization failed")
)
