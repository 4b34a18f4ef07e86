// Package render lays out an invoice onto a single fixed-size page and
// serializes it to PDF bytes. The pipeline runs three stages in strict
// sequence: geometry resolution, composition into draw instructions, and
// encoding. It is stateless; concurrent renders share nothing.
package render

import (
	"log"

	"github.com/invoicepress/invoicepress/invoice"
)

// Render produces the document bytes for one invoice. With isPreview set,
// the output carries the preview stamp and differs from the final document
// by that stamp only.
//
// The style must already satisfy Style.Validate; Render re-checks and fails
// fast rather than drawing with an unrecognized value.
func Render(inv *invoice.Invoice, st *invoice.Style, isPreview bool) ([]byte, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	g := Resolve(st.Layout, st.FontScale)

	enc, err := NewEncoder(st.FontFamily)
	if err != nil {
		return nil, err
	}

	var logo *Logo
	if inv.Logo != "" {
		logo, err = DecodeLogo(inv.Logo)
		if err != nil {
			// A corrupt logo never aborts document generation.
			log.Printf("[WARN] skipping logo: %v", err)
			logo = nil
		}
	}

	ops := Compose(inv, st, g, logo, enc, isPreview)
	if err = enc.Apply(ops); err != nil {
		return nil, err
	}
	return enc.Bytes()
}
