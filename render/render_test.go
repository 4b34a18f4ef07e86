package render

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicepress/invoicepress/invoice"
)

func renderInvoice() *invoice.Invoice {
	inv := composeInvoice()
	inv.ClientAddress = "742 Evergreen Terrace"
	inv.ClientEmail = "billing@globex.test"
	inv.Description = "Design refresh\nNew landing page"
	return inv
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(renderInvoice(), invoice.DefaultStyle(), false)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderIsDeterministic(t *testing.T) {
	inv := renderInvoice()
	st := invoice.DefaultStyle()

	first, err := Render(inv, st, false)
	require.NoError(t, err)
	second, err := Render(inv, st, false)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestRenderArialMatchesHelvetica(t *testing.T) {
	inv := renderInvoice()

	helvetica := invoice.DefaultStyle()
	arial := invoice.DefaultStyle()
	arial.FontFamily = invoice.FontArial

	a, err := Render(inv, helvetica, false)
	require.NoError(t, err)
	b, err := Render(inv, arial, false)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(a, b))
}

func TestRenderPreviewDiffersFromFinal(t *testing.T) {
	inv := renderInvoice()
	st := invoice.DefaultStyle()

	preview, err := Render(inv, st, true)
	require.NoError(t, err)
	final, err := Render(inv, st, false)
	require.NoError(t, err)

	assert.False(t, bytes.Equal(preview, final))
}

func TestRenderAppliesWatermarkOpacity(t *testing.T) {
	renderAt := func(opacity float64) []byte {
		st := invoice.DefaultStyle()
		st.Watermark = true
		st.WatermarkText = "CONFIDENTIAL"
		st.WatermarkOpacity = opacity
		out, err := Render(renderInvoice(), st, false)
		require.NoError(t, err)
		return out
	}

	opaque := renderAt(1)
	assert.False(t, bytes.Equal(renderAt(0.5), opaque))
	// Opacity zero means fully transparent, not a fall-through to opaque.
	assert.False(t, bytes.Equal(renderAt(0), opaque))
}

func TestRenderRejectsInvalidStyle(t *testing.T) {
	st := invoice.DefaultStyle()
	st.Layout = "grid"

	_, err := Render(renderInvoice(), st, false)
	var styleErr *invoice.StyleError
	assert.ErrorAs(t, err, &styleErr)
}

func TestRenderRecoversFromBrokenLogo(t *testing.T) {
	st := invoice.DefaultStyle()

	clean := renderInvoice()
	without, err := Render(clean, st, false)
	require.NoError(t, err)

	broken := renderInvoice()
	broken.Logo = "!!! definitely not base64 !!!"
	with, err := Render(broken, st, false)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(without, with))
}

func TestRenderEmbedsLogo(t *testing.T) {
	inv := renderInvoice()
	inv.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodePNG(t, 40, 20))

	withLogo, err := Render(inv, invoice.DefaultStyle(), false)
	require.NoError(t, err)

	plain, err := Render(renderInvoice(), invoice.DefaultStyle(), false)
	require.NoError(t, err)

	assert.Greater(t, len(withLogo), len(plain))
}

func TestRenderAllFontFamilies(t *testing.T) {
	for _, family := range []invoice.FontFamily{
		invoice.FontHelvetica, invoice.FontTimes, invoice.FontCourier, invoice.FontArial,
	} {
		t.Run(string(family), func(t *testing.T) {
			st := invoice.DefaultStyle()
			st.FontFamily = family
			out, err := Render(renderInvoice(), st, false)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}
