package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invoicepress/invoicepress/invoice"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		layout invoice.Layout
		scale  invoice.FontScale
		want   Geometry
	}{
		{invoice.LayoutStandard, invoice.ScaleSmall, Geometry{Margin: 50, LineHeight: 16, FontSize: 10, TitleFontSize: 18, SectionSpacing: 2, ContentSpacing: 1}},
		{invoice.LayoutStandard, invoice.ScaleMedium, Geometry{Margin: 50, LineHeight: 20, FontSize: 12, TitleFontSize: 22, SectionSpacing: 2, ContentSpacing: 1}},
		{invoice.LayoutStandard, invoice.ScaleLarge, Geometry{Margin: 50, LineHeight: 24, FontSize: 14, TitleFontSize: 26, SectionSpacing: 2, ContentSpacing: 1}},
		{invoice.LayoutCompact, invoice.ScaleSmall, Geometry{Margin: 40, LineHeight: 14, FontSize: 9, TitleFontSize: 16, SectionSpacing: 1.5, ContentSpacing: 0.5}},
		{invoice.LayoutCompact, invoice.ScaleMedium, Geometry{Margin: 40, LineHeight: 16, FontSize: 10, TitleFontSize: 18, SectionSpacing: 1.5, ContentSpacing: 0.5}},
		{invoice.LayoutCompact, invoice.ScaleLarge, Geometry{Margin: 40, LineHeight: 20, FontSize: 12, TitleFontSize: 22, SectionSpacing: 1.5, ContentSpacing: 0.5}},
		{invoice.LayoutDetailed, invoice.ScaleSmall, Geometry{Margin: 60, LineHeight: 18, FontSize: 11, TitleFontSize: 20, SectionSpacing: 3, ContentSpacing: 1.5}},
		{invoice.LayoutDetailed, invoice.ScaleMedium, Geometry{Margin: 60, LineHeight: 22, FontSize: 13, TitleFontSize: 24, SectionSpacing: 3, ContentSpacing: 1.5}},
		{invoice.LayoutDetailed, invoice.ScaleLarge, Geometry{Margin: 60, LineHeight: 26, FontSize: 15, TitleFontSize: 28, SectionSpacing: 3, ContentSpacing: 1.5}},
	}
	for _, tc := range cases {
		t.Run(string(tc.layout)+"/"+string(tc.scale), func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.layout, tc.scale))
		})
	}
}
