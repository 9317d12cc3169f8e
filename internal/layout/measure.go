// Package layout measures text with the PDF core font metrics, wraps
// paragraphs into positioned styled lines, and fits images to the content
// column. It performs no page breaking; pagination consumes its output.
package layout

import (
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/reportkit/reportkit/internal/style"
)

// Measurer provides string widths through a scratch PDF document that is
// never output. Each generation builds its own Measurer, so concurrent
// generations stay independent.
type Measurer struct {
	pdf *fpdf.Fpdf
}

// NewMeasurer creates a measurer with a fresh scratch document.
func NewMeasurer() *Measurer {
	p := fpdf.New("P", "pt", "A4", "")
	p.SetFont("Times", "", 11)
	return &Measurer{pdf: p}
}

// TextWidth returns the width of text set in the given core family and
// variant at size points.
func (m *Measurer) TextWidth(text, family, variant string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	m.pdf.SetFont(family, variant, size)
	return m.pdf.GetStringWidth(text)
}

// StyleWidth returns the width of text set in st with variant applied in
// place of the style's own.
func (m *Measurer) StyleWidth(text string, st style.Style, variant string) float64 {
	return m.TextWidth(text, st.Family, variant, st.Size)
}

// ComposeVariant merges a style's base variant with run-level formatting
// flags into a single font style string, keeping the B/I/U order fpdf
// expects.
func ComposeVariant(base string, bold, italic, underline bool) string {
	var sb strings.Builder
	if bold || strings.Contains(base, "B") {
		sb.WriteByte('B')
	}
	if italic || strings.Contains(base, "I") {
		sb.WriteByte('I')
	}
	if underline || strings.Contains(base, "U") {
		sb.WriteByte('U')
	}
	return sb.String()
}
