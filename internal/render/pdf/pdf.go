// Package pdf draws laid-out pages into a PDF document using the built-in
// core fonts. It implements the pagination page sink; all positioning is
// done upstream, so drawing is a straight transcription of placed items
// plus the per-page footer.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/pagination"
	"github.com/reportkit/reportkit/internal/style"
)

// Footer baseline heights above the bottom edge, in points.
const (
	coverFooterRise   = 54
	contentFooterRise = 36
)

// DocumentInfo carries the PDF metadata written into the document catalog.
type DocumentInfo struct {
	Title   string
	Author  string
	Subject string
	Creator string
}

// Renderer writes pages into a single PDF document. It is single-use:
// create one per document, stream pages into it, then call Output.
type Renderer struct {
	doc    *fpdf.Fpdf
	geo    pagination.Geometry
	styles *style.Catalog
	log    *zap.Logger
	images int
}

// NewRenderer creates a renderer with the document metadata set and the
// footer hook installed. A nil logger disables logging.
func NewRenderer(geo pagination.Geometry, styles *style.Catalog, info DocumentInfo, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	doc := fpdf.New("P", "pt", geo.Size.Name, "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(info.Title, true)
	doc.SetAuthor(info.Author, true)
	doc.SetSubject(info.Subject, true)
	doc.SetCreator(info.Creator, true)

	r := &Renderer{doc: doc, geo: geo, styles: styles, log: log}
	doc.SetFooterFunc(func() {
		r.drawFooter(doc.PageNo())
	})
	return r
}

// SetCompression toggles stream compression on the document. Uncompressed
// output keeps the content streams readable for inspection.
func (r *Renderer) SetCompression(on bool) {
	r.doc.SetCompression(on)
}

// WritePage draws one laid-out page. Pages must arrive in order; each call
// starts a fresh PDF page, which also finalizes the previous page's footer.
func (r *Renderer) WritePage(p *pagination.Page) error {
	r.doc.AddPage()
	for _, img := range p.Images {
		r.drawImage(img)
	}
	for _, tx := range p.Texts {
		r.drawText(tx)
	}
	if r.doc.Err() {
		return fmt.Errorf("failed to draw page %d: %w", p.Number, r.doc.Error())
	}
	return nil
}

// Output finalizes the document, drawing the last footer, and returns the
// PDF bytes.
func (r *Renderer) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to produce PDF output: %w", err)
	}
	r.log.Debug("document finalized",
		zap.Int("pages", r.doc.PageCount()),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// PageCount reports how many pages have been started so far.
func (r *Renderer) PageCount() int {
	return r.doc.PageCount()
}

func (r *Renderer) drawText(tx pagination.PlacedText) {
	if tx.Text == "" {
		return
	}
	r.doc.SetFont(tx.Family, tx.Variant, tx.Size)
	x := r.geo.Margins.Left + tx.X
	y := r.geo.Margins.Top + tx.Y + baselineOffset(tx.Size, tx.Leading)
	r.doc.Text(x, y, tx.Text)
}

func (r *Renderer) drawImage(img pagination.PlacedImage) {
	r.images++
	name := fmt.Sprintf("img-%d", r.images)
	opts := fpdf.ImageOptions{ImageType: img.Format}
	r.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	r.doc.ImageOptions(name, r.geo.Margins.Left+img.X, r.geo.Margins.Top+img.Y, img.W, img.H, false, opts, 0, "")
}

// drawFooter prints the page number centered near the bottom edge. The
// cover sits lower and in the larger footer face than the later pages.
func (r *Renderer) drawFooter(page int) {
	st := r.styles.MustGet(footerStyleName(page))
	text := footerText(page)
	r.doc.SetFont(st.Family, st.Variant, st.Size)
	w := r.doc.GetStringWidth(text)
	x := (r.geo.Size.Width - w) / 2
	y := r.geo.Size.Height - footerRise(page)
	r.doc.Text(x, y, text)
}

// footerText returns what the footer prints on the given page: a literal
// zero on the cover, the page's own ordinal everywhere else.
func footerText(page int) string {
	if page == 1 {
		return "0"
	}
	return strconv.Itoa(page)
}

func footerStyleName(page int) string {
	if page == 1 {
		return style.Footer
	}
	return style.FooterContent
}

func footerRise(page int) float64 {
	if page == 1 {
		return coverFooterRise
	}
	return contentFooterRise
}

// baselineOffset positions the baseline inside a line slot: the ascent
// plus half of the slot height left over beyond the font's bounds. Ascent
// and descent are approximated at 80% and 20% of the size.
func baselineOffset(size, leading float64) float64 {
	ascent := 0.80 * size
	descent := 0.20 * size
	extra := leading - (ascent + descent)
	if extra < 0 {
		extra = 0
	}
	return ascent + extra/2
}
