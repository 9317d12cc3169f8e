// Package flow turns report metadata and content blocks into the ordered
// primitive sequence the pagination engine consumes. Primitives are the
// only currency between assembly and layout: styled paragraphs, sized
// images, fixed-height spacers, explicit page breaks and the single
// table-of-contents placeholder.
package flow

import "github.com/reportkit/reportkit/internal/markup"

// Kind discriminates the primitive variants
type Kind int

const (
	KindParagraph Kind = iota
	KindImage
	KindSpacer
	KindPageBreak
	KindTOC
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindImage:
		return "image"
	case KindSpacer:
		return "spacer"
	case KindPageBreak:
		return "page-break"
	case KindTOC:
		return "toc"
	default:
		return "unknown"
	}
}

// Primitive is a single layout unit. Kind selects which fields carry
// meaning; the rest stay zero.
type Primitive struct {
	Kind Kind

	// Paragraph fields. TOCLevel marks the paragraph as a contents entry
	// at that level; TOCText is the text the entry displays.
	Runs      []markup.Run
	StyleName string
	TOCLevel  int
	TOCText   string

	// Image fields. Data holds bytes ready for direct embedding and
	// Width/Height the final placement size in points.
	Data   []byte
	Format string
	Width  float64
	Height float64

	// Spacer height in points
	Space float64

	// Contents placeholder styles, one per level starting at level 1
	LevelStyles []string
}

// Paragraph returns a styled paragraph primitive over parsed runs.
func Paragraph(styleName string, runs []markup.Run) Primitive {
	return Primitive{Kind: KindParagraph, StyleName: styleName, Runs: runs}
}

// Text returns a paragraph primitive holding a single plain run.
func Text(styleName, text string) Primitive {
	return Paragraph(styleName, []markup.Run{{Text: text}})
}

// Heading returns a paragraph primitive registered as a level-1 contents
// entry under its own text.
func Heading(styleName, text string) Primitive {
	p := Text(styleName, text)
	p.TOCLevel = 1
	p.TOCText = text
	return p
}

// Image returns an image primitive placed at w by h points.
func Image(data []byte, format string, w, h float64) Primitive {
	return Primitive{Kind: KindImage, Data: data, Format: format, Width: w, Height: h}
}

// Spacer returns a fixed vertical gap of h points.
func Spacer(h float64) Primitive {
	return Primitive{Kind: KindSpacer, Space: h}
}

// PageBreak returns an unconditional page break.
func PageBreak() Primitive {
	return Primitive{Kind: KindPageBreak}
}

// TOC returns the table-of-contents placeholder with its per-level entry
// styles.
func TOC(levelStyles ...string) Primitive {
	return Primitive{Kind: KindTOC, LevelStyles: levelStyles}
}
