// Package style defines the fixed set of named text styles used by the
// report layout. The catalog is built once and never mutated; every lookup
// uses a hardcoded name, so an unknown name is a programming error.
package style

import "fmt"

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Style describes how a paragraph of text is set. Sizes and distances are in
// points. Leading is the full line height; a paragraph of n lines occupies
// n*Leading points before spacing. FirstLineIndent is added to LeftIndent on
// the first line only and may be negative for a hanging indent.
type Style struct {
	Name            string
	Family          string // core PDF family: "Times", "Helvetica", "Courier"
	Variant         string // "", "B", "I", "U" or a combination
	Size            float64
	Leading         float64
	SpaceBefore     float64
	SpaceAfter      float64
	LeftIndent      float64
	FirstLineIndent float64
	Align           Alignment
}

// Names of the registered styles.
const (
	CoverTitle    = "CoverTitle"
	CoverSubtitle = "CoverSubtitle"
	SubmittedBy   = "SubmittedBy"
	StudentInfo   = "StudentInfo"
	InstituteInfo = "InstituteInfo"
	Title         = "Title"
	Heading1      = "Heading1"
	BodyText      = "BodyText"
	TOCLevel1     = "TOCLevel1"
	TOCLevel2     = "TOCLevel2"
	Footer        = "Footer"
	FooterContent = "FooterContent"
)

// Catalog is the immutable registry of named styles.
type Catalog struct {
	styles map[string]Style
}

// NewCatalog builds the registry with the report's fixed styles.
func NewCatalog() *Catalog {
	c := &Catalog{styles: make(map[string]Style)}
	for _, s := range []Style{
		{Name: CoverTitle, Family: "Times", Variant: "B", Size: 18, Leading: 22, SpaceAfter: 12, Align: AlignCenter},
		{Name: CoverSubtitle, Family: "Times", Size: 14, Leading: 18, SpaceAfter: 40, Align: AlignCenter},
		{Name: SubmittedBy, Family: "Times", Variant: "B", Size: 12, Leading: 16, SpaceAfter: 6, Align: AlignCenter},
		{Name: StudentInfo, Family: "Times", Size: 12, Leading: 18, Align: AlignCenter},
		{Name: InstituteInfo, Family: "Times", Size: 12, Leading: 16, Align: AlignCenter},
		{Name: Title, Family: "Helvetica", Variant: "B", Size: 18, Leading: 22, SpaceAfter: 6, Align: AlignCenter},
		{Name: Heading1, Family: "Times", Variant: "B", Size: 16, Leading: 20, SpaceBefore: 20, SpaceAfter: 10},
		{Name: BodyText, Family: "Times", Size: 11, Leading: 14, SpaceBefore: 6, Align: AlignJustify},
		{Name: TOCLevel1, Family: "Times", Variant: "B", Size: 12, Leading: 12, SpaceBefore: 5, LeftIndent: 20, FirstLineIndent: -20},
		{Name: TOCLevel2, Family: "Times", Size: 10, Leading: 12, LeftIndent: 40, FirstLineIndent: -20},
		{Name: Footer, Family: "Times", Size: 11, Leading: 11, Align: AlignCenter},
		{Name: FooterContent, Family: "Times", Size: 10, Leading: 10, Align: AlignCenter},
	} {
		c.styles[s.Name] = s
	}
	return c
}

// MustGet returns the style registered under name. It panics on an unknown
// name: all callers use the constants above, so a miss is a bug, not a
// recoverable condition.
func (c *Catalog) MustGet(name string) Style {
	s, ok := c.styles[name]
	if !ok {
		panic(fmt.Sprintf("style: unknown style %q", name))
	}
	return s
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.styles[name]
	return ok
}
