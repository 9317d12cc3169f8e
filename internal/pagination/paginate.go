// Package pagination flows layout primitives onto fixed-size pages. The
// engine runs the document in two passes: a measuring pass that places
// every primitive and records table-of-contents entries, a resolution step
// that patches final page numbers into the placed contents lines, and a
// second pass that streams the finished pages to a sink for drawing. The
// resolution step never moves anything, so both passes see identical
// geometry.
package pagination

// PageSize represents a page format in points (1/72 inch)
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// PageSizeA4 is the only format the report layout targets
var PageSizeA4 = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins is a uniform one-inch margin on every side
var DefaultMargins = Margins{Top: 72, Right: 72, Bottom: 72, Left: 72}

// Geometry combines a page size with its margins
type Geometry struct {
	Size    PageSize
	Margins Margins
}

// DefaultGeometry returns A4 with one-inch margins
func DefaultGeometry() Geometry {
	return Geometry{Size: PageSizeA4, Margins: DefaultMargins}
}

// ContentWidth returns the usable column width between the margins
func (g Geometry) ContentWidth() float64 {
	return g.Size.Width - g.Margins.Left - g.Margins.Right
}

// ContentHeight returns the usable height between the margins
func (g Geometry) ContentHeight() float64 {
	return g.Size.Height - g.Margins.Top - g.Margins.Bottom
}

// PlacedText is one positioned text fragment. X and Y are relative to the
// top-left corner of the content area; Y is the top of the line slot and
// the renderer derives the baseline from Size and Leading.
type PlacedText struct {
	Text    string
	Family  string
	Variant string
	Size    float64
	Leading float64
	X, Y    float64
}

// PlacedImage is one positioned image, already transcoded for embedding.
type PlacedImage struct {
	Data   []byte
	Format string
	X, Y   float64
	W, H   float64
}

// Page represents a single laid-out page: its 1-based ordinal and the
// items placed on it. The ordinal drives the footer decoration.
type Page struct {
	Number int
	Texts  []PlacedText
	Images []PlacedImage
}

// TOCEntry represents one table-of-contents line: a heading's text, its
// level and the page the heading landed on during the measuring pass.
type TOCEntry struct {
	Text  string
	Level int
	Page  int
}

// Phase tracks the engine through its passes. An engine serves exactly one
// document and moves strictly forward.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFirstPass
	PhaseTOCResolved
	PhaseSecondPass
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFirstPass:
		return "first-pass"
	case PhaseTOCResolved:
		return "toc-resolved"
	case PhaseSecondPass:
		return "second-pass"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// PageSink receives finished pages in order during the second pass
type PageSink interface {
	WritePage(page *Page) error
}
