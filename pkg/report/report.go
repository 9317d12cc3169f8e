// Package report defines the content model consumed by the generator: the
// metadata record shown on the cover page and the ordered list of content
// blocks that make up the document body. It also defines the error types the
// generator surfaces to callers.
package report

// Metadata holds the cover-page fields of a report. All four values are
// rendered on the cover; an empty value renders as empty text.
type Metadata struct {
	Title      string
	Subtitle   string
	AuthorName string
	RollNumber string
}

// BlockKind discriminates the variants of Block.
type BlockKind int

const (
	// BlockHeading is a section heading; every heading becomes one entry in
	// the table of contents.
	BlockHeading BlockKind = iota
	// BlockParagraph is body text carrying inline markup restricted to
	// <b>, <i>, <u> and <br/> over plain text.
	BlockParagraph
	// BlockImage is a decoded image with its native pixel dimensions.
	BlockImage
)

// String returns the lowercase name of the kind.
func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockImage:
		return "image"
	default:
		return "unknown"
	}
}

// Block is a single content unit of a report. It is a tagged variant: Kind
// selects which of the payload fields are meaningful. Use the Heading,
// Paragraph and Image constructors rather than filling the struct directly.
// Blocks are immutable once built; slice order is document order.
type Block struct {
	Kind BlockKind

	// Text is the heading text for BlockHeading.
	Text string

	// Markup is the paragraph content for BlockParagraph, already reduced
	// to the engine's inline subset.
	Markup string

	// Data holds the encoded image bytes for BlockImage. NativeWidth and
	// NativeHeight are the image's pixel dimensions as probed upstream.
	Data         []byte
	NativeWidth  float64
	NativeHeight float64
}

// Heading builds a heading block.
func Heading(text string) Block {
	return Block{Kind: BlockHeading, Text: text}
}

// Paragraph builds a body-paragraph block. By default the content is inline
// markup already in the engine subset (<b>, <i>, <u>, <br/> over plain
// text); the generator's plain and rich paragraph modes accept raw literal
// text or rich-text editor HTML instead.
func Paragraph(markup string) Block {
	return Block{Kind: BlockParagraph, Markup: markup}
}

// Image builds an image block from encoded bytes and native pixel dimensions.
func Image(data []byte, nativeWidth, nativeHeight float64) Block {
	return Block{
		Kind:         BlockImage,
		Data:         data,
		NativeWidth:  nativeWidth,
		NativeHeight: nativeHeight,
	}
}
