// Package reportkit generates structured project report PDFs: a cover
// page, an automatically numbered table of contents and a footer on every
// page, wrapped around ordered heading, paragraph and image blocks.
package reportkit

import (
	"github.com/reportkit/reportkit/pkg/api"
	"github.com/reportkit/reportkit/pkg/report"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option

type Metadata = report.Metadata
type Block = report.Block
type BlockKind = report.BlockKind

type LayoutError = report.LayoutError
type InvalidDimensionsError = report.InvalidDimensionsError
type ResourceError = report.ResourceError

func New() *Generator                           { return api.New() }
func NewWithOptions(options Options) *Generator { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

// Block constructors, re-exported for single-import use.
var (
	Heading   = report.Heading
	Paragraph = report.Paragraph
	Image     = report.Image
)

var (
	WithLogoFile        = api.WithLogoFile
	WithLogoURL         = api.WithLogoURL
	WithLogoBytes       = api.WithLogoBytes
	WithParagraphMode   = api.WithParagraphMode
	WithRichParagraphs  = api.WithRichParagraphs
	WithPlainParagraphs = api.WithPlainParagraphs
	WithResourcePath    = api.WithResourcePath
	WithHTTPClient      = api.WithHTTPClient
	WithCreator         = api.WithCreator
	WithLogger          = api.WithLogger
)

const (
	BlockHeading   = report.BlockHeading
	BlockParagraph = report.BlockParagraph
	BlockImage     = report.BlockImage
)
