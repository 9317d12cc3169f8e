package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/markup"
)

// Options represents configuration for the report generator
type Options struct {
	// Cover logo source. LogoBytes wins when both are set; LogoRef may be
	// a file path, an http(s) URL or a data: URL. With neither set the
	// cover prints a placeholder line in the logo slot.
	LogoRef   string
	LogoBytes []byte

	// ParagraphMode selects how paragraph input is read. By default it is
	// taken as inline markup already in the engine subset; plain and rich
	// modes are for callers holding raw text or rich-text editor HTML.
	ParagraphMode markup.Mode

	// ResourcePaths are directories searched for relative logo references
	ResourcePaths []string

	// HTTPClient overrides the client used for remote logo fetches
	HTTPClient *http.Client

	// Creator is written into the PDF document catalog
	Creator string

	// Logger receives structured progress and warning events
	Logger *zap.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		ParagraphMode: markup.ModeMarkup,
		ResourcePaths: []string{},
		Creator:       "reportkit",
	}
}

// WithLogoFile sets the cover logo to a local file path
func WithLogoFile(path string) Option {
	return func(o *Options) {
		o.LogoRef = path
	}
}

// WithLogoURL sets the cover logo to a remote URL
func WithLogoURL(url string) Option {
	return func(o *Options) {
		o.LogoRef = url
	}
}

// WithLogoBytes sets the cover logo from raw image bytes
func WithLogoBytes(data []byte) Option {
	return func(o *Options) {
		o.LogoBytes = data
	}
}

// WithParagraphMode sets how paragraph input is interpreted
func WithParagraphMode(mode markup.Mode) Option {
	return func(o *Options) {
		o.ParagraphMode = mode
	}
}

// WithRichParagraphs treats paragraph input as rich-text editor HTML
func WithRichParagraphs() Option {
	return WithParagraphMode(markup.ModeRich)
}

// WithPlainParagraphs treats paragraph input as literal text: markup
// specials are escaped and newlines become line breaks
func WithPlainParagraphs() Option {
	return WithParagraphMode(markup.ModePlain)
}

// WithResourcePath adds a directory to search for relative logo references
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithHTTPClient sets the client used for remote logo fetches
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithCreator sets the creator written into the PDF catalog
func WithCreator(creator string) Option {
	return func(o *Options) {
		o.Creator = creator
	}
}

// WithLogger sets the logger used during generation
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}
