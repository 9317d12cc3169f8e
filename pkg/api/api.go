// Package api is the public entry point for generating report PDFs. A
// Generator takes report metadata and ordered content blocks, assembles
// the cover and contents pages around them, lays everything out on A4 and
// returns the finished document.
package api

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/flow"
	"github.com/reportkit/reportkit/internal/layout"
	"github.com/reportkit/reportkit/internal/pagination"
	"github.com/reportkit/reportkit/internal/render/pdf"
	"github.com/reportkit/reportkit/internal/res"
	"github.com/reportkit/reportkit/internal/style"
	"github.com/reportkit/reportkit/pkg/report"
)

// Generator produces report PDFs from metadata and content blocks. It is
// stateless across calls: every Generate builds its own pipeline, so one
// Generator may serve concurrent generations.
type Generator struct {
	options Options
}

// New creates a generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options) *Generator {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	return &Generator{options: options}
}

// WithOption returns a new generator with the specified option applied
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// Generate assembles, lays out and renders the report, returning the PDF
// bytes. Block order is preserved exactly. Invalid image dimensions and
// primitives taller than a page fail the generation with no partial
// output; an unavailable logo only degrades the cover.
func (g *Generator) Generate(meta report.Metadata, blocks []report.Block) ([]byte, error) {
	log := g.options.Logger
	geo := pagination.DefaultGeometry()
	styles := style.NewCatalog()

	loader := res.NewLoader()
	for _, p := range g.options.ResourcePaths {
		loader.AddSearchPath(p)
	}
	if g.options.HTTPClient != nil {
		loader.SetClient(g.options.HTTPClient)
	}

	builder := flow.NewBuilder(loader, flow.Logo{Ref: g.options.LogoRef, Data: g.options.LogoBytes}, geo.ContentWidth(), log)
	prims, err := builder.Build(meta, g.renderParagraphs(blocks))
	if err != nil {
		return nil, fmt.Errorf("failed to assemble report: %w", err)
	}
	log.Debug("report assembled",
		zap.Int("blocks", len(blocks)),
		zap.Int("primitives", len(prims)))

	engine := pagination.NewEngine(geo, styles, layout.NewMeasurer(), log)
	if err := engine.Measure(prims); err != nil {
		return nil, fmt.Errorf("failed to lay out report: %w", err)
	}
	if err := engine.Resolve(); err != nil {
		return nil, err
	}

	renderer := pdf.NewRenderer(geo, styles, pdf.DocumentInfo{
		Title:   meta.Title,
		Author:  meta.AuthorName,
		Subject: meta.Subtitle,
		Creator: g.options.Creator,
	}, log)
	if err := engine.Render(renderer); err != nil {
		return nil, err
	}

	out, err := renderer.Output()
	if err != nil {
		return nil, err
	}
	log.Info("report generated",
		zap.Int("pages", renderer.PageCount()),
		zap.Int("bytes", len(out)))
	return out, nil
}

// GenerateToFile generates the report and writes it to the given path
func (g *Generator) GenerateToFile(meta report.Metadata, blocks []report.Block, path string) error {
	out, err := g.Generate(meta, blocks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// renderParagraphs runs every paragraph block's input through the
// configured markup mode, leaving the caller's slice untouched.
func (g *Generator) renderParagraphs(blocks []report.Block) []report.Block {
	out := make([]report.Block, len(blocks))
	for i, b := range blocks {
		if b.Kind == report.BlockParagraph {
			b.Markup = g.options.ParagraphMode.Render(b.Markup)
		}
		out[i] = b
	}
	return out
}
