// Package definition reads the YAML report definition the command line tool
// consumes: the cover metadata plus the ordered block list, with image
// entries referencing files on disk. Loading a definition turns it into the
// metadata record and block slice the generator takes.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	yaml "gopkg.in/yaml.v3"

	"github.com/reportkit/reportkit/internal/markup"
	"github.com/reportkit/reportkit/internal/res"
	"github.com/reportkit/reportkit/pkg/report"
)

type (
	MetadataDef struct {
		Title      string `yaml:"title"`
		Subtitle   string `yaml:"subtitle"`
		Author     string `yaml:"author"`
		RollNumber string `yaml:"roll_number"`
	}

	// BlockDef is one entry of the block list. Exactly one field may be
	// set: heading, paragraph (read under the configured paragraph mode),
	// text (always plain), html (always rich) or image (a file reference).
	BlockDef struct {
		Heading   string `yaml:"heading,omitempty"`
		Paragraph string `yaml:"paragraph,omitempty"`
		Text      string `yaml:"text,omitempty"`
		HTML      string `yaml:"html,omitempty"`
		Image     string `yaml:"image,omitempty"`
	}

	Definition struct {
		Version  int         `yaml:"version"`
		Metadata MetadataDef `yaml:"metadata"`
		Blocks   []BlockDef  `yaml:"blocks"`

		// dir is where the definition file lives; image references are
		// resolved against it.
		dir string
	}
)

// Load reads and validates a definition file. Unknown fields are rejected so
// a typo in a key cannot silently drop content.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process definition file %s: %w", path, err)
	}
	def.dir = filepath.Dir(path)
	return def, nil
}

// Parse decodes definition data. Image references stay relative to the
// current directory unless the definition was loaded from a file.
func Parse(data []byte) (*Definition, error) {
	def := &Definition{Version: 1}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode definition data: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func (d *Definition) validate() error {
	if d.Version != 1 {
		return fmt.Errorf("unsupported definition version %d", d.Version)
	}
	for i, b := range d.Blocks {
		set := 0
		for _, v := range []string{b.Heading, b.Paragraph, b.Text, b.HTML, b.Image} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			return fmt.Errorf("block %d must set exactly one of heading, paragraph, text, html or image", i+1)
		}
	}
	return nil
}

// ReportMetadata returns the cover metadata record.
func (d *Definition) ReportMetadata() report.Metadata {
	return report.Metadata{
		Title:      d.Metadata.Title,
		Subtitle:   d.Metadata.Subtitle,
		AuthorName: d.Metadata.Author,
		RollNumber: d.Metadata.RollNumber,
	}
}

// ReportBlocks materializes the block list: paragraph entries are rendered
// to inline markup here (paragraph under mode, text always plain, html
// always rich) and image entries are loaded and probed for their native
// dimensions. A missing content image is a structural failure, unlike the
// cover logo.
func (d *Definition) ReportBlocks(mode markup.Mode, loader *res.Loader) ([]report.Block, error) {
	if d.dir != "" {
		loader.AddSearchPath(d.dir)
	}
	blocks := make([]report.Block, 0, len(d.Blocks))
	for i, b := range d.Blocks {
		switch {
		case b.Heading != "":
			blocks = append(blocks, report.Heading(b.Heading))
		case b.Paragraph != "":
			blocks = append(blocks, report.Paragraph(mode.Render(b.Paragraph)))
		case b.Text != "":
			blocks = append(blocks, report.Paragraph(markup.EscapePlain(b.Text)))
		case b.HTML != "":
			blocks = append(blocks, report.Paragraph(markup.Translate(b.HTML)))
		case b.Image != "":
			blk, err := d.imageBlock(b.Image, loader)
			if err != nil {
				return nil, fmt.Errorf("failed to prepare image block %d: %w", i+1, err)
			}
			blocks = append(blocks, blk)
		}
	}
	return blocks, nil
}

func (d *Definition) imageBlock(ref string, loader *res.Loader) (report.Block, error) {
	data, err := loader.Load(ref)
	if err != nil {
		return report.Block{}, err
	}
	w, h, err := res.Probe(data)
	if err != nil {
		return report.Block{}, err
	}
	return report.Image(data, float64(w), float64(h)), nil
}

// OutputName derives the report file name from the roll number, as the
// submission workflow expects: <roll>_Report.pdf.
func (d *Definition) OutputName() string {
	roll := slug.Make(d.Metadata.RollNumber)
	if roll == "" {
		roll = "report"
	}
	return roll + "_Report.pdf"
}
