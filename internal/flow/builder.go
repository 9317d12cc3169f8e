package flow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/layout"
	"github.com/reportkit/reportkit/internal/markup"
	"github.com/reportkit/reportkit/internal/res"
	"github.com/reportkit/reportkit/internal/style"
	"github.com/reportkit/reportkit/pkg/report"
)

// Cover and content distances in points.
const (
	coverTopSpace   = 36    // half an inch below the top margin
	coverMidSpace   = 57.6  // 0.8 inch between subtitle and submission block
	coverLogoLead   = 72    // one inch above the logo slot
	coverBlockSpace = 129.6 // 1.8 inch between logo slot and institute lines
	paragraphGap    = 7.2   // 0.1 inch after every body paragraph
	imageGap        = 14.4  // 0.2 inch after every content image

	// LogoSize is the square cover logo edge, 1.8 inch.
	LogoSize = 129.6
)

// logoFallback is printed in the logo slot when no logo can be loaded.
const logoFallback = "(Logo file not found)"

var instituteLines = [...]string{
	"IITM Online BS Degree Program,",
	"Indian Institute of Technology, Madras, Chennai",
	"Tamil Nadu, India, 600036",
}

// Logo selects the cover logo. Data wins over Ref when both are set; a zero
// Logo leaves the slot to the text fallback.
type Logo struct {
	Ref  string
	Data []byte
}

// Builder assembles the primitive sequence for one report.
type Builder struct {
	loader *res.Loader
	logo   Logo
	avail  float64
	log    *zap.Logger
}

// NewBuilder creates a builder placing content into a column of avail
// points. A nil logger disables logging.
func NewBuilder(loader *res.Loader, logo Logo, avail float64, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{loader: loader, logo: logo, avail: avail, log: log}
}

// Build produces the full primitive sequence: the cover page, the contents
// page, then one group per content block in input order. Image blocks with
// non-positive dimensions or undecodable bytes fail the build; a missing
// logo only degrades the cover.
func (b *Builder) Build(meta report.Metadata, blocks []report.Block) ([]Primitive, error) {
	prims := b.cover(meta)
	prims = append(prims,
		Text(style.Title, "Table of Contents"),
		TOC(style.TOCLevel1, style.TOCLevel2),
		PageBreak(),
	)

	for i, blk := range blocks {
		switch blk.Kind {
		case report.BlockHeading:
			prims = append(prims, Heading(style.Heading1, blk.Text))
		case report.BlockParagraph:
			prims = append(prims,
				Paragraph(style.BodyText, markup.ParseRuns(blk.Markup)),
				Spacer(paragraphGap),
			)
		case report.BlockImage:
			w, h, err := layout.FitImage(blk.NativeWidth, blk.NativeHeight, b.avail)
			if err != nil {
				return nil, err
			}
			data, format, err := res.PrepareForPDF(blk.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to prepare image block %d: %w", i, err)
			}
			prims = append(prims, Image(data, format, w, h), Spacer(imageGap))
		default:
			return nil, fmt.Errorf("unknown block kind %d at index %d", blk.Kind, i)
		}
	}
	return prims, nil
}

// cover emits the fixed cover sequence. The spacer ladder reproduces the
// title page proportions regardless of text lengths.
func (b *Builder) cover(meta report.Metadata) []Primitive {
	prims := []Primitive{
		Spacer(coverTopSpace),
		Text(style.CoverTitle, meta.Title),
		Text(style.CoverSubtitle, meta.Subtitle),
		Spacer(coverMidSpace),
		Text(style.SubmittedBy, "Submitted by"),
		Text(style.StudentInfo, meta.AuthorName),
		Text(style.StudentInfo, meta.RollNumber),
		Spacer(coverLogoLead),
	}
	prims = append(prims, b.logoSlot()...)
	prims = append(prims,
		Spacer(coverBlockSpace),
		Text(style.InstituteInfo, instituteLines[0]),
		Text(style.InstituteInfo, instituteLines[1]),
		Text(style.InstituteInfo, instituteLines[2]),
		PageBreak(),
	)
	return prims
}

// logoSlot resolves the configured logo into a square cover image. Any
// failure falls back to a placeholder line padded to the same height, so
// the cover keeps its shape either way.
func (b *Builder) logoSlot() []Primitive {
	data, err := b.resolveLogo()
	if err == nil && len(data) > 0 {
		prepared, format, perr := res.PrepareForPDF(data)
		if perr == nil {
			return []Primitive{Image(prepared, format, LogoSize, LogoSize)}
		}
		err = perr
	}
	if err != nil {
		b.log.Warn("cover logo unavailable, using placeholder",
			zap.String("ref", b.logo.Ref),
			zap.Error(err))
	} else {
		b.log.Debug("no cover logo configured")
	}
	return []Primitive{
		Text(style.StudentInfo, logoFallback),
		Spacer(LogoSize),
	}
}

func (b *Builder) resolveLogo() ([]byte, error) {
	if len(b.logo.Data) > 0 {
		return b.logo.Data, nil
	}
	if b.logo.Ref == "" {
		return nil, nil
	}
	if b.loader == nil {
		return nil, &report.ResourceError{Source: b.logo.Ref, Err: fmt.Errorf("no resource loader configured")}
	}
	return b.loader.Load(b.logo.Ref)
}
