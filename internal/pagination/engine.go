package pagination

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/reportkit/reportkit/internal/flow"
	"github.com/reportkit/reportkit/internal/layout"
	"github.com/reportkit/reportkit/internal/markup"
	"github.com/reportkit/reportkit/internal/style"
	"github.com/reportkit/reportkit/internal/text"
	"github.com/reportkit/reportkit/pkg/report"
)

// fuzz absorbs accumulated floating point error in fit checks
const fuzz = 1e-6

// tocNumberReserve fixes the width of the contents page-number column. The
// column is measured from this string, not from the resolved numbers, so
// resolution can never move a line.
const tocNumberReserve = "9999"

// tocSlot locates one reserved page-number fragment for patching
type tocSlot struct {
	page *Page
	idx  int
	st   style.Style
}

// Engine lays a primitive sequence out onto pages. It is single-use: build
// one, run Measure, Resolve and Render in order, then discard it.
type Engine struct {
	geo    Geometry
	styles *style.Catalog
	m      *layout.Measurer
	log    *zap.Logger

	phase       Phase
	pages       []*Page
	cur         *Page
	y           float64
	lastTouched int

	entries []TOCEntry
	nextTOC int
	slots   []tocSlot
}

// NewEngine creates an engine for one layout run. A nil logger disables
// logging.
func NewEngine(geo Geometry, styles *style.Catalog, m *layout.Measurer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{geo: geo, styles: styles, m: m, log: log}
}

// Phase reports where the engine is in its run.
func (e *Engine) Phase() Phase { return e.phase }

// Pages returns the laid-out pages in order.
func (e *Engine) Pages() []*Page { return e.pages }

// Entries returns the recorded contents entries in heading order.
func (e *Engine) Entries() []TOCEntry { return e.entries }

// Measure runs the first pass: every primitive is placed at its final
// position and every heading's landing page is recorded. Contents lines
// are placed with their page numbers still blank; the reserved number
// column keeps their geometry independent of the digits filled in later.
func (e *Engine) Measure(prims []flow.Primitive) error {
	if e.phase != PhaseIdle {
		return fmt.Errorf("measure called in phase %s", e.phase)
	}
	e.phase = PhaseFirstPass

	// Contents entry texts are known before anything is placed, which is
	// what lets a single measuring pass produce the final geometry.
	for _, p := range prims {
		if p.Kind == flow.KindParagraph && p.TOCLevel > 0 {
			e.entries = append(e.entries, TOCEntry{
				Text:  text.NormalizeSpace(p.TOCText),
				Level: p.TOCLevel,
			})
		}
	}

	e.newPage()
	for _, p := range prims {
		var err error
		switch p.Kind {
		case flow.KindParagraph:
			err = e.placeParagraph(p)
		case flow.KindImage:
			err = e.placeImage(p)
		case flow.KindSpacer:
			err = e.placeSpacer(p.Space)
		case flow.KindPageBreak:
			e.newPage()
		case flow.KindTOC:
			err = e.placeTOC(p)
		default:
			err = fmt.Errorf("unknown primitive kind %d", p.Kind)
		}
		if err != nil {
			return err
		}
	}

	// A trailing page break opens a page nothing ever lands on; it is not
	// part of the document.
	if e.lastTouched < len(e.pages) && e.lastTouched > 0 {
		e.pages = e.pages[:e.lastTouched]
	}

	e.log.Debug("first pass complete",
		zap.Int("pages", len(e.pages)),
		zap.Int("contents_entries", len(e.entries)))
	return nil
}

// Resolve patches the recorded page numbers into the reserved contents
// fragments. Nothing moves; only text and its right-aligned offset are
// filled in.
func (e *Engine) Resolve() error {
	if e.phase != PhaseFirstPass {
		return fmt.Errorf("resolve called in phase %s", e.phase)
	}
	// Slots pair one-to-one with entries; a flow carrying more than one
	// contents placeholder would reserve extra slots with no entry to fill
	// them.
	if len(e.slots) != len(e.entries) {
		return fmt.Errorf("%d contents slots reserved for %d entries", len(e.slots), len(e.entries))
	}
	for i, slot := range e.slots {
		num := strconv.Itoa(e.entries[i].Page)
		w := e.m.StyleWidth(num, slot.st, slot.st.Variant)
		pt := &slot.page.Texts[slot.idx]
		pt.Text = num
		pt.X = e.geo.ContentWidth() - w
	}
	e.phase = PhaseTOCResolved
	e.log.Debug("contents resolved", zap.Int("entries", len(e.entries)))
	return nil
}

// Render runs the second pass, streaming every page into sink in order.
func (e *Engine) Render(sink PageSink) error {
	if e.phase != PhaseTOCResolved {
		return fmt.Errorf("render called in phase %s", e.phase)
	}
	e.phase = PhaseSecondPass
	for _, p := range e.pages {
		if err := sink.WritePage(p); err != nil {
			return fmt.Errorf("failed to render page %d: %w", p.Number, err)
		}
	}
	e.phase = PhaseDone
	return nil
}

func (e *Engine) newPage() {
	p := &Page{Number: len(e.pages) + 1}
	e.pages = append(e.pages, p)
	e.cur = p
	e.y = 0
}

func (e *Engine) remaining() float64 {
	return e.geo.ContentHeight() - e.y
}

// touch marks the current page as carrying content, keeping it out of the
// trailing-page trim.
func (e *Engine) touch() {
	e.lastTouched = e.cur.Number
}

// applySpaceBefore consumes a style's leading gap. The gap applies only
// below already-placed content and never carries onto a fresh page; when
// gap plus the first line cannot fit, the paragraph moves to a new page
// and the gap is dropped there.
func (e *Engine) applySpaceBefore(gap, firstH float64) {
	if e.y == 0 {
		return
	}
	if gap+firstH > e.remaining()+fuzz {
		e.newPage()
		return
	}
	e.y += gap
}

func (e *Engine) applySpaceAfter(gap float64) {
	e.y += gap
	if e.y > e.geo.ContentHeight() {
		e.y = e.geo.ContentHeight()
	}
}

func (e *Engine) placeParagraph(p flow.Primitive) error {
	st := e.styles.MustGet(p.StyleName)
	lines := e.m.WrapParagraph(p.Runs, st, e.geo.ContentWidth())
	isEntry := p.TOCLevel > 0
	e.touch()

	if len(lines) == 0 {
		e.applySpaceBefore(st.SpaceBefore, 0)
		if isEntry {
			e.recordEntry()
		}
		e.applySpaceAfter(st.SpaceAfter)
		return nil
	}

	e.applySpaceBefore(st.SpaceBefore, st.Leading)
	for i, ln := range lines {
		if st.Leading > e.remaining()+fuzz {
			if e.y == 0 {
				return &report.LayoutError{Primitive: "text line", Height: st.Leading, Avail: e.geo.ContentHeight()}
			}
			e.newPage()
		}
		if i == 0 && isEntry {
			e.recordEntry()
		}
		e.placeLine(ln, st)
	}
	e.applySpaceAfter(st.SpaceAfter)
	return nil
}

// recordEntry assigns the current page to the next unplaced contents entry.
// Placement order matches the pre-scan order, so a running index suffices.
func (e *Engine) recordEntry() {
	e.entries[e.nextTOC].Page = e.cur.Number
	e.nextTOC++
}

func (e *Engine) placeLine(ln layout.Line, st style.Style) {
	e.touch()
	for _, fr := range ln.Fragments {
		e.cur.Texts = append(e.cur.Texts, PlacedText{
			Text:    fr.Text,
			Family:  st.Family,
			Variant: fr.Variant,
			Size:    st.Size,
			Leading: st.Leading,
			X:       fr.X,
			Y:       e.y,
		})
	}
	e.y += st.Leading
}

func (e *Engine) placeImage(p flow.Primitive) error {
	if p.Height > e.geo.ContentHeight()+fuzz {
		return &report.LayoutError{Primitive: "image", Height: p.Height, Avail: e.geo.ContentHeight()}
	}
	if p.Height > e.remaining()+fuzz {
		e.newPage()
	}
	e.touch()
	e.cur.Images = append(e.cur.Images, PlacedImage{
		Data:   p.Data,
		Format: p.Format,
		X:      (e.geo.ContentWidth() - p.Width) / 2,
		Y:      e.y,
		W:      p.Width,
		H:      p.Height,
	})
	e.y += p.Height
	return nil
}

func (e *Engine) placeSpacer(h float64) error {
	if h > e.geo.ContentHeight()+fuzz {
		return &report.LayoutError{Primitive: "spacer", Height: h, Avail: e.geo.ContentHeight()}
	}
	if h > e.remaining()+fuzz {
		e.newPage()
	}
	e.touch()
	e.y += h
	return nil
}

// placeTOC lays out one contents line per recorded entry: the heading text
// wrapped into a column narrowed by the reserved number width, and a blank
// right-aligned fragment on the entry's last line that Resolve fills in.
func (e *Engine) placeTOC(p flow.Primitive) error {
	e.touch()
	for i := range e.entries {
		ent := &e.entries[i]
		levelIdx := ent.Level - 1
		if levelIdx < 0 || levelIdx >= len(p.LevelStyles) {
			levelIdx = len(p.LevelStyles) - 1
		}
		st := e.styles.MustGet(p.LevelStyles[levelIdx])

		numCol := e.m.StyleWidth(tocNumberReserve, st, st.Variant)
		lines := e.m.WrapParagraph([]markup.Run{{Text: ent.Text}}, st, e.geo.ContentWidth()-numCol)
		if len(lines) == 0 {
			lines = []layout.Line{{}}
		}

		e.applySpaceBefore(st.SpaceBefore, st.Leading)
		for _, ln := range lines {
			if st.Leading > e.remaining()+fuzz {
				if e.y == 0 {
					return &report.LayoutError{Primitive: "text line", Height: st.Leading, Avail: e.geo.ContentHeight()}
				}
				e.newPage()
			}
			e.placeLine(ln, st)
		}

		e.cur.Texts = append(e.cur.Texts, PlacedText{
			Family:  st.Family,
			Variant: st.Variant,
			Size:    st.Size,
			Leading: st.Leading,
			Y:       e.y - st.Leading,
		})
		e.slots = append(e.slots, tocSlot{page: e.cur, idx: len(e.cur.Texts) - 1, st: st})
	}
	return nil
}
