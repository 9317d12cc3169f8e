package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/reportkit/reportkit/internal/markup"
	"github.com/reportkit/reportkit/internal/style"
	"github.com/reportkit/reportkit/internal/text"
)

// Fragment is one positioned piece of a laid-out line. X is the offset from
// the left edge of the content column; spacing between fragments is encoded
// in the positions, so the renderer draws each fragment at its X and nothing
// in between.
type Fragment struct {
	Text    string
	Variant string
	X       float64
	Width   float64
}

// Line is one wrapped line of a paragraph. Width is the natural width of
// its tokens before justification. A line without fragments is a blank line
// from an explicit break and still consumes one leading.
type Line struct {
	Fragments []Fragment
	Width     float64
}

// closing punctuation that never takes a space before it
const noSpaceBefore = ",.;:!?)]}»"

type wrapToken struct {
	text    string
	variant string
	width   float64
	space   bool
}

type rawLine struct {
	tokens []wrapToken
	brk    bool // ended by an explicit break
}

// WrapParagraph wraps styled runs into lines at most maxWidth points wide,
// set in st. Whitespace runs collapse to single spaces; a word wider than
// the line is placed alone and overflows rather than being split. Fragment
// positions include the style's indents and alignment; justified styles
// stretch inter-word gaps on every line except the last one and lines ended
// by an explicit break.
func (m *Measurer) WrapParagraph(runs []markup.Run, st style.Style, maxWidth float64) []Line {
	var rawLines []rawLine
	var line []wrapToken
	lineWidth := 0.0

	avail := func() float64 {
		a := maxWidth - st.LeftIndent
		if len(rawLines) == 0 {
			a -= st.FirstLineIndent
		}
		return a
	}

	flush := func(brk bool) {
		if n := len(line); n > 0 && line[n-1].space {
			line = line[:n-1]
		}
		rawLines = append(rawLines, rawLine{tokens: line, brk: brk})
		line = nil
		lineWidth = 0
	}

	pendingSpace := false
	for _, run := range runs {
		if run.Break {
			flush(true)
			pendingSpace = false
			continue
		}
		variant := ComposeVariant(st.Variant, run.Bold, run.Italic, run.Underline)
		for _, t := range text.SplitTokens(run.Text) {
			if text.IsSpace(t) {
				pendingSpace = true
				continue
			}
			tk := wrapToken{text: t, variant: variant, width: m.TextWidth(t, st.Family, variant, st.Size)}

			if pendingSpace && len(line) > 0 && !startsWithClosing(tk.text) {
				spw := m.TextWidth(" ", st.Family, variant, st.Size)
				line = append(line, wrapToken{text: " ", variant: variant, width: spw, space: true})
				lineWidth += spw
			}
			pendingSpace = false

			if lineWidth+tk.width > avail() && len(line) > 0 {
				flush(false)
			}
			line = append(line, tk)
			lineWidth += tk.width
		}
	}
	if len(line) > 0 {
		flush(false)
	}

	return m.placeLines(rawLines, st, maxWidth)
}

// placeLines turns raw token lines into positioned fragments, applying
// indents, alignment offsets and justification.
func (m *Measurer) placeLines(rawLines []rawLine, st style.Style, maxWidth float64) []Line {
	lines := make([]Line, 0, len(rawLines))
	for idx, rl := range rawLines {
		indent := st.LeftIndent
		if idx == 0 {
			indent += st.FirstLineIndent
		}
		availW := maxWidth - indent

		natural := 0.0
		gaps := 0
		for _, tk := range rl.tokens {
			natural += tk.width
			if tk.space {
				gaps++
			}
		}

		offset := 0.0
		gapExtra := 0.0
		switch st.Align {
		case style.AlignCenter:
			if natural < availW {
				offset = (availW - natural) / 2
			}
		case style.AlignRight:
			if natural < availW {
				offset = availW - natural
			}
		case style.AlignJustify:
			last := idx == len(rawLines)-1
			if !rl.brk && !last && gaps > 0 && natural < availW {
				gapExtra = (availW - natural) / float64(gaps)
			}
		}

		ln := Line{Width: natural}
		x := indent + offset
		for _, tk := range rl.tokens {
			if tk.space {
				// Underlined gaps are drawn so the underline continues
				// across them.
				if strings.Contains(tk.variant, "U") {
					ln.Fragments = append(ln.Fragments, Fragment{Text: " ", Variant: tk.variant, X: x, Width: tk.width})
				}
				x += tk.width + gapExtra
				continue
			}
			ln.Fragments = append(ln.Fragments, Fragment{Text: tk.text, Variant: tk.variant, X: x, Width: tk.width})
			x += tk.width
		}
		lines = append(lines, ln)
	}
	return lines
}

// ParagraphHeight returns the vertical extent of a wrapped paragraph: one
// full leading per line, spacing not included.
func ParagraphHeight(lines []Line, st style.Style) float64 {
	return float64(len(lines)) * st.Leading
}

func startsWithClosing(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && strings.ContainsRune(noSpaceBefore, r)
}
