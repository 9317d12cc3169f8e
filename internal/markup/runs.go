package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Run is one styled fragment of a paragraph. A run is either a piece of text
// with its formatting flags or an explicit line break (Break true, empty
// Text).
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Break     bool
}

// ParseRuns parses inline markup into its run sequence. Unlike Translate,
// which reduces foreign HTML, this parses our own subset, so formatting
// nests: <b><i>x</i></b> yields a run that is both bold and italic.
// Unrecognized tags are transparent and only their content is kept, with
// the surrounding flags still applied. ParseRuns never fails.
func ParseRuns(markup string) []Run {
	if markup == "" {
		return nil
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return []Run{{Text: markup}}
	}
	body := findBody(doc)
	if body == nil {
		return nil
	}

	var runs []Run
	var walk func(n *html.Node, bold, italic, underline bool)
	walk = func(n *html.Node, bold, italic, underline bool) {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				runs = append(runs, Run{Text: n.Data, Bold: bold, Italic: italic, Underline: underline})
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "b", "strong":
				bold = true
			case "i", "em":
				italic = true
			case "u":
				underline = true
			case "br":
				runs = append(runs, Run{Break: true})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, bold, italic, underline)
		}
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		walk(c, false, false, false)
	}
	return runs
}
