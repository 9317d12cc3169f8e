package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeKind enumerates the node kinds the translator recognizes. The set is
// closed: anything outside it is kindUnknown and contributes only its
// flattened text content.
type nodeKind int

const (
	kindText nodeKind = iota
	kindBold
	kindItalic
	kindUnderline
	kindBreak
	kindParagraph
	kindUnknown
)

func classify(n *html.Node) nodeKind {
	switch n.Type {
	case html.TextNode:
		return kindText
	case html.ElementNode:
		switch n.Data {
		case "b", "strong":
			return kindBold
		case "i", "em":
			return kindItalic
		case "u":
			return kindUnderline
		case "br":
			return kindBreak
		case "p":
			return kindParagraph
		}
	}
	return kindUnknown
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// Translate converts HTML produced by a rich-text editor into the engine's
// inline markup. Bold, italic and underline elements keep only their
// flattened text content, so nested marks inside them are lost:
// <b>foo<i>bar</i></b> becomes <b>foobar</b>. Line breaks map to <br/>, and
// a paragraph boundary appends a single <br/> when text has already
// accumulated. Unrecognized elements contribute their flattened text only.
// Translate never fails; empty input yields an empty string.
func Translate(src string) string {
	if src == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return escapeText(src)
	}

	var b strings.Builder
	body := findBody(doc)
	if body == nil {
		return ""
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		translateNode(c, &b)
	}
	return b.String()
}

// translateNode appends the translation of one node. Marked elements and
// unknown elements consume their whole subtree; only paragraph nodes keep
// walking their children with full dispatch.
func translateNode(n *html.Node, b *strings.Builder) {
	switch classify(n) {
	case kindText:
		b.WriteString(escapeText(n.Data))
	case kindBold:
		b.WriteString("<b>")
		b.WriteString(escapeText(flattenText(n)))
		b.WriteString("</b>")
	case kindItalic:
		b.WriteString("<i>")
		b.WriteString(escapeText(flattenText(n)))
		b.WriteString("</i>")
	case kindUnderline:
		b.WriteString("<u>")
		b.WriteString(escapeText(flattenText(n)))
		b.WriteString("</u>")
	case kindBreak:
		b.WriteString("<br/>")
	case kindParagraph:
		if b.Len() > 0 {
			b.WriteString("<br/>")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			translateNode(c, b)
		}
	case kindUnknown:
		b.WriteString(escapeText(flattenText(n)))
	}
}

// flattenText concatenates the text nodes of a subtree in document order.
func flattenText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
