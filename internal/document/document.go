// Package document wraps goquery in a small, lenient tree model. Lookups that
// can miss return an explicit ok flag instead of an empty selection, so the
// callers decide what a missing element means.
package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Node is a single element of a parsed document.
type Node interface {
	// FindFirst returns the first descendant matching selector.
	FindFirst(selector string) (Node, bool)
	// FindAll returns every descendant matching selector, in document order.
	FindAll(selector string) []Node
	// Attr returns the value of the named attribute, if present.
	Attr(name string) (string, bool)
	// Text returns the combined text of the node and its descendants, untouched.
	Text() string
	// NormalizedText returns Text with newlines removed and surrounding
	// whitespace trimmed. It is absent when nothing is left.
	NormalizedText() (string, bool)
}

// Document is the root of a parsed page. It is not safe for concurrent use
// and is meant to live for a single request.
type Document struct {
	node
}

// Parse builds a Document from raw HTML. It never fails: the HTML5 parsing
// algorithm repairs unclosed tags and odd nesting, and a reader failure
// degrades to an empty document.
func Parse(raw string) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return &Document{node{doc.Selection}}
}

type node struct {
	selection *goquery.Selection
}

func (n node) FindFirst(selector string) (Node, bool) {
	found := n.selection.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return node{found}, true
}

func (n node) FindAll(selector string) []Node {
	found := n.selection.Find(selector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, node{s})
	})
	return nodes
}

func (n node) Attr(name string) (string, bool) {
	return n.selection.Attr(name)
}

func (n node) Text() string {
	return n.selection.Text()
}

func (n node) NormalizedText() (string, bool) {
	text := Normalize(n.selection.Text())
	return text, text != ""
}

// Normalize removes every newline from s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", ""))
}
