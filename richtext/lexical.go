// Package richtext converts the flat HTML bodies exported by WordPress into
// the document formats Ghost stores next to a post.
package richtext

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	nodeVersion   = 1
	directionLTR  = "ltr"
	typeRoot      = "root"
	typeParagraph = "paragraph"
	typeText      = "extended-text"
	modeNormal    = "normal"
)

// Lexical is the editor state Ghost keeps in posts.lexical.
type Lexical struct {
	Root Root `json:"root"`
}

type Root struct {
	Children  []Paragraph `json:"children"`
	Direction string      `json:"direction"`
	Format    string      `json:"format"`
	Indent    int         `json:"indent"`
	Type      string      `json:"type"`
	Version   int         `json:"version"`
}

type Paragraph struct {
	Children  []TextNode `json:"children"`
	Direction string     `json:"direction"`
	Format    string     `json:"format"`
	Indent    int        `json:"indent"`
	Type      string     `json:"type"`
	Version   int        `json:"version"`
}

// TextNode is a leaf carrying one text segment with formatting cleared.
type TextNode struct {
	Detail  int    `json:"detail"`
	Format  int    `json:"format"`
	Mode    string `json:"mode"`
	Style   string `json:"style"`
	Text    string `json:"text"`
	Type    string `json:"type"`
	Version int    `json:"version"`
}

// FromHTML builds a Lexical document with one paragraph per <p> element of
// htmlStr, in document order. Every text node below a <p> becomes its own leaf.
// Markup outside <p> elements is dropped. It never fails: input the parser
// cannot make sense of yields an empty root.
func FromHTML(htmlStr string) Lexical {
	paragraphs := make([]Paragraph, 0)

	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err == nil {
		goquery.NewDocumentFromNode(doc).Find("p").Each(func(_ int, s *goquery.Selection) {
			for _, n := range s.Nodes {
				paragraphs = append(paragraphs, newParagraph(textSegments(n)))
			}
		})
	}

	return Lexical{
		Root: Root{
			Children:  paragraphs,
			Direction: directionLTR,
			Format:    "",
			Indent:    0,
			Type:      typeRoot,
			Version:   nodeVersion,
		},
	}
}

// LexicalJSON serializes FromHTML(htmlStr) for the posts.lexical column.
func LexicalJSON(htmlStr string) string {
	b, err := json.Marshal(FromHTML(htmlStr))
	if err != nil {
		// only strings and ints in the tree
		return `{"root":{"children":[],"direction":"ltr","format":"","indent":0,"type":"root","version":1}}`
	}
	return string(b)
}

func newParagraph(segments []string) Paragraph {
	children := make([]TextNode, 0, len(segments))
	for _, text := range segments {
		children = append(children, TextNode{
			Detail:  0,
			Format:  0,
			Mode:    modeNormal,
			Style:   "",
			Text:    text,
			Type:    typeText,
			Version: nodeVersion,
		})
	}
	return Paragraph{
		Children:  children,
		Direction: directionLTR,
		Format:    "",
		Indent:    0,
		Type:      typeParagraph,
		Version:   nodeVersion,
	}
}

// textSegments returns the data of every text node below n in document order.
func textSegments(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				out = append(out, c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
