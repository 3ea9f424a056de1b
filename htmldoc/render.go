// Package htmldoc renders fixture documents as HTML previews and reads the
// previews back.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/quizfixture/model"
)

// Render writes doc as a standalone HTML page. The title heading (level 0)
// becomes <h1 class="title">; highlighted runs become <mark data-color="...">.
func Render(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html, html.Attribute{Key: "lang", Val: "zh-CN"})
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(textNode(documentTitle(doc)))
	head.AppendChild(title)
	style := element(atom.Style)
	style.AppendChild(textNode(`mark[data-color="yellow"]{background:#ff0}`))
	head.AppendChild(style)
	htmlEl.AppendChild(head)

	body := element(atom.Body)
	htmlEl.AppendChild(body)

	for _, block := range doc.Blocks {
		switch el := block.(type) {
		case *model.Heading:
			body.AppendChild(headingNode(el))
		case *model.Paragraph:
			p := element(atom.P)
			for _, run := range el.Runs {
				appendRun(p, run)
			}
			body.AppendChild(p)
		}
	}

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// RenderFile writes the preview to path, replacing any existing file.
func RenderFile(path string, doc *model.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := Render(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func documentTitle(doc *model.Document) string {
	if doc.Metadata.Title != "" {
		return doc.Metadata.Title
	}
	if hs := doc.Headings(); len(hs) > 0 {
		return hs[0].Text
	}
	return ""
}

func headingNode(h *model.Heading) *html.Node {
	level := h.Level
	var attrs []html.Attribute
	if level == 0 {
		level = 1
		attrs = append(attrs, html.Attribute{Key: "class", Val: "title"})
	}
	if level > 6 {
		level = 6
	}

	tag := "h" + strconv.Itoa(level)
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag, Attr: attrs}
	appendText(n, h.Text)
	return n
}

func appendRun(parent *html.Node, run model.Run) {
	if !run.Highlighted() {
		appendText(parent, run.Text)
		return
	}
	mark := element(atom.Mark, html.Attribute{Key: "data-color", Val: run.Highlight.String()})
	appendText(mark, run.Text)
	parent.AppendChild(mark)
}

// appendText adds text to n, turning newlines into <br> elements.
func appendText(n *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			n.AppendChild(element(atom.Br))
		}
		if line != "" {
			n.AppendChild(textNode(line))
		}
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
