package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/quizfixture/model"
)

// Reader provides access to a rendered HTML preview.
type Reader struct {
	doc   *html.Node
	title string
	tree  *model.Document
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:  doc,
		tree: model.NewDocument(),
	}

	if t := findElement(doc, "title"); t != nil {
		reader.title = getTextContent(t)
	}
	reader.tree.Metadata.Title = reader.title

	body := findElement(doc, "body")
	if body == nil {
		// No body tag, try to extract from root
		body = doc
	}
	reader.traverseNode(body)

	return reader, nil
}

// Title returns the text of the <title> element.
func (r *Reader) Title() string {
	return r.title
}

// Document returns the headings and paragraphs found in the page.
func (r *Reader) Document() *model.Document {
	return r.tree
}

// Highlights returns the text of every <mark> element in document order.
func (r *Reader) Highlights() []string {
	var out []string
	for _, run := range r.tree.HighlightedRuns() {
		out = append(out, run.Text)
	}
	return out
}

// traverseNode recursively processes DOM nodes.
func (r *Reader) traverseNode(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			if level == 1 && hasClass(n, "title") {
				level = 0
			}
			r.tree.AddHeading(getTextContent(n), level)
			return

		case "p":
			p := r.tree.AddParagraph()
			collectRuns(n, p, model.HighlightNone)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.traverseNode(c)
	}
}

// collectRuns appends the inline content of n to p. Text inside <mark>
// becomes a highlighted run; <br> becomes a newline in the current run.
func collectRuns(n *html.Node, p *model.Paragraph, highlight model.HighlightColor) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			appendToRun(p, c.Data, highlight)
		case html.ElementNode:
			switch c.Data {
			case "br":
				appendToRun(p, "\n", highlight)
			case "mark":
				color := model.ParseHighlight(getAttr(c, "data-color"))
				if color == model.HighlightNone {
					color = model.HighlightYellow
				}
				collectRuns(c, p, color)
			default:
				collectRuns(c, p, highlight)
			}
		}
	}
}

// appendToRun extends the last run when it shares the highlight, otherwise
// starts a new run.
func appendToRun(p *model.Paragraph, text string, highlight model.HighlightColor) {
	if n := len(p.Runs); n > 0 && p.Runs[n-1].Highlight == highlight {
		p.Runs[n-1].Text += text
		return
	}
	p.AddRun(text, highlight)
}

// shouldSkipElement returns true for non-content elements.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "head", "template":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// getTextContent returns all text content of a node, with <br> as newline.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		result.WriteString(n.Data)
	case n.Type == html.ElementNode && n.Data == "br":
		result.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
