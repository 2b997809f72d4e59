package preview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnsupportedContent is returned for bodies that cannot be rendered as text.
var ErrUnsupportedContent = errors.New("preview: unsupported content type")

// Kind is the rendering family of a page.
type Kind string

const (
	KindHTML Kind = "html"
	KindPDF  Kind = "pdf"
	KindJSON Kind = "json"
	KindXML  Kind = "xml"
	KindText Kind = "text"
)

// Link is an anchor found in an HTML page, resolved against the page URL.
type Link struct {
	Text string
	URL  string
}

// Page is the text rendition of a fetched document.
type Page struct {
	URL         string
	Kind        Kind
	ContentType string
	Title       string
	Text        string
	Links       []Link
	Source      string
	Size        int
	FromCache   bool
	Stale       bool
}

// Extract renders body according to its detected MIME type.
func Extract(pageURL string, body []byte) (*Page, error) {
	mt := mimetype.Detect(body)
	page := &Page{URL: pageURL, ContentType: mt.String(), Size: len(body)}

	switch {
	case mt.Is("text/html"):
		if err := extractHTML(page, body); err != nil {
			return nil, err
		}
	case mt.Is("application/pdf"):
		text, err := extractPDF(body)
		if err != nil {
			return nil, err
		}
		page.Kind = KindPDF
		page.Text = text
	case mt.Is("application/json"):
		var data any
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		pretty, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("remarshalling json: %w", err)
		}
		page.Kind = KindJSON
		page.Text = string(pretty)
		page.Source = page.Text
	case isXML(mt):
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(body); err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		doc.Indent(2)
		src, err := doc.WriteToString()
		if err != nil {
			return nil, fmt.Errorf("writing indented xml: %w", err)
		}
		page.Kind = KindXML
		page.Source = strings.TrimRight(src, "\n")
		page.Text = page.Source
		if root := doc.Root(); root != nil {
			page.Title = root.Tag
		}
	case isText(mt):
		page.Kind = KindText
		page.Text = string(body)
		page.Source = page.Text
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, mt.String())
	}
	return page, nil
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func isXML(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/xml") || m.Is("application/xml") {
			return true
		}
	}
	return false
}

func extractPDF(body []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return strings.TrimSpace(string(text)), nil
}

var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Svg:      true,
	atom.Head:     true,
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Nav: true, atom.Main: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Br: true, atom.Tr: true,
	atom.Table: true, atom.Blockquote: true, atom.Pre: true, atom.Form: true,
}

func extractHTML(page *Page, body []byte) error {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parsing html: %w", err)
	}
	base, _ := url.Parse(page.URL)

	page.Kind = KindHTML
	page.Title = findTitle(doc)

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := collapseSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.A {
				if link, ok := anchor(n, base); ok {
					page.Links = append(page.Links, link)
				}
			}
			if blockElements[n.DataAtom] {
				flush()
				defer flush()
			}
		}
		if n.Type == html.TextNode {
			current.WriteString(n.Data)
			current.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	flush()

	page.Text = strings.Join(lines, "\n")
	page.Source = string(gohtml.FormatBytes(bytes.TrimSpace(body)))
	return nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		return collapseSpace(textOf(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func anchor(n *html.Node, base *url.URL) (Link, bool) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return Link{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Link{}, false
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	return Link{Text: collapseSpace(textOf(n)), URL: ref.String()}, true
}

func textOf(n *html.Node) string {
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

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
