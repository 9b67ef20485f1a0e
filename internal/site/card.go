// Package site turns portfolio card fragments into standalone pages and
// serves the site locally.
package site

import (
	"bytes"
	"html/template"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Card is the content extracted from one card fragment.
type Card struct {
	Title       string
	Year        string
	Institution string
	Description []template.HTML // one entry per paragraph
	Tags        []string
	Media       template.HTML
	Links       []Link
}

// Link is an external resource listed on a card.
type Link struct {
	URL  string
	Text string
}

const (
	defaultTitle       = "Project"
	defaultInstitution = "Personal"

	descriptionClass = "text-[#9eb7a8]"
	tagClassPrefix   = "px-2 py-1 bg-[#38e07b]/20"
	institutionClass = "text-xs text-white"
	titleStopPrefix  = "ml-2"
)

var yearRe = regexp.MustCompile(`^\d{4}$`)

// ParseCard extracts a Card from an HTML fragment. Missing pieces fall back
// to defaults rather than failing.
func ParseCard(r io.Reader) (Card, error) {
	nodes, err := html.ParseFragment(r, &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	if err != nil {
		return Card{}, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	c := Card{Title: defaultTitle, Institution: defaultInstitution}
	if h3 := find(root, func(n *html.Node) bool { return n.DataAtom == atom.H3 }); h3 != nil {
		if t := strings.TrimSpace(titleText(h3)); t != "" {
			c.Title = t
		}
	}
	if y := find(root, func(n *html.Node) bool {
		return n.DataAtom == atom.Span && yearRe.MatchString(strings.TrimSpace(textOf(n)))
	}); y != nil {
		c.Year = strings.TrimSpace(textOf(y))
	}
	if in := find(root, func(n *html.Node) bool {
		return n.DataAtom == atom.Span && attr(n, "class") == institutionClass
	}); in != nil {
		c.Institution = strings.TrimSpace(textOf(in))
	}
	if p := find(root, func(n *html.Node) bool {
		return n.DataAtom == atom.P && strings.HasPrefix(attr(n, "class"), descriptionClass)
	}); p != nil {
		c.Description = paragraphs(p)
	}
	for _, t := range findAll(root, func(n *html.Node) bool {
		return n.DataAtom == atom.Span && strings.HasPrefix(attr(n, "class"), tagClassPrefix)
	}) {
		c.Tags = append(c.Tags, strings.TrimSpace(textOf(t)))
	}
	c.Media = media(root)
	for _, a := range findAll(root, func(n *html.Node) bool {
		return n.DataAtom == atom.A && attr(n, "target") == "_blank"
	}) {
		span := find(a, func(n *html.Node) bool { return n.DataAtom == atom.Span })
		if span == nil {
			continue
		}
		href := attr(a, "href")
		if strings.HasPrefix(href, "projects/") {
			href = "../" + href
		}
		c.Links = append(c.Links, Link{URL: href, Text: strings.TrimSpace(textOf(span))})
	}
	return c, nil
}

// titleText collects the heading text up to the badge span.
func titleText(h3 *html.Node) string {
	var b strings.Builder
	for ch := h3.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Span && strings.HasPrefix(attr(ch, "class"), titleStopPrefix) {
			break
		}
		b.WriteString(textOf(ch))
	}
	return b.String()
}

// paragraphs splits the children of p on <br> and renders each run.
func paragraphs(p *html.Node) []template.HTML {
	var out []template.HTML
	var buf bytes.Buffer
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			out = append(out, template.HTML(s))
		}
		buf.Reset()
	}
	for ch := p.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Br {
			flush()
			continue
		}
		_ = html.Render(&buf, ch)
	}
	flush()
	return out
}

// media returns the card's video with image paths lifted one directory, or
// a rebuilt img tag, or nothing.
func media(root *html.Node) template.HTML {
	if v := find(root, func(n *html.Node) bool { return n.DataAtom == atom.Video }); v != nil {
		walk(v, func(n *html.Node) {
			for i, a := range n.Attr {
				if a.Key == "src" && strings.HasPrefix(a.Val, "images/") {
					n.Attr[i].Val = "../" + a.Val
				}
			}
		})
		var buf bytes.Buffer
		if err := html.Render(&buf, v); err == nil {
			return template.HTML(buf.String())
		}
	}
	if img := find(root, func(n *html.Node) bool { return n.DataAtom == atom.Img && attr(n, "src") != "" }); img != nil {
		var buf bytes.Buffer
		buf.WriteString(`<img src="`)
		buf.WriteString(html.EscapeString("../" + attr(img, "src")))
		buf.WriteString(`" alt="`)
		buf.WriteString(html.EscapeString(attr(img, "alt")))
		buf.WriteString(`" class="w-full rounded-lg" />`)
		return template.HTML(buf.String())
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b.WriteString(textOf(ch))
	}
	return b.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		walk(ch, fn)
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var visit func(*html.Node) bool
	visit = func(x *html.Node) bool {
		if x.Type == html.ElementNode && match(x) {
			found = x
			return true
		}
		for ch := x.FirstChild; ch != nil; ch = ch.NextSibling {
			if visit(ch) {
				return true
			}
		}
		return false
	}
	visit(n)
	return found
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	walk(n, func(x *html.Node) {
		if x.Type == html.ElementNode && match(x) {
			out = append(out, x)
		}
	})
	return out
}
