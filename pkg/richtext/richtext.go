// Package richtext renders Markdown leaf strings into sanitized markup nodes.
package richtext

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Converter turns Markdown into sanitized x/net/html nodes. It is safe for
// concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewConverter returns a Converter with the default allowlist.
func NewConverter() (c *Converter) {
	c = &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		),
		policy: Policy(),
	}
	return c
}

// Policy is the allowlist used for résumé text: basic formatting, lists,
// code and links with standard URL schemes.
func Policy() (policy *bluemonday.Policy) {
	policy = bluemonday.NewPolicy()
	policy.AllowStandardURLs()
	policy.AllowElements(
		"p", "br",
		"strong", "b", "em", "i", "del",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// HTML converts s to a sanitized HTML string.
func (c *Converter) HTML(s string) (out string, err error) {
	var buf bytes.Buffer
	err = c.md.Convert([]byte(s), &buf)
	if err != nil {
		err = errors.Wrap(err, "failed to convert markdown")
		return out, err
	}
	out = c.policy.SanitizeReader(&buf).String()
	return out, err
}

// Block converts s into top level block nodes, usually a single paragraph.
func (c *Converter) Block(s string) (nodes []*html.Node, err error) {
	out, err := c.HTML(s)
	if err != nil {
		return nodes, err
	}

	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(out), context)
	if err != nil {
		err = errors.Wrap(err, "failed to parse converted markdown")
		return nodes, err
	}

	for _, n := range parsed {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes, err
}

// Inline converts s for use inside another element. A lone paragraph is
// unwrapped to its children.
func (c *Converter) Inline(s string) (nodes []*html.Node, err error) {
	nodes, err = c.Block(s)
	if err != nil {
		return nodes, err
	}
	if len(nodes) != 1 || nodes[0].DataAtom != atom.P {
		return nodes, err
	}

	p := nodes[0]
	nodes = nil
	for child := p.FirstChild; child != nil; {
		next := child.NextSibling
		p.RemoveChild(child)
		nodes = append(nodes, child)
		child = next
	}
	return nodes, err
}
