// Package page fills the named slots of an HTML page shell.
package page

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TranslateAttr marks shell elements whose text is a label key.
const TranslateAttr = "data-i18n"

//go:embed assets/index.html
var defaultShell []byte

// DefaultShell returns a copy of the built in page shell.
func DefaultShell() (shell []byte) {
	shell = bytes.Clone(defaultShell)
	return shell
}

// LoadShell reads a shell file, or returns the built in shell when path is
// empty.
func LoadShell(path string) (shell []byte, err error) {
	if path == "" {
		shell = DefaultShell()
		return shell, err
	}

	shell, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read page shell %s", path)
		return shell, err
	}
	return shell, err
}

// Page is a parsed shell. A Page is not safe for concurrent use; parse one
// per render.
type Page struct {
	root    *html.Node
	ids     map[string]*html.Node
	missing []string
}

// New parses shell.
func New(shell []byte) (p *Page, err error) {
	root, err := html.Parse(bytes.NewReader(shell))
	if err != nil {
		err = errors.Wrap(err, "failed to parse page shell")
		return p, err
	}

	p = &Page{root: root, ids: make(map[string]*html.Node)}
	walk(root, func(n *html.Node) {
		if id := attr(n, "id"); id != "" {
			if _, seen := p.ids[id]; !seen {
				p.ids[id] = n
			}
		}
	})
	return p, err
}

// Has reports whether the shell holds an element with id.
func (p *Page) Has(id string) (ok bool) {
	_, ok = p.ids[id]
	return ok
}

// Fill replaces the children of the element with id by nodes. A missing
// slot is recorded and reported by Missing.
func (p *Page) Fill(id string, nodes []*html.Node) (ok bool) {
	slot, ok := p.ids[id]
	if !ok {
		p.missing = append(p.missing, id)
		return ok
	}

	for c := slot.FirstChild; c != nil; c = slot.FirstChild {
		slot.RemoveChild(c)
	}
	for _, n := range nodes {
		if n == nil || n.Parent != nil {
			continue
		}
		slot.AppendChild(n)
	}
	return ok
}

// SetText replaces the children of the element with id by a text node.
func (p *Page) SetText(id, text string) (ok bool) {
	ok = p.Fill(id, []*html.Node{{Type: html.TextNode, Data: text}})
	return ok
}

// SetLang sets the lang attribute of the html element.
func (p *Page) SetLang(lang string) {
	walk(p.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Html {
			setAttr(n, "lang", lang)
		}
	})
}

// WireSwitch points the locale switch with id at href and marks it current
// when active.
func (p *Page) WireSwitch(id, href string, active bool) (ok bool) {
	n, ok := p.ids[id]
	if !ok {
		p.missing = append(p.missing, id)
		return ok
	}

	setAttr(n, "href", href)
	removeAttr(n, "aria-current")
	if active {
		setAttr(n, "aria-current", "true")
	}
	return ok
}

// Translate replaces the text of every element carrying TranslateAttr with
// lookup(key, currentText).
func (p *Page) Translate(lookup func(key, fallback string) string) {
	walk(p.root, func(n *html.Node) {
		key := attr(n, TranslateAttr)
		if key == "" {
			return
		}
		text := lookup(key, strings.TrimSpace(textContent(n)))
		for c := n.FirstChild; c != nil; c = n.FirstChild {
			n.RemoveChild(c)
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	})
}

// Missing lists the slot ids that were targeted but not found, in order.
func (p *Page) Missing() (ids []string) {
	ids = append(ids, p.missing...)
	return ids
}

// Render writes the page.
func (p *Page) Render(w io.Writer) (err error) {
	err = html.Render(w, p.root)
	if err != nil {
		err = errors.Wrap(err, "failed to render page")
		return err
	}
	return err
}

// Bytes renders the page into memory.
func (p *Page) Bytes() (out []byte, err error) {
	var buf bytes.Buffer
	err = p.Render(&buf)
	if err != nil {
		return out, err
	}
	out = buf.Bytes()
	return out, err
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (val string) {
	if n.Type != html.ElementNode {
		return val
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			val = a.Val
			return val
		}
	}
	return val
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func textContent(n *html.Node) (text string) {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	text = b.String()
	return text
}
