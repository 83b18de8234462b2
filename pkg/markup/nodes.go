package markup

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element builds an element node with the given attributes
// and appends children in order. Children that already have a parent are
// skipped.
func Element(tag string, attrs []html.Attribute, children ...*html.Node) (n *html.Node) {
	n = &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	Append(n, children...)
	return n
}

// Text builds a text node. Rendering escapes it.
func Text(s string) (n *html.Node) {
	n = &html.Node{Type: html.TextNode, Data: s}
	return n
}

// Attrs turns name/value pairs into attributes. A trailing odd name is dropped.
func Attrs(pairs ...string) (attrs []html.Attribute) {
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, html.Attribute{Key: pairs[i], Val: pairs[i+1]})
	}
	return attrs
}

// Class is shorthand for a single class attribute.
func Class(name string) (attrs []html.Attribute) {
	attrs = Attrs("class", name)
	return attrs
}

// Append adds orphan children to parent, ignoring nil nodes.
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c == nil || c.Parent != nil {
			continue
		}
		parent.AppendChild(c)
	}
}

// Render serializes nodes in order.
func Render(nodes []*html.Node) (out string, err error) {
	var b strings.Builder
	for _, n := range nodes {
		err = html.Render(&b, n)
		if err != nil {
			err = errors.Wrap(err, "failed to render markup")
			return out, err
		}
	}
	out = b.String()
	return out, err
}

// MustRender is Render for nodes built in memory, where rendering into a
// strings.Builder cannot fail.
func MustRender(nodes []*html.Node) (out string) {
	out, _ = Render(nodes)
	return out
}
