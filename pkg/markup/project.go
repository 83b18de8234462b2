package markup

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
)

// DefaultDepth is the heading level of top-level object keys.
const DefaultDepth = 3

const maxHeading = 6

// LabelFunc turns a structural key into a display label.
type LabelFunc func(key string) string

// RichText turns a leaf string into nodes. Block is used for standalone
// leaves, Inline inside list items.
type RichText interface {
	Block(s string) ([]*html.Node, error)
	Inline(s string) ([]*html.Node, error)
}

// Options configures a projection.
type Options struct {
	Depth   int
	Exclude map[string]bool
	Labels  LabelFunc
	Rich    RichText
}

// Option mutates Options.
type Option func(*Options)

// WithDepth sets the heading level of the outermost object keys.
func WithDepth(depth int) (opt Option) {
	opt = func(o *Options) {
		o.Depth = depth
	}
	return opt
}

// WithExclude skips the given keys at every nesting level.
func WithExclude(keys ...string) (opt Option) {
	opt = func(o *Options) {
		if o.Exclude == nil {
			o.Exclude = make(map[string]bool, len(keys))
		}
		for _, k := range keys {
			o.Exclude[k] = true
		}
	}
	return opt
}

// WithLabels sets the key label lookup. Without one, keys are shown raw.
func WithLabels(labels LabelFunc) (opt Option) {
	opt = func(o *Options) {
		o.Labels = labels
	}
	return opt
}

// WithRichText renders leaf strings through a rich text converter.
func WithRichText(rich RichText) (opt Option) {
	opt = func(o *Options) {
		o.Rich = rich
	}
	return opt
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) (o Options) {
	o = Options{Depth: DefaultDepth}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Depth < 1 {
		o.Depth = 1
	}
	if o.Labels == nil {
		o.Labels = func(key string) string { return key }
	}
	return o
}

// Project turns a Document into markup. Arrays become unordered lists,
// leaves become paragraphs and objects become one labeled section per key.
// Null, undefined and empty compounds yield no nodes.
func Project(value document.Document, opts ...Option) (nodes []*html.Node) {
	o := NewOptions(opts...)
	nodes = o.Project(value, o.Depth)
	return nodes
}

// Project projects value with headings starting at depth.
func (o Options) Project(value document.Document, depth int) (nodes []*html.Node) {
	switch value.Kind() {
	case document.Array:
		nodes = o.projectArray(value, depth)
	case document.Object:
		nodes = o.projectObject(value, depth)
	case document.String, document.Number, document.Bool:
		nodes = []*html.Node{o.paragraph(value)}
	}
	return nodes
}

func (o Options) projectArray(value document.Document, depth int) (nodes []*html.Node) {
	list := Element("ul", nil)
	for _, item := range value.Items() {
		li := Element("li", nil)
		switch {
		case item.IsCompound():
			children := o.Project(item, depth)
			if len(children) == 0 {
				continue
			}
			Append(li, children...)
		case item.IsDefined() && item.Kind() != document.Null:
			Append(li, o.Inline(item)...)
		default:
			continue
		}
		list.AppendChild(li)
	}

	if list.FirstChild == nil {
		return nodes
	}
	nodes = []*html.Node{list}
	return nodes
}

func (o Options) projectObject(value document.Document, depth int) (nodes []*html.Node) {
	for _, key := range value.Keys() {
		if o.Exclude[key] {
			continue
		}
		section := Element("section", Attrs("data-key", key),
			Element(Heading(depth), nil, Text(o.Labels(key))),
		)
		Append(section, o.Project(value.Get(key), depth+1)...)
		nodes = append(nodes, section)
	}
	return nodes
}

func (o Options) paragraph(value document.Document) (n *html.Node) {
	if s, ok := value.Str(); ok && o.Rich != nil {
		rich, err := o.Rich.Block(s)
		if err == nil && len(rich) > 0 {
			n = Element("div", Class("rich-text"), rich...)
			return n
		}
	}
	n = Element("p", nil, Text(value.Text()))
	return n
}

// Inline returns the nodes for a leaf placed inside another element.
func (o Options) Inline(value document.Document) (nodes []*html.Node) {
	if s, ok := value.Str(); ok && o.Rich != nil {
		rich, err := o.Rich.Inline(s)
		if err == nil && len(rich) > 0 {
			nodes = rich
			return nodes
		}
	}
	nodes = []*html.Node{Text(value.Text())}
	return nodes
}

// Heading returns the heading tag for depth, kept within h1..h6.
func Heading(depth int) (tag string) {
	switch {
	case depth < 1:
		depth = 1
	case depth > maxHeading:
		depth = maxHeading
	}
	tag = "h" + strconv.Itoa(depth)
	return tag
}
