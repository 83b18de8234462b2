// Package sections renders the résumé collections that need more than the
// generic projector: projects, education and experience cards, and contact.
package sections

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/i18n"
	"github.com/nikogura/resume-render/pkg/markup"
)

// Projector renders sections with labels from one locale.
type Projector struct {
	labels *i18n.Labels
	rich   markup.RichText
}

// New returns a Projector. labels may be nil, in which case keys are shown
// raw. rich may be nil for plain text leaves.
func New(labels *i18n.Labels, rich markup.RichText) (p *Projector) {
	p = &Projector{labels: labels, rich: rich}
	return p
}

// Labels returns the label lookup used by the projector.
func (p *Projector) Labels() (labels *i18n.Labels) {
	labels = p.labels
	return labels
}

// Options returns generic projector options wired to the projector's labels
// and rich text converter.
func (p *Projector) Options(opts ...markup.Option) (o markup.Options) {
	base := []markup.Option{markup.WithLabels(p.labels.Key)}
	if p.rich != nil {
		base = append(base, markup.WithRichText(p.rich))
	}
	o = markup.NewOptions(append(base, opts...)...)
	return o
}

// Generic projects value with the generic projector.
func (p *Projector) Generic(value document.Document, opts ...markup.Option) (nodes []*html.Node) {
	o := p.Options(opts...)
	nodes = o.Project(value, o.Depth)
	return nodes
}

// remainder returns the fields of entry not listed in consumed, in order.
func remainder(entry document.Document, consumed ...string) (rest document.Document) {
	skip := make(map[string]bool, len(consumed))
	for _, k := range consumed {
		skip[k] = true
	}

	b := document.NewBuilder()
	for _, k := range entry.Keys() {
		if skip[k] {
			continue
		}
		b.Set(k, entry.Get(k))
	}
	rest = b.Document()
	return rest
}

// firstText returns the text of the first key holding a non-empty leaf.
func firstText(entry document.Document, keys ...string) (key, text string) {
	for _, k := range keys {
		v := entry.Get(k)
		if v.IsCompound() {
			continue
		}
		if t := v.Text(); t != "" {
			key = k
			text = t
			return key, text
		}
	}
	return key, text
}

// SafeURL reports whether raw may be used as an href or src: an http or
// https URL, or a relative reference without a scheme.
func SafeURL(raw string) (ok bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ok
	}
	switch parsed.Scheme {
	case "", "http", "https":
		ok = true
	}
	return ok
}

// externalLink builds an anchor that opens in a new tab.
func externalLink(href string, attrs []html.Attribute, children ...*html.Node) (n *html.Node) {
	attrs = append(markup.Attrs("href", href, "target", "_blank", "rel", "noopener noreferrer"), attrs...)
	n = markup.Element("a", attrs, children...)
	return n
}
