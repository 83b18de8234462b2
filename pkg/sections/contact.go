package sections

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/markup"
)

// Contact list classes.
const (
	ClassContactList    = "contact-list"
	ClassContactCompact = "contact-compact"
)

// DefaultIcon is used for contact keys without a dedicated icon.
const DefaultIcon = "link"

//nolint:gochecknoglobals // fixed vocabulary
var contactIcons = map[string]string{
	"email":    "envelope",
	"linkedin": "linkedin",
	"github":   "github",
}

// Icon returns the icon identifier for a contact key.
func Icon(key string) (icon string) {
	icon, ok := contactIcons[strings.ToLower(key)]
	if !ok {
		icon = DefaultIcon
	}
	return icon
}

// Contact renders a contact object as an icon list in key order. Email
// becomes a mailto link, http values external links, the rest plain text.
func (p *Projector) Contact(value document.Document, class string) (nodes []*html.Node) {
	if value.Kind() != document.Object {
		nodes = p.Generic(value)
		return nodes
	}

	list := markup.Element("ul", markup.Class(class))
	for _, key := range value.Keys() {
		v := value.Get(key)
		if v.IsCompound() {
			continue
		}
		text := strings.TrimSpace(v.Text())
		if text == "" {
			continue
		}

		icon := Icon(key)
		li := markup.Element("li",
			markup.Attrs("class", "contact-item", "data-key", key, "title", p.labels.Key(key)),
			markup.Element("i", markup.Attrs("class", "icon icon-"+icon, "data-icon", icon, "aria-hidden", "true")),
			contactValue(key, text),
		)
		list.AppendChild(li)
	}

	if list.FirstChild == nil {
		return nodes
	}
	nodes = []*html.Node{list}
	return nodes
}

func contactValue(key, text string) (n *html.Node) {
	switch {
	case strings.EqualFold(key, "email"):
		href := text
		if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			href = "mailto:" + href
		}
		n = markup.Element("a", markup.Attrs("href", href), markup.Text(strings.TrimPrefix(text, "mailto:")))
	case strings.HasPrefix(strings.ToLower(text), "http") && SafeURL(text):
		n = externalLink(text, nil, markup.Text(text))
	default:
		n = markup.Element("span", nil, markup.Text(text))
	}
	return n
}
