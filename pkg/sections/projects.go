package sections

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/i18n"
	"github.com/nikogura/resume-render/pkg/markup"
)

// Project record keys.
const (
	KeyTitle               = "title"
	KeyImage               = "image"
	KeyDescription         = "description"
	KeyFeatures            = "features"
	KeyTechnicalHighlights = "technicalHighlights"
	KeyDemoURL             = "demoUrl"
	KeyRepository          = "repository"
)

//nolint:gochecknoglobals // fixed vocabulary
var projectKeys = []string{
	KeyTitle, KeyImage, KeyDescription, KeyFeatures,
	KeyTechnicalHighlights, KeyDemoURL, KeyRepository,
}

// Projects renders an array of project records. Anything else is projected
// generically.
func (p *Projector) Projects(value document.Document) (nodes []*html.Node) {
	if value.Kind() != document.Array {
		nodes = p.Generic(value)
		return nodes
	}

	for _, item := range value.Items() {
		if item.Kind() != document.Object {
			nodes = append(nodes, p.Generic(item)...)
			continue
		}
		nodes = append(nodes, p.Project(item))
	}
	return nodes
}

// Project renders a single project record. Each missing optional field
// leaves out its fragment.
func (p *Projector) Project(record document.Document) (n *html.Node) {
	n = markup.Element("article", markup.Class("project"))
	title := record.Get(KeyTitle).Text()

	markup.Append(n, p.projectImage(record.Get(KeyImage).Text(), title))

	if title != "" {
		n.AppendChild(markup.Element("h3", markup.Class("project-title"), markup.Text(title)))
	}

	o := p.Options(markup.WithDepth(markup.DefaultDepth + 1))
	if desc := record.Get(KeyDescription); desc.IsDefined() {
		markup.Append(n, o.Project(desc, o.Depth)...)
	}

	markup.Append(n,
		p.details(record.Get(KeyFeatures), KeyFeatures, "Features", o),
		p.details(record.Get(KeyTechnicalHighlights), KeyTechnicalHighlights, "Technical highlights", o),
	)
	markup.Append(n, p.projectLinks(record)...)

	markup.Append(n, o.Project(remainder(record, projectKeys...), o.Depth)...)
	return n
}

func (p *Projector) projectImage(src, title string) (n *html.Node) {
	if src != "" && SafeURL(src) {
		n = markup.Element("img", markup.Attrs("class", "project-image", "src", src, "alt", title))
		return n
	}

	initial, _ := utf8.DecodeRuneInString(strings.TrimSpace(title))
	if initial == utf8.RuneError {
		return n
	}
	n = markup.Element("div",
		markup.Attrs("class", "project-image project-placeholder", "aria-hidden", "true"),
		markup.Text(strings.ToUpper(string(initial))),
	)
	return n
}

// details renders a collapsible list, or nothing when the list is empty.
func (p *Projector) details(value document.Document, key, fallback string, o markup.Options) (n *html.Node) {
	body := o.Project(value, o.Depth)
	if len(body) == 0 {
		return n
	}
	n = markup.Element("details", markup.Class("project-"+strings.ToLower(key)),
		markup.Element("summary", nil, markup.Text(p.labels.Section(key, fallback))),
	)
	markup.Append(n, body...)
	return n
}

type projectLink struct {
	key  string
	href string
}

// projectLinks renders the demo and repository links twice: as anchors for
// screens and as plain text for print.
func (p *Projector) projectLinks(record document.Document) (nodes []*html.Node) {
	links := make([]projectLink, 0, 2)
	for _, k := range []string{KeyDemoURL, KeyRepository} {
		if href := strings.TrimSpace(record.Get(k).Text()); href != "" && SafeURL(href) {
			links = append(links, projectLink{key: k, href: href})
		}
	}
	if len(links) == 0 {
		return nodes
	}

	screen := markup.Element("div", markup.Class("project-links screen-only"))
	printed := markup.Element("div", markup.Class("project-links print-only"))
	for _, l := range links {
		label := p.linkLabel(l.key)
		screen.AppendChild(externalLink(l.href, markup.Class("project-link"), markup.Text(label)))
		printed.AppendChild(markup.Element("p", nil, markup.Text(label+": "+l.href)))
	}
	nodes = []*html.Node{screen, printed}
	return nodes
}

func (p *Projector) linkLabel(key string) (label string) {
	fallback := "Live demo"
	if key == KeyRepository {
		fallback = "Repository"
	}
	label = p.labels.T("key."+key, i18n.WithDefault(fallback))
	return label
}
