package sections

import (
	"slices"
	"time"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/markup"
)

// Card classes.
const (
	ClassFeatured = "card card-featured"
	ClassRegular  = "card"
	ClassMinor    = "card card-minor"
)

// Collection keys of an education or experience object.
const (
	KeyFeatured = "featured"
	KeyMajor    = "major"
	KeyRegular  = "regular"
	KeyMinor    = "minor"
)

//nolint:gochecknoglobals // fixed vocabulary
var (
	titleKeys        = []string{"title", "degree", "role", "position", "course", "name"}
	organizationKeys = []string{"institution", "company", "organization", "school"}
)

// Entry is an education or experience record with its sort keys.
type Entry struct {
	Doc        document.Document
	Status     Status
	StatusText string
	Date       time.Time
}

// NewEntry reads the sort keys of doc.
func NewEntry(doc document.Document) (entry Entry) {
	entry = Entry{Doc: doc, Date: DateOf(doc)}
	entry.Status, entry.StatusText = StatusOf(doc)
	return entry
}

// Compare orders in-progress entries first, then newer dates first.
func Compare(a, b Entry) (c int) {
	if a.Status != b.Status {
		c = int(a.Status) - int(b.Status)
		return c
	}
	c = b.Date.Compare(a.Date)
	return c
}

// SortEntries returns docs sorted by Compare. Entries that compare equal
// keep their input order.
func SortEntries(docs []document.Document) (sorted []document.Document) {
	entries := make([]Entry, len(docs))
	for i, d := range docs {
		entries[i] = NewEntry(d)
	}
	slices.SortStableFunc(entries, Compare)

	sorted = make([]document.Document, len(entries))
	for i, e := range entries {
		sorted[i] = e.Doc
	}
	return sorted
}

// Groups splits a card collection into its parts.
type Groups struct {
	Featured []document.Document
	Regular  []document.Document
	Minor    []document.Document
	Rest     document.Document
}

// Group splits value into featured, regular and minor entries. A bare array
// is all regular. Unknown keys of an object collection end up in Rest.
func Group(value document.Document) (g Groups) {
	switch value.Kind() {
	case document.Array:
		g.Regular = value.Items()
	case document.Object:
		g.Featured = append(members(value.Get(KeyFeatured)), members(value.Get(KeyMajor))...)
		g.Regular = members(value.Get(KeyRegular))
		g.Minor = members(value.Get(KeyMinor))
		g.Rest = remainder(value, KeyFeatured, KeyMajor, KeyRegular, KeyMinor)
	}
	return g
}

// members returns the items of an array or a lone object as a single item.
func members(value document.Document) (items []document.Document) {
	switch value.Kind() {
	case document.Array:
		items = value.Items()
	case document.Object:
		items = []document.Document{value}
	}
	return items
}

// Cards renders an education or experience collection: featured cards,
// then regular cards sorted by status and date, then a grid of minor cards.
func (p *Projector) Cards(value document.Document) (nodes []*html.Node) {
	if value.IsLeaf() {
		nodes = p.Generic(value)
		return nodes
	}

	g := Group(value)
	for _, e := range g.Featured {
		nodes = append(nodes, p.Card(e, ClassFeatured))
	}
	for _, e := range SortEntries(g.Regular) {
		nodes = append(nodes, p.Card(e, ClassRegular))
	}

	if len(g.Minor) > 0 {
		grid := markup.Element("div", markup.Class("card-grid"),
			markup.Element("h3", markup.Class("card-group-title"), markup.Text(p.labels.Section(KeyMinor, "Other"))),
		)
		for _, e := range g.Minor {
			grid.AppendChild(p.Card(e, ClassMinor))
		}
		nodes = append(nodes, grid)
	}

	nodes = append(nodes, p.Generic(g.Rest)...)
	return nodes
}

// Card renders one entry. Non-object entries are projected generically
// inside the card.
func (p *Projector) Card(entry document.Document, class string) (n *html.Node) {
	n = markup.Element("article", markup.Class(class))
	if entry.Kind() != document.Object {
		markup.Append(n, p.Generic(entry)...)
		return n
	}

	titleKey, title := firstText(entry, titleKeys...)
	orgKey, org := firstText(entry, organizationKeys...)
	dateKey, date := firstText(entry, DateKeys...)
	status, statusText := StatusOf(entry)

	if title != "" {
		n.AppendChild(markup.Element("h3", markup.Class("card-title"), markup.Text(title)))
	}
	if org != "" {
		n.AppendChild(markup.Element("p", markup.Class("card-subtitle"), markup.Text(org)))
	}
	if date != "" {
		n.AppendChild(markup.Element("p", markup.Class("card-date"), markup.Text(date)))
	}
	if statusText != "" {
		n.AppendChild(markup.Element("span",
			markup.Attrs("class", "card-status status-"+status.String()),
			markup.Text(StatusLabel(p.labels, status, statusText)),
		))
	}

	o := p.Options(markup.WithDepth(markup.DefaultDepth + 1))
	if desc := entry.Get("description"); desc.IsDefined() {
		markup.Append(n, o.Project(desc, o.Depth)...)
	}

	rest := remainder(entry, titleKey, orgKey, dateKey, "status", "description")
	markup.Append(n, o.Project(rest, o.Depth)...)
	return n
}
