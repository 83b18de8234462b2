package resume

import (
	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/markup"
	"github.com/nikogura/resume-render/pkg/sections"
)

// NameSlot holds the person's full name as text.
const NameSlot = "name"

// Slot binds a page element id to the document part rendered into it.
type Slot struct {
	ID     string
	Render func(p *sections.Projector, doc document.Document) []*html.Node
}

// Slots are filled in order on every render.
//
//nolint:gochecknoglobals // fixed page vocabulary
var Slots = []Slot{
	{ID: "contact-compact-list", Render: func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Contact(doc.Lookup("personalInfo.contact"), sections.ClassContactCompact)
	}},
	{ID: "about-me-container", Render: generic("aboutMe")},
	{ID: "projects-list", Render: func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Projects(doc.Get("projects"))
	}},
	{ID: "skills-list", Render: generic("skills")},
	{ID: "education-list", Render: cards("education")},
	{ID: "experience-list", Render: cards("experience")},
	{ID: "professional-skills-list", Render: generic("professionalSkills")},
	{ID: "languages-list", Render: generic("languages")},
	{ID: "personal-info-list", Render: func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Generic(doc.Get("personalInfo"), markup.WithExclude("fullName", "contact", "photo"))
	}},
	{ID: "availability", Render: generic("availability")},
	{ID: "goals-list", Render: generic("careerGoals")},
	{ID: "contact-list", Render: func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Contact(doc.Lookup("personalInfo.contact"), sections.ClassContactList)
	}},
}

func generic(key string) func(*sections.Projector, document.Document) []*html.Node {
	return func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Generic(doc.Get(key))
	}
}

func cards(key string) func(*sections.Projector, document.Document) []*html.Node {
	return func(p *sections.Projector, doc document.Document) []*html.Node {
		return p.Cards(doc.Get(key))
	}
}
