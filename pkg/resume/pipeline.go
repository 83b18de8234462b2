// Package resume runs the render cycle: fetch the base document and the
// locale overlay, merge them, project every section into the page shell.
package resume

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/fetch"
	"github.com/nikogura/resume-render/pkg/i18n"
	"github.com/nikogura/resume-render/pkg/locale"
	"github.com/nikogura/resume-render/pkg/markup"
	"github.com/nikogura/resume-render/pkg/overlay"
	"github.com/nikogura/resume-render/pkg/page"
	"github.com/nikogura/resume-render/pkg/sections"
)

// LinkFunc returns the href a locale switch points at.
type LinkFunc func(tag language.Tag) (href string)

// Switch is a locale button of the page shell.
type Switch struct {
	ID  string
	Tag language.Tag
}

// Switches lists the locale buttons and the locale each selects.
//
//nolint:gochecknoglobals // fixed page vocabulary
var Switches = []Switch{
	{ID: "btn-en", Tag: locale.EnglishUS},
	{ID: "btn-pt", Tag: locale.PortugueseBR},
}

// Pipeline renders résumé pages. A Pipeline holds no per-render state and
// may be used from several goroutines.
type Pipeline struct {
	BaseLocation   string
	OverlayPattern string
	Shell          []byte
	Rich           markup.RichText
	Fetcher        fetch.Fetcher
	Logger         *slog.Logger
}

// Result is a merged document with the labels of its locale.
type Result struct {
	Locale      language.Tag
	Base        document.Document
	Translation document.Document
	Merged      document.Document
	Labels      *i18n.Labels
}

// Page is one rendered locale.
type Page struct {
	Locale  language.Tag
	Content []byte
}

func (p *Pipeline) logger() (logger *slog.Logger) {
	logger = p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger
}

func (p *Pipeline) fetcher() (f fetch.Fetcher) {
	f = p.Fetcher
	if f == nil {
		f = fetch.NewClient()
	}
	return f
}

// Load fetches and parses the base document and the overlay for tag and
// merges them.
func (p *Pipeline) Load(ctx context.Context, tag language.Tag) (result Result, err error) {
	result.Locale = tag
	logger := p.logger().With("locale", tag.String())

	result.Base, err = p.loadDocument(ctx, p.BaseLocation)
	if err != nil {
		logger.Error("failed to load base document", "location", p.BaseLocation, "error", err)
		return result, err
	}

	overlayLocation := fetch.OverlayLocation(p.OverlayPattern, tag.String())
	result.Translation, err = p.loadDocument(ctx, overlayLocation)
	if err != nil {
		logger.Error("failed to load translation", "location", overlayLocation, "error", err)
		return result, err
	}

	catalog := i18n.NewCatalog(locale.Fallback())
	count, err := catalog.AddLocale(tag, result.Translation)
	if err != nil {
		logger.Error("failed to load labels", "location", overlayLocation, "error", err)
		return result, err
	}
	logger.Debug("loaded translation", "location", overlayLocation, "labels", count)

	result.Labels = catalog.Labels(tag)
	result.Merged = overlay.Translate(result.Base, result.Translation)
	return result, err
}

func (p *Pipeline) loadDocument(ctx context.Context, location string) (doc document.Document, err error) {
	var data []byte
	data, err = p.fetcher().Fetch(ctx, location)
	if err != nil {
		return doc, err
	}

	doc, err = document.Parse(data, location)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse %s", location)
		return doc, err
	}
	return doc, err
}

// Render produces the page for tag. Locale switches point at link(tag);
// with a nil link the shell's own hrefs are kept. Nothing is returned when
// any step fails.
func (p *Pipeline) Render(ctx context.Context, tag language.Tag, link LinkFunc) (content []byte, err error) {
	var result Result
	result, err = p.Load(ctx, tag)
	if err != nil {
		err = errors.Wrapf(err, "failed to render %s", tag)
		return content, err
	}

	content, err = p.Compose(result, link)
	if err != nil {
		p.logger().Error("failed to compose page", "locale", tag.String(), "error", err)
		err = errors.Wrapf(err, "failed to render %s", tag)
		return content, err
	}
	return content, err
}

// Compose projects a loaded result into a fresh copy of the shell.
func (p *Pipeline) Compose(result Result, link LinkFunc) (content []byte, err error) {
	shell := p.Shell
	if len(shell) == 0 {
		shell = page.DefaultShell()
	}

	var pg *page.Page
	pg, err = page.New(shell)
	if err != nil {
		return content, err
	}

	proj := sections.New(result.Labels, p.Rich)
	for _, slot := range Slots {
		pg.Fill(slot.ID, slot.Render(proj, result.Merged))
	}
	pg.SetText(NameSlot, result.Merged.Lookup("personalInfo.fullName").Text())

	pg.SetLang(result.Locale.String())
	pg.Translate(func(key, fallback string) string {
		return result.Labels.T(key, i18n.WithDefault(fallback))
	})
	if link != nil {
		for _, s := range Switches {
			pg.WireSwitch(s.ID, link(s.Tag), s.Tag == result.Locale)
		}
	}

	for _, id := range pg.Missing() {
		p.logger().Warn("page shell has no slot", "slot", id, "locale", result.Locale.String())
	}

	content, err = pg.Bytes()
	return content, err
}

// RenderAll renders every supported locale in order. It returns no pages
// unless all of them succeed.
func (p *Pipeline) RenderAll(ctx context.Context, link LinkFunc) (pages []Page, err error) {
	rendered := make([]Page, 0, len(locale.Supported))
	for _, tag := range locale.Supported {
		var content []byte
		content, err = p.Render(ctx, tag, link)
		if err != nil {
			return pages, err
		}
		rendered = append(rendered, Page{Locale: tag, Content: content})
	}
	pages = rendered
	return pages, err
}
