package i18n

import (
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/nicksnyder/go-i18n/v2/i18n/template"
	"golang.org/x/text/language"
)

// Labels translates structural keys for one active locale.
type Labels struct {
	catalog   *Catalog
	localizer *goi18n.Localizer
	tag       language.Tag
}

// Option tunes a single lookup.
type Option func(*lookup)

type lookup struct {
	defaultValue string
	hasDefault   bool
}

// WithDefault supplies the value returned when the active locale has no
// message for the key.
func WithDefault(value string) (opt Option) {
	opt = func(l *lookup) {
		l.defaultValue = value
		l.hasDefault = true
	}
	return opt
}

// Tag returns the active locale.
func (l *Labels) Tag() (tag language.Tag) {
	if l == nil {
		return tag
	}
	tag = l.tag
	return tag
}

// T returns the message for key in the active locale. Without one it
// returns the supplied default, then the key itself. Messages are returned
// verbatim; template syntax in a label is not evaluated.
func (l *Labels) T(key string, opts ...Option) (text string) {
	var cfg lookup
	for _, opt := range opts {
		opt(&cfg)
	}

	if l == nil || l.localizer == nil {
		text = key
		if cfg.hasDefault {
			text = cfg.defaultValue
		}
		return text
	}

	l.catalog.mu.RLock()
	msg, tag, err := l.localizer.LocalizeWithTag(&goi18n.LocalizeConfig{
		MessageID:      key,
		TemplateParser: template.IdentityParser{},
	})
	l.catalog.mu.RUnlock()

	switch {
	case err == nil && msg != "" && tag == l.tag:
		text = msg
	case cfg.hasDefault:
		text = cfg.defaultValue
	default:
		text = key
	}
	return text
}

// Key translates a structural document key, showing the key itself when
// no label exists.
func (l *Labels) Key(key string) (text string) {
	text = l.T("key."+key, WithDefault(key))
	return text
}

// Section translates a section heading.
func (l *Labels) Section(name, fallback string) (text string) {
	text = l.T("section."+name, WithDefault(fallback))
	return text
}
