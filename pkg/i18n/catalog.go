package i18n

import (
	"strconv"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"golang.org/x/text/language"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/overlay"
)

// Catalog holds label messages for every loaded locale.
type Catalog struct {
	bundle   *goi18n.Bundle
	fallback language.Tag

	mu     sync.RWMutex
	loaded map[language.Tag]int
}

// NewCatalog creates an empty catalog whose bundle falls back to fallback.
func NewCatalog(fallback language.Tag) (catalog *Catalog) {
	catalog = &Catalog{
		bundle:   goi18n.NewBundle(fallback),
		fallback: fallback,
		loaded:   make(map[language.Tag]int),
	}
	return catalog
}

// AddLocale registers the labels of a translation file for tag. Every leaf
// outside the content sub-tree becomes a message whose ID is its dotted
// path, e.g. "key.fullName" or "value.status.completed".
func (c *Catalog) AddLocale(tag language.Tag, file document.Document) (count int, err error) {
	if file.Kind() != document.Object {
		err = errors.Errorf("translation file for %s must be an object, got %s", tag, file.Kind())
		return count, err
	}

	messages := make([]*goi18n.Message, 0)
	for _, key := range file.Keys() {
		if key == overlay.ContentKey {
			continue
		}
		messages = flatten(key, file.Get(key), messages)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.bundle.AddMessages(tag, messages...)
	if err != nil {
		err = errors.Wrapf(err, "failed to add messages for %s", tag)
		return count, err
	}

	count = len(messages)
	c.loaded[tag] += count
	return count, err
}

func flatten(prefix string, value document.Document, messages []*goi18n.Message) (result []*goi18n.Message) {
	result = messages
	switch value.Kind() {
	case document.Object:
		for _, k := range value.Keys() {
			result = flatten(prefix+"."+k, value.Get(k), result)
		}
	case document.Array:
		for i, item := range value.Items() {
			result = flatten(prefix+"."+strconv.Itoa(i), item, result)
		}
	default:
		text := value.Text()
		if text == "" {
			return result
		}
		result = append(result, &goi18n.Message{ID: prefix, Other: text})
	}
	return result
}

// Loaded reports how many messages were registered for tag.
func (c *Catalog) Loaded(tag language.Tag) (count int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count = c.loaded[tag]
	return count
}

// Labels returns a lookup bound to tag.
func (c *Catalog) Labels(tag language.Tag) (labels *Labels) {
	labels = &Labels{
		catalog:   c,
		localizer: goi18n.NewLocalizer(c.bundle, tag.String()),
		tag:       tag,
	}
	return labels
}
