package locale

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
)

// PreferenceStore persists the chosen locale between runs.
type PreferenceStore interface {
	Load() (raw string, err error)
	Save(raw string) (err error)
}

// Service owns the currently selected locale. It is created explicitly and
// handed to whatever renders, instead of living in package state.
type Service struct {
	mu      sync.RWMutex
	current language.Tag
	source  Source
	store   PreferenceStore
}

// NewService resolves the starting locale from the query and platform
// signals plus the store's cached preference. A nil store disables
// persistence. A store that fails to load counts as no preference.
func NewService(query, platform string, store PreferenceStore) (svc *Service) {
	var cached string
	if store != nil {
		cached, _ = store.Load()
	}

	tag, source := Detect(Signals{Query: query, Cached: cached, Platform: platform})

	svc = &Service{
		current: tag,
		source:  source,
		store:   store,
	}
	return svc
}

// Current returns the active locale.
func (s *Service) Current() (tag language.Tag) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag = s.current
	return tag
}

// Source reports which signal produced the active locale.
func (s *Service) Source() (source Source) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source = s.source
	return source
}

// Switch makes raw the active locale and persists it. The active locale is
// unchanged when raw is not supported.
func (s *Service) Switch(raw string) (tag language.Tag, err error) {
	var ok bool
	tag, ok = Normalize(raw)
	if !ok {
		err = errors.Errorf("unsupported locale: %q", raw)
		return tag, err
	}

	s.mu.Lock()
	s.current = tag
	s.source = SourceQuery
	s.mu.Unlock()

	if s.store == nil {
		return tag, err
	}

	err = s.store.Save(tag.String())
	if err != nil {
		err = errors.Wrap(err, "failed to persist locale preference")
		return tag, err
	}

	return tag, err
}
