package locale

import (
	"strings"

	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // Fixed locale set
var (
	// EnglishUS is the fallback locale.
	EnglishUS = language.AmericanEnglish
	// PortugueseBR is the Brazilian Portuguese locale.
	PortugueseBR = language.BrazilianPortuguese

	// Supported lists the locales a résumé can be rendered in, fallback first.
	Supported = []language.Tag{EnglishUS, PortugueseBR}

	matcher = language.NewMatcher(Supported)
)

// Fallback is used when no signal names a supported locale.
func Fallback() (tag language.Tag) {
	tag = EnglishUS
	return tag
}

// Source names the signal a locale was taken from.
type Source string

const (
	SourceQuery    Source = "query"
	SourceCached   Source = "cached"
	SourcePlatform Source = "platform"
	SourceFallback Source = "fallback"
)

// Signals are the raw locale hints, strongest first.
type Signals struct {
	Query    string // explicit request (?lng=, --lng)
	Cached   string // previously persisted preference
	Platform string // LANG, Accept-Language, ...
}

// Normalize maps a raw tag onto the supported set. It accepts BCP 47 tags
// in any case ("pt-br"), underscores ("pt_BR") and POSIX locale strings
// ("pt_BR.UTF-8"). Unsupported languages are rejected.
func Normalize(raw string) (tag language.Tag, ok bool) {
	cleaned := cleanPOSIX(raw)
	if cleaned == "" {
		return tag, ok
	}

	parsed, err := language.Parse(cleaned)
	if err != nil {
		return tag, ok
	}

	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return tag, ok
	}

	tag = Supported[index]
	ok = true
	return tag, ok
}

// cleanPOSIX turns "pt_BR.UTF-8@euro" into "pt-BR". "C" and "POSIX" carry
// no language and yield "".
func cleanPOSIX(raw string) (cleaned string) {
	cleaned = strings.TrimSpace(raw)
	if i := strings.IndexAny(cleaned, ".@"); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.ReplaceAll(cleaned, "_", "-")
	if cleaned == "C" || cleaned == "POSIX" {
		cleaned = ""
	}
	return cleaned
}

// Detect resolves the locale from the signals in precedence order,
// skipping any signal that does not normalize to a supported locale.
func Detect(s Signals) (tag language.Tag, source Source) {
	candidates := []struct {
		raw    string
		source Source
	}{
		{raw: s.Query, source: SourceQuery},
		{raw: s.Cached, source: SourceCached},
		{raw: s.Platform, source: SourcePlatform},
	}

	for _, c := range candidates {
		if t, ok := Normalize(c.raw); ok {
			tag = t
			source = c.source
			return tag, source
		}
	}

	tag = Fallback()
	source = SourceFallback
	return tag, source
}

// FromAcceptLanguage picks the first supported locale of an
// Accept-Language header, honoring quality values. It returns "" when
// none matches, so the result can feed Signals.Platform directly.
func FromAcceptLanguage(header string) (raw string) {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return raw
	}

	for _, t := range tags {
		if tag, ok := Normalize(t.String()); ok {
			raw = tag.String()
			return raw
		}
	}
	return raw
}

// IsSupported reports whether tag is exactly one of the supported locales.
func IsSupported(tag language.Tag) (ok bool) {
	for _, s := range Supported {
		if s == tag {
			ok = true
			return ok
		}
	}
	return ok
}
