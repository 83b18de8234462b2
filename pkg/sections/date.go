package sections

import (
	"regexp"
	"strconv"
	"time"

	"github.com/nikogura/resume-render/pkg/document"
)

//nolint:gochecknoglobals // compiled once
var monthYear = regexp.MustCompile(`\b(\d{1,2})/(\d{4})\b`)

// DateKeys are consulted in order for an entry's sort date.
//
//nolint:gochecknoglobals // fixed vocabulary
var DateKeys = []string{"date", "endDate", "period", "startDate"}

// ParseDate returns the instant of the last valid MM/YYYY token in text.
// Text without one yields the zero Unix time.
func ParseDate(text string) (date time.Time, ok bool) {
	date = time.Unix(0, 0).UTC()

	matches := monthYear.FindAllStringSubmatch(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		month, err := strconv.Atoi(matches[i][1])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		year, err := strconv.Atoi(matches[i][2])
		if err != nil {
			continue
		}
		date = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		ok = true
		return date, ok
	}
	return date, ok
}

// DateOf returns the sort date of entry from the first present date key.
func DateOf(entry document.Document) (date time.Time) {
	for _, k := range DateKeys {
		v := entry.Get(k)
		if !v.IsDefined() || v.Kind() == document.Null {
			continue
		}
		date, _ = ParseDate(v.Text())
		return date
	}
	date, _ = ParseDate("")
	return date
}
