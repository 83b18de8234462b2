package sections

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/nikogura/resume-render/pkg/document"
	"github.com/nikogura/resume-render/pkg/i18n"
)

// Status is the progress of an education or experience entry.
type Status int

const (
	// InProgress covers ongoing entries and any status that is not a
	// recognized completion.
	InProgress Status = iota
	// Completed entries sort after in-progress ones.
	Completed
)

//nolint:gochecknoglobals // fixed vocabulary
var completedWords = map[string]bool{
	"completed": true,
	"complete":  true,
	"finished":  true,
	"concluded": true,
	"graduated": true,

	"concluído":  true,
	"concluido":  true,
	"concluída":  true,
	"concluida":  true,
	"completo":   true,
	"completa":   true,
	"finalizado": true,
	"finalizada": true,
	"formado":    true,
	"formada":    true,
}

// String returns the label key suffix of s.
func (s Status) String() (name string) {
	name = "inProgress"
	if s == Completed {
		name = "completed"
	}
	return name
}

// ParseStatus maps free status text to a Status. Words are compared after
// Unicode case folding, so "Concluída" and "COMPLETED" both match while
// "Incomplete" does not.
func ParseStatus(text string) (status Status) {
	folded := cases.Fold().String(text)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if completedWords[w] {
			status = Completed
			return status
		}
	}
	return status
}

// StatusOf reads the status field of entry. Missing or non-text status
// values count as InProgress.
func StatusOf(entry document.Document) (status Status, text string) {
	text = entry.Get("status").Text()
	status = ParseStatus(text)
	return status, text
}

// StatusLabel returns the display label for status, falling back to the
// original text.
func StatusLabel(labels *i18n.Labels, status Status, original string) (label string) {
	label = labels.T("value.status."+status.String(), i18n.WithDefault(original))
	return label
}
