package overlay

import (
	"github.com/nikogura/resume-render/pkg/document"
)

// ContentKey is the sub-tree of a translation file that overlays the base document.
const ContentKey = "content"

// Merge patches base with a translation overlay of the same shape.
//
// The base governs shape: objects keep exactly the base keys in base order,
// arrays keep the base length and merge positionally. Leaf overlays replace
// whatever they land on, but a compound overlay never replaces a leaf and
// an array never replaces an object (or the reverse). An undefined overlay
// returns base unchanged. Neither input is modified.
func Merge(base, overlay document.Document) (merged document.Document) {
	if !overlay.IsDefined() {
		merged = base
		return merged
	}

	if overlay.IsLeaf() {
		merged = overlay
		return merged
	}

	switch {
	case base.Kind() == document.Array && overlay.Kind() == document.Array:
		merged = mergeArrays(base, overlay)
	case base.Kind() == document.Object && overlay.Kind() == document.Object:
		merged = mergeObjects(base, overlay)
	default:
		merged = base
	}

	return merged
}

func mergeArrays(base, overlay document.Document) (merged document.Document) {
	items := base.Items()
	for i := range items {
		if i >= overlay.Len() {
			break
		}
		items[i] = Merge(items[i], overlay.Index(i))
	}
	merged = document.NewArray(items...)
	return merged
}

func mergeObjects(base, overlay document.Document) (merged document.Document) {
	b := document.NewBuilder()
	for _, key := range base.Keys() {
		value := base.Get(key)
		if overlay.Has(key) {
			value = Merge(value, overlay.Get(key))
		}
		b.Set(key, value)
	}
	merged = b.Document()
	return merged
}

// Translate merges the content sub-tree of a translation file into base.
// A file without content leaves base unchanged.
func Translate(base, translationFile document.Document) (merged document.Document) {
	merged = Merge(base, translationFile.Get(ContentKey))
	return merged
}
