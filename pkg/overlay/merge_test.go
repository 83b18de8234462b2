package overlay

import (
	"testing"

	"github.com/nikogura/resume-render/pkg/document"
)

func mustParse(t *testing.T, raw string) (doc document.Document) {
	t.Helper()
	doc, err := document.ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", raw, err)
	}
	return doc
}

func assertJSON(t *testing.T, doc document.Document, want string) {
	t.Helper()
	got, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, string(got))
	}
}

func TestMergeIdentity(t *testing.T) {
	inputs := []string{
		`"plain"`,
		`42`,
		`null`,
		`[1, [2, 3], {"a": "b"}]`,
		`{"a": {"b": [1, 2]}, "c": false}`,
	}

	for _, raw := range inputs {
		base := mustParse(t, raw)
		if !document.Equal(Merge(base, document.Document{}), base) {
			t.Errorf("Expected Merge(%s, undefined) to return base", raw)
		}
	}
}

func TestMergeScalarOverride(t *testing.T) {
	leaves := []document.Document{
		document.NewString("a"),
		document.NewInt(1),
		document.NewBool(true),
		document.NewNull(),
	}

	for _, b := range leaves {
		for _, o := range leaves {
			if !document.Equal(Merge(b, o), o) {
				t.Errorf("Expected Merge(%s, %s) to return overlay", b.Kind(), o.Kind())
			}
		}
	}
}

func TestMergeLeafOverCompound(t *testing.T) {
	base := mustParse(t, `{"skills": ["Go", "Rust"]}`)
	overlay := mustParse(t, `{"skills": "Go e Rust"}`)

	assertJSON(t, Merge(base, overlay), `{"skills":"Go e Rust"}`)
}

func TestMergeNeverPromotesScalar(t *testing.T) {
	base := mustParse(t, `{"title": "Engineer", "list": ["a", "b"]}`)
	overlay := mustParse(t, `{"title": {"text": "Engenheiro"}, "list": [["nested"], "B"]}`)

	assertJSON(t, Merge(base, overlay), `{"title":"Engineer","list":["a","B"]}`)
}

func TestMergeShapeMismatch(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		want    string
	}{
		{
			name:    "array over object",
			base:    `{"a": {"b": 1}}`,
			overlay: `{"a": [1, 2]}`,
			want:    `{"a":{"b":1}}`,
		},
		{
			name:    "object over array",
			base:    `{"a": [1, 2]}`,
			overlay: `{"a": {"0": 9}}`,
			want:    `{"a":[1,2]}`,
		},
		{
			name:    "top-level mismatch",
			base:    `[1]`,
			overlay: `{"x": 1}`,
			want:    `[1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertJSON(t, Merge(mustParse(t, tt.base), mustParse(t, tt.overlay)), tt.want)
		})
	}
}

func TestMergeObjectKeepsBaseKeysAndOrder(t *testing.T) {
	base := mustParse(t, `{"c": 1, "a": {"y": "Y", "x": "X"}, "b": 3}`)
	overlay := mustParse(t, `{"extra": 9, "a": {"x": "xx", "new": 1}, "c": 10}`)

	merged := Merge(base, overlay)

	assertJSON(t, merged, `{"c":10,"a":{"y":"Y","x":"xx"},"b":3}`)

	if merged.Has("extra") || merged.Get("a").Has("new") {
		t.Error("Expected overlay-only keys to be dropped")
	}
}

func TestMergeArrayLengthFollowsBase(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		want    string
	}{
		{
			name:    "shorter overlay",
			base:    `["a", "b", "c"]`,
			overlay: `["A"]`,
			want:    `["A","b","c"]`,
		},
		{
			name:    "longer overlay",
			base:    `["a"]`,
			overlay: `["A", "B", "C"]`,
			want:    `["A"]`,
		},
		{
			name:    "array of objects",
			base:    `[{"title": "One", "url": "u1"}, {"title": "Two", "url": "u2"}]`,
			overlay: `[{"title": "Um"}, {"title": "Dois"}]`,
			want:    `[{"title":"Um","url":"u1"},{"title":"Dois","url":"u2"}]`,
		},
		{
			name:    "empty overlay",
			base:    `[1, 2]`,
			overlay: `[]`,
			want:    `[1,2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParse(t, tt.base)
			merged := Merge(base, mustParse(t, tt.overlay))
			if merged.Len() != base.Len() {
				t.Errorf("Expected length %d, got %d", base.Len(), merged.Len())
			}
			assertJSON(t, merged, tt.want)
		})
	}
}

func TestMergeEmptyOverlayIsIdentity(t *testing.T) {
	base := mustParse(t, `{"a": [1, {"b": 2}], "c": "d"}`)
	if !document.Equal(Merge(base, mustParse(t, `{}`)), base) {
		t.Error("Expected empty object overlay to return base")
	}

	list := mustParse(t, `[1, 2, 3]`)
	if !document.Equal(Merge(list, mustParse(t, `[]`)), list) {
		t.Error("Expected empty array overlay to return base")
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	baseRaw := `{"a": ["x", {"y": "z"}], "b": "c"}`
	overlayRaw := `{"a": ["X", {"y": "Z"}], "b": "C"}`
	base := mustParse(t, baseRaw)
	overlay := mustParse(t, overlayRaw)

	_ = Merge(base, overlay)

	if !document.Equal(base, mustParse(t, baseRaw)) {
		t.Error("Base was modified by Merge")
	}
	if !document.Equal(overlay, mustParse(t, overlayRaw)) {
		t.Error("Overlay was modified by Merge")
	}
}

func TestTranslateUsesContent(t *testing.T) {
	base := mustParse(t, `{"personalInfo": {"fullName": "Ana"}, "skills": ["Go", "Rust"]}`)
	file := mustParse(t, `{"key": {"skills": "Habilidades"}, "content": {"skills": ["Go (adv.)", "Rust (adv.)"]}}`)

	merged := Translate(base, file)

	assertJSON(t, merged.Get("skills"), `["Go (adv.)","Rust (adv.)"]`)
	if merged.Lookup("personalInfo.fullName").Text() != "Ana" {
		t.Errorf("Expected fullName 'Ana', got '%s'", merged.Lookup("personalInfo.fullName").Text())
	}

	if !document.Equal(Translate(base, mustParse(t, `{"key": {}}`)), base) {
		t.Error("Expected translation file without content to leave base unchanged")
	}
}
