package markup

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/nikogura/resume-render/pkg/document"
)

func parse(t *testing.T, raw string) (doc document.Document) {
	t.Helper()
	doc, err := document.ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("Failed to parse %s: %v", raw, err)
	}
	return doc
}

func TestProjectShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		opts []Option
		want string
	}{
		{
			name: "leaf string",
			raw:  `"Hello <world>"`,
			want: `<p>Hello &lt;world&gt;</p>`,
		},
		{
			name: "leaf number",
			raw:  `3.0`,
			want: `<p>3.0</p>`,
		},
		{
			name: "array of leaves",
			raw:  `["Go", 1, true, null]`,
			want: `<ul><li>Go</li><li>1</li><li>true</li></ul>`,
		},
		{
			name: "object with nesting",
			raw:  `{"name": "Ana", "tags": ["a"]}`,
			want: `<section data-key="name"><h3>name</h3><p>Ana</p></section>` +
				`<section data-key="tags"><h3>tags</h3><ul><li>a</li></ul></section>`,
		},
		{
			name: "nested objects increase heading depth",
			raw:  `{"a": {"b": "c"}}`,
			opts: []Option{WithDepth(2)},
			want: `<section data-key="a"><h2>a</h2><section data-key="b"><h3>b</h3><p>c</p></section></section>`,
		},
		{
			name: "compound array items keep depth",
			raw:  `[{"k": "v"}, ["x"]]`,
			want: `<ul><li><section data-key="k"><h3>k</h3><p>v</p></section></li><li><ul><li>x</li></ul></li></ul>`,
		},
		{
			name: "null",
			raw:  `null`,
			want: ``,
		},
		{
			name: "empty object",
			raw:  `{}`,
			want: ``,
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: ``,
		},
		{
			name: "array of nulls",
			raw:  `[null, null]`,
			want: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustRender(Project(parse(t, tt.raw), tt.opts...))
			if got != tt.want {
				t.Errorf("Expected:\n%s\ngot:\n%s", tt.want, got)
			}
		})
	}
}

func TestProjectUndefined(t *testing.T) {
	if nodes := Project(document.Document{}); len(nodes) != 0 {
		t.Errorf("Expected no nodes for undefined, got %d", len(nodes))
	}
}

func TestProjectHeadingClamp(t *testing.T) {
	doc := parse(t, `{"a": {"b": {"c": {"d": {"e": "deep"}}}}}`)
	got := MustRender(Project(doc, WithDepth(4)))

	for _, want := range []string{"<h4>a</h4>", "<h5>b</h5>", "<h6>c</h6>", "<h6>d</h6>", "<h6>e</h6>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %s, got %s", want, got)
		}
	}
	if strings.Contains(got, "<h7>") {
		t.Error("Expected headings clamped at h6")
	}
}

func TestProjectLabels(t *testing.T) {
	labels := func(key string) string {
		if key == "fullName" {
			return "Nome completo"
		}
		return key
	}

	got := MustRender(Project(parse(t, `{"fullName": "Ana", "age": 30}`), WithLabels(labels)))
	want := `<section data-key="fullName"><h3>Nome completo</h3><p>Ana</p></section>` +
		`<section data-key="age"><h3>age</h3><p>30</p></section>`
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestProjectExclusion(t *testing.T) {
	doc := parse(t, `{"photo": "p.png", "name": "Ana", "nested": {"photo": "q.png", "city": "Recife"}, "list": [{"photo": "r"}]}`)
	labels := func(key string) string { return "Label:" + key }

	got := MustRender(Project(doc, WithExclude("photo"), WithLabels(labels)))

	if strings.Contains(got, "Label:photo") || strings.Contains(got, `data-key="photo"`) {
		t.Errorf("Expected excluded key to be absent at every level, got %s", got)
	}
	if !strings.Contains(got, "Label:city") || !strings.Contains(got, "Label:name") {
		t.Errorf("Expected other keys present, got %s", got)
	}
}

func TestProjectTotality(t *testing.T) {
	inputs := []string{
		`null`, `true`, `false`, `0`, `-1.5e10`, `""`,
		`[[[[[[[[[[["deep"]]]]]]]]]]]`,
		`{"a": {}, "b": [], "c": [{}], "d": null}`,
		`[{"a": [null, {"b": [true]}]}]`,
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			_, err := Render(Project(parse(t, raw)))
			if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestProjectDeterministic(t *testing.T) {
	doc := parse(t, `{"z": [1, {"y": "x"}], "a": "b", "m": {"n": ["o", "p"]}}`)

	first := MustRender(Project(doc))
	for range 10 {
		if got := MustRender(Project(doc)); got != first {
			t.Fatalf("Expected identical output across calls:\n%s\n%s", first, got)
		}
	}
}

type upperRich struct{}

func (upperRich) Block(s string) (nodes []*html.Node, err error) {
	nodes = []*html.Node{Element("p", Class("rich"), Text(strings.ToUpper(s)))}
	return nodes, err
}

func (upperRich) Inline(s string) (nodes []*html.Node, err error) {
	nodes = []*html.Node{Element("em", nil, Text(s))}
	return nodes, err
}

func TestProjectRichText(t *testing.T) {
	got := MustRender(Project(parse(t, `{"a": "text", "b": ["item", 2]}`), WithRichText(upperRich{})))
	want := `<section data-key="a"><h3>a</h3><div class="rich-text"><p class="rich">TEXT</p></div></section>` +
		`<section data-key="b"><h3>b</h3><ul><li><em>item</em></li><li>2</li></ul></section>`
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestElementSkipsAttachedChildren(t *testing.T) {
	child := Text("x")
	first := Element("p", nil, child)
	second := Element("div", nil, child, nil, Text("y"))

	if got := MustRender([]*html.Node{first, second}); got != `<p>x</p><div>y</div>` {
		t.Errorf("Unexpected output: %s", got)
	}
}

func TestProjectSkipsEmptyCompoundItems(t *testing.T) {
	got := MustRender(Project(parse(t, `[{}, [], "x", [null]]`)))
	if got != `<ul><li>x</li></ul>` {
		t.Errorf("Unexpected output: %s", got)
	}
}
