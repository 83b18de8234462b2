package document

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Parse decodes data as YAML when name has a .yaml/.yml extension and as
// JSON otherwise.
func Parse(data []byte, name string) (doc Document, err error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	default:
		doc, err = ParseJSON(data)
	}
	return doc, err
}

// ParseJSON decodes a JSON document, keeping object keys in source order.
func ParseJSON(data []byte) (doc Document, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		err = errors.New("empty JSON document")
		return doc, err
	}

	if !gjson.ValidBytes(data) {
		err = errors.New("malformed JSON document")
		return doc, err
	}

	doc = fromResult(gjson.ParseBytes(data))
	return doc, err
}

func fromResult(r gjson.Result) (doc Document) {
	switch r.Type {
	case gjson.Null:
		doc = NewNull()
	case gjson.False:
		doc = NewBool(false)
	case gjson.True:
		doc = NewBool(true)
	case gjson.Number:
		doc = NewNumber(strings.TrimSpace(r.Raw))
	case gjson.String:
		doc = NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			items := make([]Document, 0)
			r.ForEach(func(_, value gjson.Result) bool {
				items = append(items, fromResult(value))
				return true
			})
			doc = Document{kind: Array, items: items}
			return doc
		}

		b := NewBuilder()
		r.ForEach(func(key, value gjson.Result) bool {
			b.Set(key.String(), fromResult(value))
			return true
		})
		doc = b.Document()
	}
	return doc
}

// ParseYAML decodes a YAML document, keeping mapping keys in source order.
func ParseYAML(data []byte) (doc Document, err error) {
	var root yaml.Node
	err = yaml.Unmarshal(data, &root)
	if err != nil {
		err = errors.Wrap(err, "malformed YAML document")
		return doc, err
	}

	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		err = errors.New("empty YAML document")
		return doc, err
	}

	doc, err = fromNode(&root)
	return doc, err
}

func fromNode(n *yaml.Node) (doc Document, err error) {
	switch n.Kind {
	case yaml.DocumentNode:
		doc, err = fromNode(n.Content[0])
	case yaml.AliasNode:
		doc, err = fromNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]Document, len(n.Content))
		for i, c := range n.Content {
			items[i], err = fromNode(c)
			if err != nil {
				return doc, err
			}
		}
		doc = Document{kind: Array, items: items}
	case yaml.MappingNode:
		b := NewBuilder()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var value Document
			value, err = fromNode(n.Content[i+1])
			if err != nil {
				return doc, err
			}
			b.Set(n.Content[i].Value, value)
		}
		doc = b.Document()
	case yaml.ScalarNode:
		doc = fromScalar(n)
	default:
		err = errors.Errorf("unsupported YAML node at line %d", n.Line)
	}
	return doc, err
}

func fromScalar(n *yaml.Node) (doc Document) {
	switch n.ShortTag() {
	case "!!null":
		doc = NewNull()
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			doc = NewString(n.Value)
			return doc
		}
		doc = NewBool(b)
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			doc = NewString(n.Value)
			return doc
		}
		doc = NewNumber(strconv.FormatInt(i, 10))
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			doc = NewString(n.Value)
			return doc
		}
		doc = NewNumber(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		doc = NewString(n.Value)
	}
	return doc
}

// MarshalJSON encodes the Document with object keys in insertion order.
// Undefined encodes as null.
func (d Document) MarshalJSON() (data []byte, err error) {
	var buf bytes.Buffer
	err = d.writeJSON(&buf)
	if err != nil {
		return data, err
	}
	data = buf.Bytes()
	return data, err
}

func (d Document) writeJSON(buf *bytes.Buffer) (err error) {
	switch d.kind {
	case Undefined, Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(d.truth))
	case Number:
		buf.WriteString(d.scalar)
	case String:
		var quoted []byte
		quoted, err = json.Marshal(d.scalar)
		if err != nil {
			err = errors.Wrap(err, "failed to encode string")
			return err
		}
		buf.Write(quoted)
	case Array:
		buf.WriteByte('[')
		for i, item := range d.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			err = item.writeJSON(buf)
			if err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, k := range d.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			var quoted []byte
			quoted, err = json.Marshal(k)
			if err != nil {
				err = errors.Wrapf(err, "failed to encode key %q", k)
				return err
			}
			buf.Write(quoted)
			buf.WriteByte(':')
			err = d.fields[k].writeJSON(buf)
			if err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return err
}

// Indent returns the Document as indented JSON.
func (d Document) Indent() (out string, err error) {
	var raw []byte
	raw, err = d.MarshalJSON()
	if err != nil {
		return out, err
	}

	var buf bytes.Buffer
	err = json.Indent(&buf, raw, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to indent document")
		return out, err
	}
	out = buf.String()
	return out, err
}
