package document

import (
	"strconv"
	"strings"
)

// Kind identifies which variant of the Document sum type a value holds.
type Kind int

const (
	// Undefined is an absent value. It is the zero Kind.
	Undefined Kind = iota
	// Null is an explicit JSON null.
	Null
	// Bool is a JSON boolean.
	Bool
	// Number is a JSON number, kept as its source literal.
	Number
	// String is a JSON string.
	String
	// Array is an ordered sequence of Documents.
	Array
	// Object is an ordered mapping of unique string keys to Documents.
	Object
)

// String returns the lower-case name of the kind.
func (k Kind) String() (name string) {
	switch k {
	case Null:
		name = "null"
	case Bool:
		name = "bool"
	case Number:
		name = "number"
	case String:
		name = "string"
	case Array:
		name = "array"
	case Object:
		name = "object"
	default:
		name = "undefined"
	}
	return name
}

// Document is an arbitrarily nested JSON value.
//
// Documents are immutable: constructors copy what they are given and no
// method changes a Document in place. The zero value is Undefined.
type Document struct {
	kind   Kind
	scalar string // string value, or number literal
	truth  bool
	items  []Document
	keys   []string
	fields map[string]Document
}

// Field is a key/value pair used to build Objects.
type Field struct {
	Key   string
	Value Document
}

// NewNull returns an explicit null.
func NewNull() (doc Document) {
	doc = Document{kind: Null}
	return doc
}

// NewBool returns a boolean leaf.
func NewBool(b bool) (doc Document) {
	doc = Document{kind: Bool, truth: b}
	return doc
}

// NewNumber returns a number leaf from its literal form, e.g. "42" or "1.5e3".
func NewNumber(literal string) (doc Document) {
	doc = Document{kind: Number, scalar: literal}
	return doc
}

// NewInt is a convenience wrapper around NewNumber.
func NewInt(n int) (doc Document) {
	doc = NewNumber(strconv.Itoa(n))
	return doc
}

// NewString returns a string leaf.
func NewString(s string) (doc Document) {
	doc = Document{kind: String, scalar: s}
	return doc
}

// NewArray returns an array holding copies of items.
func NewArray(items ...Document) (doc Document) {
	copied := make([]Document, len(items))
	copy(copied, items)
	doc = Document{kind: Array, items: copied}
	return doc
}

// Strings builds an array of string leaves.
func Strings(values ...string) (doc Document) {
	items := make([]Document, len(values))
	for i, v := range values {
		items[i] = NewString(v)
	}
	doc = Document{kind: Array, items: items}
	return doc
}

// NewObject builds an object from fields in order. A repeated key keeps its
// first position and takes the last value.
func NewObject(fields ...Field) (doc Document) {
	b := NewBuilder()
	for _, f := range fields {
		b.Set(f.Key, f.Value)
	}
	doc = b.Document()
	return doc
}

// F is shorthand for constructing a Field.
func F(key string, value Document) (f Field) {
	f = Field{Key: key, Value: value}
	return f
}

// Builder accumulates object fields in insertion order.
type Builder struct {
	keys   []string
	fields map[string]Document
}

// NewBuilder returns an empty object builder.
func NewBuilder() (b *Builder) {
	b = &Builder{fields: make(map[string]Document)}
	return b
}

// Set adds or replaces a field.
func (b *Builder) Set(key string, value Document) {
	if _, exists := b.fields[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.fields[key] = value
}

// Document returns the built object. The builder may keep being used;
// later calls do not affect Documents already returned.
func (b *Builder) Document() (doc Document) {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	fields := make(map[string]Document, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	doc = Document{kind: Object, keys: keys, fields: fields}
	return doc
}

// Kind reports the variant held by the Document.
func (d Document) Kind() (kind Kind) {
	kind = d.kind
	return kind
}

// IsDefined is false only for Undefined.
func (d Document) IsDefined() (defined bool) {
	defined = d.kind != Undefined
	return defined
}

// IsLeaf reports whether d is a primitive (including null and undefined).
func (d Document) IsLeaf() (leaf bool) {
	leaf = d.kind != Array && d.kind != Object
	return leaf
}

// IsCompound reports whether d is an Array or an Object.
func (d Document) IsCompound() (compound bool) {
	compound = !d.IsLeaf()
	return compound
}

// Len returns the number of array items or object keys, zero for leaves.
func (d Document) Len() (n int) {
	switch d.kind {
	case Array:
		n = len(d.items)
	case Object:
		n = len(d.keys)
	}
	return n
}

// Index returns the i-th array item, or Undefined when out of range.
func (d Document) Index(i int) (item Document) {
	if d.kind != Array || i < 0 || i >= len(d.items) {
		return item
	}
	item = d.items[i]
	return item
}

// Items returns a copy of the array items.
func (d Document) Items() (items []Document) {
	if d.kind != Array {
		return items
	}
	items = make([]Document, len(d.items))
	copy(items, d.items)
	return items
}

// Keys returns the object keys in insertion order.
func (d Document) Keys() (keys []string) {
	if d.kind != Object {
		return keys
	}
	keys = make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Get returns the value under key, or Undefined.
func (d Document) Get(key string) (value Document) {
	if d.kind != Object {
		return value
	}
	value = d.fields[key]
	return value
}

// Has reports whether an object holds key.
func (d Document) Has(key string) (ok bool) {
	if d.kind != Object {
		return ok
	}
	_, ok = d.fields[key]
	return ok
}

// Lookup follows a dotted path such as "personalInfo.contact.email" or
// "projects.0.title". Numeric segments index arrays.
func (d Document) Lookup(path string) (value Document) {
	value = d
	if path == "" {
		return value
	}
	for _, segment := range strings.Split(path, ".") {
		switch value.kind {
		case Object:
			value = value.Get(segment)
		case Array:
			i, err := strconv.Atoi(segment)
			if err != nil {
				value = Document{}
				return value
			}
			value = value.Index(i)
		default:
			value = Document{}
			return value
		}
	}
	return value
}

// Str returns the string value and whether d is a String.
func (d Document) Str() (s string, ok bool) {
	if d.kind != String {
		return s, ok
	}
	s = d.scalar
	ok = true
	return s, ok
}

// Text returns the textual form of a leaf: the string itself, the number
// literal, or "true"/"false". Null, undefined and compounds yield "".
func (d Document) Text() (text string) {
	switch d.kind {
	case String, Number:
		text = d.scalar
	case Bool:
		text = strconv.FormatBool(d.truth)
	}
	return text
}

// Equal reports deep structural equality, including object key order.
func Equal(a, b Document) (equal bool) {
	if a.kind != b.kind {
		return equal
	}
	switch a.kind {
	case Undefined, Null:
		equal = true
	case Bool:
		equal = a.truth == b.truth
	case Number, String:
		equal = a.scalar == b.scalar
	case Array:
		if len(a.items) != len(b.items) {
			return equal
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return equal
			}
		}
		equal = true
	case Object:
		if len(a.keys) != len(b.keys) {
			return equal
		}
		for i, k := range a.keys {
			if b.keys[i] != k || !Equal(a.fields[k], b.fields[k]) {
				return equal
			}
		}
		equal = true
	}
	return equal
}

// Equal is a method form of Equal, which also lets go-cmp compare Documents.
func (d Document) Equal(other Document) (equal bool) {
	equal = Equal(d, other)
	return equal
}
