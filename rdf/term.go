package rdf

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// bnodePrefix is the internal encoding of a blank node identifier.
const bnodePrefix = "bnode:"

// Term is the value of a subject, predicate or object: a Resource, a
// PlainLiteral or a TypedLiteral. It is a closed tagged variant — dispatch
// on concrete type with a type switch, never with an "is X" probe on a
// narrower interface.
type Term interface {
	// String returns the term's serialized lexical form:
	// the URI for a Resource, `"value"@lang` or `"value"^^<dt>` for literals.
	String() string

	// Equal reports whether this term is value-equal to other.
	Equal(other Term) bool

	term() // unexported marker restricting implementers to this package
}

// Resource is an absolute-URI term, or a blank node when URI carries the
// bnode: prefix.
type Resource struct {
	URI string
}

// NewResource constructs a Resource from an absolute or relative URI string.
// It rejects an empty URI but otherwise does not resolve relative forms —
// resolution against a base is an RDF/XML deserializer's job.
func NewResource(uri string) (*Resource, error) {
	if uri == "" {
		return nil, &ModelError{Msg: "resource URI must not be empty"}
	}
	return &Resource{URI: uri}, nil
}

// NewBlankNode constructs a blank node Resource with the given local id.
func NewBlankNode(id string) *Resource {
	return &Resource{URI: bnodePrefix + id}
}

// NewAnonBlankNode constructs a blank node Resource with a freshly
// generated id (a v4 UUID).
func NewAnonBlankNode() *Resource {
	return NewBlankNode(uuid.NewString())
}

// IsBlank reports whether this resource is a blank node.
func (r *Resource) IsBlank() bool {
	return strings.HasPrefix(r.URI, bnodePrefix)
}

// BlankID returns the local blank node identifier, or "" if this is not a
// blank node.
func (r *Resource) BlankID() string {
	if !r.IsBlank() {
		return ""
	}
	return strings.TrimPrefix(r.URI, bnodePrefix)
}

func (r *Resource) String() string { return r.URI }

func (r *Resource) Equal(other Term) bool {
	o, ok := other.(*Resource)
	return ok && o.URI == r.URI
}

func (*Resource) term() {}

// PlainLiteral is a lexical value with an optional BCP-47 language tag.
// An empty Language means "no language".
type PlainLiteral struct {
	Value    string
	Language string
}

// NewPlainLiteral constructs a plain literal, optionally tagged with a
// BCP-47 language.
func NewPlainLiteral(value, language string) *PlainLiteral {
	return &PlainLiteral{Value: value, Language: language}
}

func (l *PlainLiteral) String() string {
	if l.Language == "" {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprintf("%q@%s", l.Value, l.Language)
}

// Equal compares value byte-for-byte and language case-insensitively per
// BCP-47, while preserving the language tag as given.
func (l *PlainLiteral) Equal(other Term) bool {
	o, ok := other.(*PlainLiteral)
	if !ok {
		return false
	}
	return o.Value == l.Value && strings.EqualFold(o.Language, l.Language)
}

func (*PlainLiteral) term() {}

// TypedLiteral is a lexical value with a datatype URI drawn from the closed
// Datatype enumeration.
type TypedLiteral struct {
	Value    string
	Datatype Datatype
}

// NewTypedLiteral constructs a typed literal.
func NewTypedLiteral(value string, datatype Datatype) *TypedLiteral {
	return &TypedLiteral{Value: value, Datatype: datatype}
}

func (l *TypedLiteral) String() string {
	return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype.URI())
}

func (l *TypedLiteral) Equal(other Term) bool {
	o, ok := other.(*TypedLiteral)
	return ok && o.Value == l.Value && o.Datatype == l.Datatype
}

func (*TypedLiteral) term() {}

// AsResource type-asserts t to *Resource, reporting whether it succeeded.
// Exists so callers casting an object term to Resource based on its Flavor
// have a single checked cast point instead of sprinkling type assertions
// through the codebase.
func AsResource(t Term) (*Resource, bool) {
	r, ok := t.(*Resource)
	return r, ok
}

// IsLiteral reports whether t is a PlainLiteral or TypedLiteral.
func IsLiteral(t Term) bool {
	switch t.(type) {
	case *PlainLiteral, *TypedLiteral:
		return true
	default:
		return false
	}
}
