package rdfdescribe

import (
	"strings"

	"github.com/twinfer/rdfdescribe/rdf"
)

// Variable names a binding slot in a Pattern or DescribeTerm. The leading
// "?" is part of Name, matching the rendered query text grammar.
type Variable struct {
	Name     string
	Reserved bool
}

func (v Variable) String() string { return v.Name }

// PatternSlot is a single component of a Pattern: either a ground rdf.Term
// or a Variable. Exactly one of Var or Term is set.
type PatternSlot struct {
	Var  *Variable
	Term rdf.Term
}

// Ground wraps a ground term as a pattern slot.
func Ground(t rdf.Term) PatternSlot { return PatternSlot{Term: t} }

// VarSlot wraps a variable as a pattern slot.
func VarSlot(v Variable) PatternSlot { return PatternSlot{Var: &v} }

// IsVariable reports whether this slot is a Variable rather than a ground term.
func (s PatternSlot) IsVariable() bool { return s.Var != nil }

// Equal reports whether two slots are the same kind and equal value.
func (s PatternSlot) Equal(other PatternSlot) bool {
	if s.IsVariable() != other.IsVariable() {
		return false
	}
	if s.IsVariable() {
		return s.Var.Name == other.Var.Name
	}
	return s.Term.Equal(other.Term)
}

func (s PatternSlot) String() string {
	if s.IsVariable() {
		return s.Var.Name
	}
	if r, ok := rdf.AsResource(s.Term); ok {
		return "<" + r.URI + ">"
	}
	return s.Term.String()
}

// Pattern is a triple pattern with an optional fourth context slot: each
// slot is either a ground term or a Variable. Context is nil for a 3-tuple
// (subject/predicate/object only).
type Pattern struct {
	Context   *PatternSlot
	Subject   PatternSlot
	Predicate PatternSlot
	Object    PatternSlot
}

// NewPattern constructs a 3-tuple pattern (no context slot).
func NewPattern(subject, predicate, object PatternSlot) *Pattern {
	return &Pattern{Subject: subject, Predicate: predicate, Object: object}
}

// NewQuadPattern constructs a 4-tuple pattern with an explicit context slot.
func NewQuadPattern(context, subject, predicate, object PatternSlot) *Pattern {
	return &Pattern{Context: &context, Subject: subject, Predicate: predicate, Object: object}
}

// Equal reports whether p and other have equal (context, subject, predicate,
// object) components.
func (p *Pattern) Equal(other *Pattern) bool {
	if other == nil {
		return false
	}
	if (p.Context == nil) != (other.Context == nil) {
		return false
	}
	if p.Context != nil && !p.Context.Equal(*other.Context) {
		return false
	}
	return p.Subject.Equal(other.Subject) &&
		p.Predicate.Equal(other.Predicate) &&
		p.Object.Equal(other.Object)
}

// Variables returns the distinct variable names bound by this pattern, in
// slot order (context, subject, predicate, object).
func (p *Pattern) Variables() []string {
	var names []string
	seen := map[string]bool{}
	add := func(s PatternSlot) {
		if s.IsVariable() && !seen[s.Var.Name] {
			seen[s.Var.Name] = true
			names = append(names, s.Var.Name)
		}
	}
	if p.Context != nil {
		add(*p.Context)
	}
	add(p.Subject)
	add(p.Predicate)
	add(p.Object)
	return names
}

func (p *Pattern) String() string {
	parts := make([]string, 0, 4)
	if p.Context != nil {
		parts = append(parts, p.Context.String())
	}
	parts = append(parts, p.Subject.String(), p.Predicate.String(), p.Object.String())
	return strings.Join(parts, " ")
}
