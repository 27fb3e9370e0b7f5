package rdfdescribe

import (
	"fmt"
	"regexp"

	"github.com/twinfer/rdfdescribe/rdf"
)

// Filter evaluates a single row of an intermediate DataTable, reporting
// whether the row survives. Variants are polymorphic over this one small
// interface rather than a type switch on a filter kind enum.
type Filter interface {
	Evaluate(row Row) bool
	String() string
}

func termLexical(t rdf.Term) string {
	switch v := t.(type) {
	case *rdf.Resource:
		return v.URI
	case *rdf.PlainLiteral:
		return v.Value
	case *rdf.TypedLiteral:
		return v.Value
	default:
		return t.String()
	}
}

type isURIFilter struct{ v Variable }

// NewIsURIFilter builds a filter that keeps rows where v is bound to a
// non-blank Resource.
func NewIsURIFilter(v Variable) Filter { return isURIFilter{v: v} }

func (f isURIFilter) Evaluate(row Row) bool {
	t, ok := row[f.v.Name]
	if !ok {
		return false
	}
	r, ok := rdf.AsResource(t)
	return ok && !r.IsBlank()
}

func (f isURIFilter) String() string { return fmt.Sprintf("isURI(%s)", f.v.Name) }

type isBlankFilter struct{ v Variable }

// NewIsBlankFilter builds a filter that keeps rows where v is bound to a
// blank-node Resource.
func NewIsBlankFilter(v Variable) Filter { return isBlankFilter{v: v} }

func (f isBlankFilter) Evaluate(row Row) bool {
	t, ok := row[f.v.Name]
	if !ok {
		return false
	}
	r, ok := rdf.AsResource(t)
	return ok && r.IsBlank()
}

func (f isBlankFilter) String() string { return fmt.Sprintf("isBLANK(%s)", f.v.Name) }

type isLiteralFilter struct{ v Variable }

// NewIsLiteralFilter builds a filter that keeps rows where v is bound to a
// PlainLiteral or TypedLiteral.
func NewIsLiteralFilter(v Variable) Filter { return isLiteralFilter{v: v} }

func (f isLiteralFilter) Evaluate(row Row) bool {
	t, ok := row[f.v.Name]
	return ok && rdf.IsLiteral(t)
}

func (f isLiteralFilter) String() string { return fmt.Sprintf("isLITERAL(%s)", f.v.Name) }

// ComparisonOp is a lexical comparison operator for comparisonFilter.
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpLessThan     ComparisonOp = "<"
	OpGreaterThan  ComparisonOp = ">"
	OpLessOrEqual  ComparisonOp = "<="
	OpGreaterEqual ComparisonOp = ">="
)

type comparisonFilter struct {
	v     Variable
	op    ComparisonOp
	value string
}

// NewComparisonFilter builds a filter comparing v's lexical form against
// value using op. An unrecognized op is rejected at construction time.
func NewComparisonFilter(v Variable, op ComparisonOp, value string) (Filter, error) {
	switch op {
	case OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessOrEqual, OpGreaterEqual:
		return comparisonFilter{v: v, op: op, value: value}, nil
	default:
		return nil, &QueryError{Msg: "unknown comparison operator: " + string(op)}
	}
}

func (f comparisonFilter) Evaluate(row Row) bool {
	t, ok := row[f.v.Name]
	if !ok {
		return false
	}
	lhs := termLexical(t)
	switch f.op {
	case OpEqual:
		return lhs == f.value
	case OpNotEqual:
		return lhs != f.value
	case OpLessThan:
		return lhs < f.value
	case OpGreaterThan:
		return lhs > f.value
	case OpLessOrEqual:
		return lhs <= f.value
	case OpGreaterEqual:
		return lhs >= f.value
	default:
		return false
	}
}

func (f comparisonFilter) String() string {
	return fmt.Sprintf("%s %s %q", f.v.Name, f.op, f.value)
}

type regexFilter struct {
	v       Variable
	pattern *regexp.Regexp
	source  string
}

// NewRegexFilter builds a filter that keeps rows where v's lexical form
// matches the given regular expression.
func NewRegexFilter(v Variable, pattern string) (Filter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &QueryError{Msg: "invalid regex filter pattern", Err: err}
	}
	return regexFilter{v: v, pattern: re, source: pattern}, nil
}

func (f regexFilter) Evaluate(row Row) bool {
	t, ok := row[f.v.Name]
	if !ok {
		return false
	}
	return f.pattern.MatchString(termLexical(t))
}

func (f regexFilter) String() string {
	return fmt.Sprintf("REGEX(%s, %q)", f.v.Name, f.source)
}
