package rdfdescribe

import (
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func TestComparisonFilterRejectsUnknownOp(t *testing.T) {
	_, err := NewComparisonFilter(Variable{Name: "?x"}, ComparisonOp("~="), "v")
	if err == nil {
		t.Fatal("expected unknown comparison operator to be rejected")
	}
}

func TestComparisonFilterEvaluate(t *testing.T) {
	f, err := NewComparisonFilter(Variable{Name: "?x"}, OpEqual, "hello")
	if err != nil {
		t.Fatal(err)
	}
	row := Row{"?x": rdf.NewPlainLiteral("hello", "")}
	if !f.Evaluate(row) {
		t.Fatal("expected matching literal to satisfy equality filter")
	}
}

func TestRegexFilterRejectsInvalidPattern(t *testing.T) {
	_, err := NewRegexFilter(Variable{Name: "?x"}, "(")
	if err == nil {
		t.Fatal("expected invalid regex to be rejected at construction")
	}
}

func TestRegexFilterEvaluate(t *testing.T) {
	f, err := NewRegexFilter(Variable{Name: "?x"}, "^h.*o$")
	if err != nil {
		t.Fatal(err)
	}
	row := Row{"?x": rdf.NewPlainLiteral("hello", "")}
	if !f.Evaluate(row) {
		t.Fatal("expected matching value to satisfy regex filter")
	}
}

func TestIsBlankAndIsLiteralFilters(t *testing.T) {
	bnode := rdf.NewBlankNode("x")
	lit := rdf.NewPlainLiteral("v", "")

	row := Row{"?s": bnode, "?o": lit}
	if !NewIsBlankFilter(Variable{Name: "?s"}).Evaluate(row) {
		t.Fatal("expected blank node to satisfy isBlank filter")
	}
	if !NewIsLiteralFilter(Variable{Name: "?o"}).Evaluate(row) {
		t.Fatal("expected literal to satisfy isLiteral filter")
	}
	if NewIsURIFilter(Variable{Name: "?s"}).Evaluate(row) {
		t.Fatal("expected blank node to fail isURI filter")
	}
}
