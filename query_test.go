package rdfdescribe

import (
	"strings"
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func TestDescribeQueryAddGroupNoOpOnDuplicateName(t *testing.T) {
	q := NewDescribeQuery()
	q.AddGroup(NewPatternGroup("g1"))
	q.AddGroup(NewPatternGroup("g1"))
	if len(q.Groups) != 1 {
		t.Fatalf("expected duplicate-named group add to be a no-op, got %d groups", len(q.Groups))
	}
}

func TestDescribeQuerySetLimitIgnoredAfterFirst(t *testing.T) {
	q := NewDescribeQuery()
	q.SetLimit(10)
	q.SetLimit(20)
	got, ok := q.Limit()
	if !ok || got != 10 {
		t.Fatalf("expected limit to stick at 10, got %d (set=%v)", got, ok)
	}
}

func TestDescribeQueryIsStarAndIsEmpty(t *testing.T) {
	q := NewDescribeQuery()
	if !q.IsStar() {
		t.Fatal("expected fresh query to be DESCRIBE *")
	}
	if !q.IsEmpty() {
		t.Fatal("expected fresh query to have no groups")
	}

	r, _ := rdf.NewResource("http://example.org/a")
	q.AddDescribeTerm(DescribeResource(r))
	if q.IsStar() {
		t.Fatal("expected query with a describe term to not be star")
	}
}

func TestDescribeQueryString(t *testing.T) {
	typeRes, _ := rdf.NewResource("http://example.org/type")
	person, _ := rdf.NewResource("http://example.org/Person")

	q := NewDescribeQuery()
	q.AddDescribeTerm(DescribeVariable(Variable{Name: "?s"}))

	g := NewPatternGroup("g1")
	g.AddPattern(NewPattern(VarSlot(Variable{Name: "?s"}), Ground(typeRes), Ground(person)))
	q.AddGroup(g)
	q.SetLimit(5)

	text := q.String()
	if !strings.HasPrefix(text, "DESCRIBE ?s\nWHERE{\n") {
		t.Fatalf("unexpected query text prefix: %q", text)
	}
	if !strings.HasSuffix(text, "\nLIMIT 5") {
		t.Fatalf("expected query text to end with LIMIT clause, got %q", text)
	}
}

func TestDescribeQueryStringUnionBlock(t *testing.T) {
	typeRes, _ := rdf.NewResource("http://example.org/type")
	person, _ := rdf.NewResource("http://example.org/Person")
	org, _ := rdf.NewResource("http://example.org/Org")

	q := NewDescribeQuery()

	g1 := NewPatternGroup("g1")
	g1.AddPattern(NewPattern(VarSlot(Variable{Name: "?s"}), Ground(typeRes), Ground(person)))
	g1.JoinAsUnion = true
	q.AddGroup(g1)

	g2 := NewPatternGroup("g2")
	g2.AddPattern(NewPattern(VarSlot(Variable{Name: "?s"}), Ground(typeRes), Ground(org)))
	g2.JoinAsUnion = true
	q.AddGroup(g2)

	text := q.String()
	if !strings.Contains(text, "  {\n") || !strings.Contains(text, "    UNION\n") || !strings.Contains(text, "  }\n") {
		t.Fatalf("expected rendered union block, got %q", text)
	}
}
