package rdfdescribe

import (
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func mustResource(t *testing.T, uri string) *rdf.Resource {
	t.Helper()
	r, err := rdf.NewResource(uri)
	if err != nil {
		t.Fatalf("NewResource(%q): %v", uri, err)
	}
	return r
}

func TestDataTableNaturalJoin(t *testing.T) {
	a := mustResource(t, "http://example.org/a")
	b := mustResource(t, "http://example.org/b")
	c := mustResource(t, "http://example.org/c")

	left := NewDataTable("?s", "?p")
	left.AddRow(Row{"?s": a, "?p": b})
	right := NewDataTable("?p", "?o")
	right.AddRow(Row{"?p": b, "?o": c})
	right.AddRow(Row{"?p": c, "?o": c})

	joined := left.NaturalJoin(right)
	if len(joined.Rows) != 1 {
		t.Fatalf("expected 1 joined row, got %d", len(joined.Rows))
	}
	if !joined.Rows[0]["?o"].Equal(c) {
		t.Fatalf("expected joined row to carry ?o = %v", c)
	}
}

func TestDataTableNaturalJoinCrossProductWithoutSharedColumns(t *testing.T) {
	a := mustResource(t, "http://example.org/a")
	b := mustResource(t, "http://example.org/b")

	left := NewDataTable("?x")
	left.AddRow(Row{"?x": a})
	left.AddRow(Row{"?x": b})
	right := NewDataTable("?y")
	right.AddRow(Row{"?y": a})

	joined := left.NaturalJoin(right)
	if len(joined.Rows) != 2 {
		t.Fatalf("expected cross product of 2 rows, got %d", len(joined.Rows))
	}
}

func TestDataTableUnion(t *testing.T) {
	a := mustResource(t, "http://example.org/a")
	b := mustResource(t, "http://example.org/b")

	left := NewDataTable("?s")
	left.AddRow(Row{"?s": a})
	right := NewDataTable("?s")
	right.AddRow(Row{"?s": b})

	union := left.Union(right)
	if len(union.Rows) != 2 {
		t.Fatalf("expected 2 rows after union, got %d", len(union.Rows))
	}
}

func TestDataTableDistinctValues(t *testing.T) {
	a := mustResource(t, "http://example.org/a")
	b := mustResource(t, "http://example.org/b")

	table := NewDataTable("?s")
	table.AddRow(Row{"?s": a})
	table.AddRow(Row{"?s": a})
	table.AddRow(Row{"?s": b})

	vals := table.DistinctValues("?s")
	if len(vals) != 2 {
		t.Fatalf("expected 2 distinct values, got %d", len(vals))
	}
}

func TestDataTableHeadAndSkip(t *testing.T) {
	table := NewDataTable("?s")
	for i := 0; i < 5; i++ {
		table.AddRow(Row{"?s": mustResource(t, "http://example.org/r")})
	}

	if got := table.head(2); len(got.Rows) != 2 {
		t.Fatalf("expected head(2) to return 2 rows, got %d", len(got.Rows))
	}
	if got := table.skip(3); len(got.Rows) != 2 {
		t.Fatalf("expected skip(3) to leave 2 rows, got %d", len(got.Rows))
	}
	if got := table.skip(10); len(got.Rows) != 0 {
		t.Fatalf("expected skip past end to leave 0 rows, got %d", len(got.Rows))
	}
}

func TestDataTableApplyFilter(t *testing.T) {
	r, err := rdf.NewResource("http://example.org/a")
	if err != nil {
		t.Fatal(err)
	}
	bnode := rdf.NewBlankNode("x")

	table := NewDataTable("?s")
	table.AddRow(Row{"?s": r})
	table.AddRow(Row{"?s": bnode})

	filtered := table.ApplyFilter(NewIsURIFilter(Variable{Name: "?s"}))
	if len(filtered.Rows) != 1 {
		t.Fatalf("expected 1 row to survive isURI filter, got %d", len(filtered.Rows))
	}
}
