package rdfdescribe

import (
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func newTestQuad(t *testing.T, ctx, s, p, o string) *rdf.Quadruple {
	t.Helper()
	ctxR := mustResource(t, ctx)
	sR := mustResource(t, s)
	pR := mustResource(t, p)
	oR := mustResource(t, o)
	return rdf.NewQuadruple(ctxR, sR, pR, oR)
}

// runStoreSuite exercises the Store contract against any backend, so the
// memory, SQLite and (opt-in) PostgreSQL stores run the same behavioral
// suite. FederationStore has its own tests in store_federation_test.go.
func runStoreSuite(t *testing.T, newStore func() Store) {
	t.Run("AddContainsRemove", func(t *testing.T) {
		store := newStore()
		q := newTestQuad(t, "http://example.org/g", "http://example.org/s", "http://example.org/p", "http://example.org/o")

		if ok, _ := store.Contains(q); ok {
			t.Fatal("expected fresh store to not contain quadruple")
		}
		if err := store.AddQuadruple(q); err != nil {
			t.Fatal(err)
		}
		if ok, err := store.Contains(q); err != nil || !ok {
			t.Fatalf("expected store to contain added quadruple, ok=%v err=%v", ok, err)
		}
		if err := store.RemoveQuadruple(q); err != nil {
			t.Fatal(err)
		}
		if ok, _ := store.Contains(q); ok {
			t.Fatal("expected quadruple to be gone after remove")
		}
	})

	t.Run("AddIsIdempotent", func(t *testing.T) {
		store := newStore()
		q := newTestQuad(t, "http://example.org/g", "http://example.org/s", "http://example.org/p", "http://example.org/o")
		if err := store.AddQuadruple(q); err != nil {
			t.Fatal(err)
		}
		if err := store.AddQuadruple(q); err != nil {
			t.Fatalf("expected re-adding an existing quadruple to be a no-op, got error: %v", err)
		}
		quads, err := store.SelectQuadruples(nil, nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(quads) != 1 {
			t.Fatalf("expected exactly 1 stored quadruple after duplicate add, got %d", len(quads))
		}
	})

	t.Run("SelectQuadruplesBySubject", func(t *testing.T) {
		store := newStore()
		q1 := newTestQuad(t, "http://example.org/g", "http://example.org/s1", "http://example.org/p", "http://example.org/o")
		q2 := newTestQuad(t, "http://example.org/g", "http://example.org/s2", "http://example.org/p", "http://example.org/o")
		if err := store.AddQuadruple(q1); err != nil {
			t.Fatal(err)
		}
		if err := store.AddQuadruple(q2); err != nil {
			t.Fatal(err)
		}

		s1 := mustResource(t, "http://example.org/s1")
		got, err := store.SelectQuadruples(nil, s1, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || !got[0].Subject.Equal(s1) {
			t.Fatalf("expected 1 quadruple matching subject filter, got %d", len(got))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := newStore()
		q := newTestQuad(t, "http://example.org/g", "http://example.org/s", "http://example.org/p", "http://example.org/o")
		if err := store.AddQuadruple(q); err != nil {
			t.Fatal(err)
		}
		if err := store.Clear(); err != nil {
			t.Fatal(err)
		}
		quads, err := store.SelectQuadruples(nil, nil, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(quads) != 0 {
			t.Fatalf("expected empty store after Clear, got %d quadruples", len(quads))
		}
	})

	t.Run("ExtractGraphsGroupsByContext", func(t *testing.T) {
		store := newStore()
		q1 := newTestQuad(t, "http://example.org/g1", "http://example.org/s", "http://example.org/p", "http://example.org/o")
		q2 := newTestQuad(t, "http://example.org/g2", "http://example.org/s", "http://example.org/p", "http://example.org/o")
		if err := store.AddQuadruple(q1); err != nil {
			t.Fatal(err)
		}
		if err := store.AddQuadruple(q2); err != nil {
			t.Fatal(err)
		}

		registry := rdf.NewNamespaceRegistry()
		graphs, err := store.ExtractGraphs(registry)
		if err != nil {
			t.Fatal(err)
		}
		if len(graphs) != 2 {
			t.Fatalf("expected 2 distinct context graphs, got %d", len(graphs))
		}
	})

	t.Run("RemoveByLiteral", func(t *testing.T) {
		store := newStore()
		ctxR := mustResource(t, "http://example.org/g")
		sR := mustResource(t, "http://example.org/s")
		pR := mustResource(t, "http://example.org/p")
		lit := rdf.NewPlainLiteral("hello", "")
		q := rdf.NewQuadruple(ctxR, sR, pR, lit)
		if err := store.AddQuadruple(q); err != nil {
			t.Fatal(err)
		}
		if err := store.RemoveByLiteral(lit); err != nil {
			t.Fatal(err)
		}
		if ok, _ := store.Contains(q); ok {
			t.Fatal("expected literal-valued quadruple to be removed")
		}
	})
}

func TestMemoryStoreSuite(t *testing.T) {
	registry := rdf.NewNamespaceRegistry()
	runStoreSuite(t, func() Store { return NewMemoryStore(registry) })
}

func TestMemoryStoreMergeGraph(t *testing.T) {
	registry := rdf.NewNamespaceRegistry()
	ctx := mustResource(t, "http://example.org/g")
	g := rdf.NewGraph(ctx, registry)
	s := mustResource(t, "http://example.org/s")
	p := mustResource(t, "http://example.org/p")
	o := mustResource(t, "http://example.org/o")
	g.Add(rdf.NewTriple(s, p, o))

	store := NewMemoryStore(registry)
	if err := store.MergeGraph(g); err != nil {
		t.Fatal(err)
	}
	quads, err := store.SelectQuadruples(nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(quads) != 1 {
		t.Fatalf("expected 1 merged quadruple, got %d", len(quads))
	}
}
