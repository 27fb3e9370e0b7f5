package rdfdescribe

import (
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func TestFederationStoreSelectUnionsAcrossMembers(t *testing.T) {
	registry := rdf.NewNamespaceRegistry()
	m1 := NewMemoryStore(registry)
	m2 := NewMemoryStore(registry)

	q1 := newTestQuad(t, "http://example.org/g", "http://example.org/s1", "http://example.org/p", "http://example.org/o")
	q2 := newTestQuad(t, "http://example.org/g", "http://example.org/s2", "http://example.org/p", "http://example.org/o")
	if err := m1.AddQuadruple(q1); err != nil {
		t.Fatal(err)
	}
	if err := m2.AddQuadruple(q2); err != nil {
		t.Fatal(err)
	}

	fed := NewFederationStore(m1, m2)
	quads, err := fed.SelectQuadruples(nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(quads) != 2 {
		t.Fatalf("expected union of both members' quadruples, got %d", len(quads))
	}
}

func TestFederationStoreAddWritesToAllMembers(t *testing.T) {
	registry := rdf.NewNamespaceRegistry()
	m1 := NewMemoryStore(registry)
	m2 := NewMemoryStore(registry)
	fed := NewFederationStore(m1, m2)

	q := newTestQuad(t, "http://example.org/g", "http://example.org/s", "http://example.org/p", "http://example.org/o")
	if err := fed.AddQuadruple(q); err != nil {
		t.Fatal(err)
	}

	if ok, _ := m1.Contains(q); !ok {
		t.Fatal("expected first member to receive the quadruple")
	}
	if ok, _ := m2.Contains(q); !ok {
		t.Fatal("expected second member to receive the quadruple")
	}
}

func TestFederationStoreDoesNotDeduplicateAcrossMembers(t *testing.T) {
	registry := rdf.NewNamespaceRegistry()
	m1 := NewMemoryStore(registry)
	m2 := NewMemoryStore(registry)
	q := newTestQuad(t, "http://example.org/g", "http://example.org/s", "http://example.org/p", "http://example.org/o")
	if err := m1.AddQuadruple(q); err != nil {
		t.Fatal(err)
	}
	if err := m2.AddQuadruple(q); err != nil {
		t.Fatal(err)
	}

	fed := NewFederationStore(m1, m2)
	quads, err := fed.SelectQuadruples(nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(quads) != 2 {
		t.Fatalf("expected identical quadruples present in both stores to appear twice (no cross-store dedup), got %d", len(quads))
	}
}
