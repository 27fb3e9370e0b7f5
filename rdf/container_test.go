package rdf

import "testing"

func TestContainerReifyBagOfTwoResources(t *testing.T) {
	c, _ := NewResource("bnode:c")
	a, _ := NewResource("http://example.org/a")
	b, _ := NewResource("http://example.org/b")

	container := NewContainer(c, Bag)
	if err := container.Add(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := container.Add(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	triples := container.Reify()
	if len(triples) != 3 {
		t.Fatalf("expected 3 triples, got %d", len(triples))
	}
	if triples[0].Predicate.URI != RDFType || !triples[0].Object.Equal(mustResource(RDFBag)) {
		t.Fatalf("expected first triple to be rdf:type rdf:Bag, got %v", triples[0])
	}
	if triples[1].Predicate.URI != rdfNS+"_1" || !triples[1].Object.Equal(a) {
		t.Fatalf("expected rdf:_1 <a>, got %v", triples[1])
	}
	if triples[2].Predicate.URI != rdfNS+"_2" || !triples[2].Object.Equal(b) {
		t.Fatalf("expected rdf:_2 <b>, got %v", triples[2])
	}
}

func TestContainerZeroItemsReifiesTypeOnly(t *testing.T) {
	c, _ := NewResource("bnode:c")
	container := NewContainer(c, Seq)

	triples := container.Reify()
	if len(triples) != 1 {
		t.Fatalf("expected only the rdf:type triple for an empty container, got %d", len(triples))
	}
}

func TestContainerAltDeduplicates(t *testing.T) {
	c, _ := NewResource("bnode:c")
	x, _ := NewResource("http://example.org/x")

	container := NewContainer(c, Alt)
	if err := container.Add(x); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := container.Add(x); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(container.Items) != 1 {
		t.Fatalf("expected itemsCount == 1 after adding the same value twice, got %d", len(container.Items))
	}
}

func TestContainerMixedKindRejected(t *testing.T) {
	c, _ := NewResource("bnode:c")
	x, _ := NewResource("http://example.org/x")
	lit := NewPlainLiteral("hi", "")

	container := NewContainer(c, Bag)
	if err := container.Add(x); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := container.Add(lit); err == nil {
		t.Fatal("expected error mixing Resource and Literal items")
	}
}
