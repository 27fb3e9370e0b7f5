package rdfxml

import (
	"strings"
	"testing"

	"github.com/twinfer/rdfdescribe/rdf"
)

func newTestGraph(t *testing.T) (*rdf.Graph, *rdf.NamespaceRegistry) {
	t.Helper()
	registry := rdf.NewNamespaceRegistry()
	registry.Register("ex", "http://example.org/")
	ctx, _ := rdf.NewResource("http://example.org/")
	return rdf.NewGraph(ctx, registry), registry
}

func TestSerializeEmptyGraphIsWellFormed(t *testing.T) {
	g, registry := newTestGraph(t)
	out, err := NewSerializer(registry).Serialize(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<rdf:RDF") || !strings.Contains(s, "</rdf:RDF>") {
		t.Fatalf("expected well-formed rdf:RDF root, got %s", s)
	}
	if strings.Contains(s, "rdf:Description") {
		t.Fatalf("expected no subjects in an empty graph, got %s", s)
	}
}

func TestSerializeTypedLiteral(t *testing.T) {
	g, registry := newTestGraph(t)
	s, _ := rdf.NewResource("http://example.org/s")
	p, _ := rdf.NewResource("http://example.org/p")
	g.AddTriple(s, p, rdf.NewTypedLiteral("42", rdf.XSDInteger))

	out, err := NewSerializer(registry).Serialize(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, `rdf:datatype="http://www.w3.org/2001/XMLSchema#integer"`) {
		t.Fatalf("expected rdf:datatype attribute, got %s", text)
	}
	if !strings.Contains(text, ">42<") {
		t.Fatalf("expected literal text 42, got %s", text)
	}
}

func TestSerializeResourceCollection(t *testing.T) {
	g, registry := newTestGraph(t)
	s, _ := rdf.NewResource("http://example.org/s")
	p, _ := rdf.NewResource("http://example.org/p")
	h1 := rdf.NewBlankNode("h1")
	h2 := rdf.NewBlankNode("h2")
	a, _ := rdf.NewResource("http://example.org/a")
	b, _ := rdf.NewResource("http://example.org/b")

	g.AddTriple(s, p, h1)
	g.AddTriple(h1, mustRes(rdf.RDFType), mustRes(rdf.RDFList))
	g.AddTriple(h1, mustRes(rdf.RDFFirst), a)
	g.AddTriple(h1, mustRes(rdf.RDFRest), h2)
	g.AddTriple(h2, mustRes(rdf.RDFType), mustRes(rdf.RDFList))
	g.AddTriple(h2, mustRes(rdf.RDFFirst), b)
	g.AddTriple(h2, mustRes(rdf.RDFRest), mustRes(rdf.RDFNil))

	out, err := NewSerializer(registry).Serialize(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, `rdf:parseType="Collection"`) {
		t.Fatalf("expected parseType=Collection abbreviation, got %s", text)
	}
	if !strings.Contains(text, `rdf:about="http://example.org/a"`) || !strings.Contains(text, `rdf:about="http://example.org/b"`) {
		t.Fatalf("expected both collection items rendered as rdf:Description, got %s", text)
	}
	if strings.Contains(text, "bnode:h1") || strings.Contains(text, "bnode:h2") {
		t.Fatalf("collection cons-cells must not be serialized separately, got %s", text)
	}
}

func TestSerializeContainerEmbedsUnderReferencingPredicate(t *testing.T) {
	g, registry := newTestGraph(t)
	s, _ := rdf.NewResource("http://example.org/s")
	p, _ := rdf.NewResource("http://example.org/p")
	c := rdf.NewBlankNode("c")
	a, _ := rdf.NewResource("http://example.org/a")

	g.AddTriple(s, p, c)
	g.AddTriple(c, mustRes(rdf.RDFType), mustRes(rdf.RDFBag))
	g.AddTriple(c, mustRes(rdfNS+"_1"), a)

	out, err := NewSerializer(registry).Serialize(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "<rdf:Bag>") {
		t.Fatalf("expected embedded rdf:Bag element, got %s", text)
	}
	if strings.Count(text, "<rdf:Bag>") != 1 {
		t.Fatalf("expected the container emitted exactly once, got %s", text)
	}
}

func TestSerializeFloatingContainerFallsBackToDescription(t *testing.T) {
	g, registry := newTestGraph(t)
	c := rdf.NewBlankNode("c")
	a, _ := rdf.NewResource("http://example.org/a")

	g.AddTriple(c, mustRes(rdf.RDFType), mustRes(rdf.RDFBag))
	g.AddTriple(c, mustRes(rdfNS+"_1"), a)

	out, err := NewSerializer(registry).Serialize(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "rdf:Description") {
		t.Fatalf("expected floating container rendered as rdf:Description, got %s", text)
	}
	if strings.Contains(text, "<rdf:Bag>") {
		t.Fatalf("a floating container has no referencing predicate to embed under, got %s", text)
	}
}
