package rdf

import "testing"

func TestQuadrupleIDStable(t *testing.T) {
	ctx, _ := NewResource("http://example.org/g")
	s, _ := NewResource("http://example.org/s")
	p, _ := NewResource("http://example.org/p")
	o, _ := NewResource("http://example.org/o")

	q1 := NewQuadruple(ctx, s, p, o)
	q2 := NewQuadruple(ctx, s, p, o)

	if q1.ID() != q2.ID() {
		t.Fatalf("expected identical quadruples to yield identical IDs, got %d and %d", q1.ID(), q2.ID())
	}
}

func TestQuadrupleIDDiffers(t *testing.T) {
	ctx, _ := NewResource("http://example.org/g")
	s, _ := NewResource("http://example.org/s")
	p, _ := NewResource("http://example.org/p")
	o1, _ := NewResource("http://example.org/o1")
	o2, _ := NewResource("http://example.org/o2")

	q1 := NewQuadruple(ctx, s, p, o1)
	q2 := NewQuadruple(ctx, s, p, o2)

	if q1.ID() == q2.ID() {
		t.Fatal("expected different quadruples to yield different IDs")
	}
}

func TestComputeQuadrupleIDMatchesMethod(t *testing.T) {
	ctx, _ := NewResource("http://example.org/g")
	s, _ := NewResource("http://example.org/s")
	p, _ := NewResource("http://example.org/p")
	o, _ := NewResource("http://example.org/o")
	q := NewQuadruple(ctx, s, p, o)

	direct := ComputeQuadrupleID(ctx.String(), s.String(), p.String(), o.String())
	if direct != q.ID() {
		t.Fatalf("expected ComputeQuadrupleID to match Quadruple.ID, got %d vs %d", direct, q.ID())
	}
}
