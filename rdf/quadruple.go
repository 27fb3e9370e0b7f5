package rdf

import "hash/fnv"

// QuadrupleID is a stable 64-bit identifier for a quadruple, used as the
// primary key of the quadruples SQL schema. It is a pure function of the
// four string forms, so the same quadruple always hashes to the same ID
// regardless of process or insertion order.
type QuadrupleID int64

// Quadruple adds a named-graph Context to a Triple.
type Quadruple struct {
	Context   *Resource
	Subject   *Resource
	Predicate *Resource
	Object    Term
	Flavor    Flavor
}

// NewQuadruple constructs a Quadruple, deriving its Flavor from the object.
func NewQuadruple(context, subject, predicate *Resource, object Term) *Quadruple {
	flavor := SPO
	if IsLiteral(object) {
		flavor = SPL
	}
	return &Quadruple{Context: context, Subject: subject, Predicate: predicate, Object: object, Flavor: flavor}
}

// Triple drops the Context, returning the underlying Triple.
func (q *Quadruple) Triple() *Triple {
	return &Triple{Subject: q.Subject, Predicate: q.Predicate, Object: q.Object, Flavor: q.Flavor}
}

// ID computes the QuadrupleID of this quadruple. Identical quadruples (by
// string form) yield identical IDs across processes: a straight fnv-1a
// hash over the space-joined "ctx subj pred obj" string.
func (q *Quadruple) ID() QuadrupleID {
	return QuadrupleID(computeQuadrupleID(q.Context.String(), q.Subject.String(), q.Predicate.String(), q.Object.String()))
}

// ComputeQuadrupleID exposes the hash for callers (e.g. a SQL store) that
// hold the four string forms without materializing a Quadruple.
func ComputeQuadrupleID(ctx, subj, pred, obj string) QuadrupleID {
	return QuadrupleID(computeQuadrupleID(ctx, subj, pred, obj))
}

func computeQuadrupleID(ctx, subj, pred, obj string) int64 {
	h := fnv.New64a()
	h.Write([]byte(ctx))
	h.Write([]byte(" "))
	h.Write([]byte(subj))
	h.Write([]byte(" "))
	h.Write([]byte(pred))
	h.Write([]byte(" "))
	h.Write([]byte(obj))
	return int64(h.Sum64())
}
