package rdfdescribe

import "github.com/twinfer/rdfdescribe/rdf"

// Store is the uniform selection interface over memory, SQL and federated
// backends. All operations are atomic per call; batch operations in backed
// stores use a single transaction that commits on success or rolls back on
// any failure, with the connection always closed on both paths.
type Store interface {
	// AddQuadruple adds q to the store. Adding an already-present quadruple
	// is a no-op, not an error.
	AddQuadruple(q *rdf.Quadruple) error

	// RemoveQuadruple removes q from the store, if present.
	RemoveQuadruple(q *rdf.Quadruple) error

	// RemoveByContext removes every quadruple whose context equals ctx.
	RemoveByContext(ctx *rdf.Resource) error
	// RemoveBySubject removes every quadruple whose subject equals subject.
	RemoveBySubject(subject *rdf.Resource) error
	// RemoveByPredicate removes every quadruple whose predicate equals predicate.
	RemoveByPredicate(predicate *rdf.Resource) error
	// RemoveByObject removes every quadruple whose object is the resource obj
	// (the SPO flavor; see RemoveByLiteral for SPL).
	RemoveByObject(obj *rdf.Resource) error
	// RemoveByLiteral removes every quadruple whose object is the literal lit
	// (the SPL flavor; see RemoveByObject for SPO).
	RemoveByLiteral(lit rdf.Term) error

	// Clear removes every quadruple from the store.
	Clear() error

	// Contains reports whether an equal quadruple is already present.
	Contains(q *rdf.Quadruple) (bool, error)

	// SelectQuadruples returns every quadruple matching the given pattern; a
	// nil ctx/subj/pred/obj component is a wildcard. obj may be a Resource or
	// a Literal — the polymorphic Term realizes both the spec's "obj?" and
	// "lit?" selector slots through one parameter.
	SelectQuadruples(ctx, subj, pred *rdf.Resource, obj rdf.Term) ([]*rdf.Quadruple, error)

	// ExtractGraphs groups every stored quadruple by context, returning one
	// rdf.Graph per distinct context URI.
	ExtractGraphs(registry *rdf.NamespaceRegistry) (map[string]*rdf.Graph, error)

	// MergeGraph inserts every triple of g as a quadruple in g's context.
	MergeGraph(g *rdf.Graph) error
}
