package rdfdescribe

import "github.com/twinfer/rdfdescribe/rdf"

// MemoryStore realizes Store directly over an in-process map of quadruples:
// no I/O, no transactions, errors are never generated by this
// implementation (they exist in the Store contract only for backends that
// can actually fail).
type MemoryStore struct {
	registry *rdf.NamespaceRegistry
	quads    map[rdf.QuadrupleID]*rdf.Quadruple
}

// NewMemoryStore constructs an empty MemoryStore bound to registry (used by
// ExtractGraphs when building per-context graphs).
func NewMemoryStore(registry *rdf.NamespaceRegistry) *MemoryStore {
	return &MemoryStore{registry: registry, quads: make(map[rdf.QuadrupleID]*rdf.Quadruple)}
}

func (s *MemoryStore) AddQuadruple(q *rdf.Quadruple) error {
	s.quads[q.ID()] = q
	return nil
}

func (s *MemoryStore) RemoveQuadruple(q *rdf.Quadruple) error {
	delete(s.quads, q.ID())
	return nil
}

func (s *MemoryStore) RemoveByContext(ctx *rdf.Resource) error {
	return s.removeWhere(func(q *rdf.Quadruple) bool { return q.Context.Equal(ctx) })
}

func (s *MemoryStore) RemoveBySubject(subject *rdf.Resource) error {
	return s.removeWhere(func(q *rdf.Quadruple) bool { return q.Subject.Equal(subject) })
}

func (s *MemoryStore) RemoveByPredicate(predicate *rdf.Resource) error {
	return s.removeWhere(func(q *rdf.Quadruple) bool { return q.Predicate.Equal(predicate) })
}

func (s *MemoryStore) RemoveByObject(obj *rdf.Resource) error {
	return s.removeWhere(func(q *rdf.Quadruple) bool { return q.Flavor == rdf.SPO && q.Object.Equal(obj) })
}

func (s *MemoryStore) RemoveByLiteral(lit rdf.Term) error {
	return s.removeWhere(func(q *rdf.Quadruple) bool { return q.Flavor == rdf.SPL && q.Object.Equal(lit) })
}

func (s *MemoryStore) removeWhere(match func(*rdf.Quadruple) bool) error {
	for id, q := range s.quads {
		if match(q) {
			delete(s.quads, id)
		}
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.quads = make(map[rdf.QuadrupleID]*rdf.Quadruple)
	return nil
}

func (s *MemoryStore) Contains(q *rdf.Quadruple) (bool, error) {
	_, ok := s.quads[q.ID()]
	return ok, nil
}

func (s *MemoryStore) SelectQuadruples(ctx, subj, pred *rdf.Resource, obj rdf.Term) ([]*rdf.Quadruple, error) {
	var out []*rdf.Quadruple
	for _, q := range s.quads {
		if ctx != nil && !q.Context.Equal(ctx) {
			continue
		}
		if subj != nil && !q.Subject.Equal(subj) {
			continue
		}
		if pred != nil && !q.Predicate.Equal(pred) {
			continue
		}
		if obj != nil && !q.Object.Equal(obj) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *MemoryStore) ExtractGraphs(registry *rdf.NamespaceRegistry) (map[string]*rdf.Graph, error) {
	graphs := make(map[string]*rdf.Graph)
	for _, q := range s.quads {
		g, ok := graphs[q.Context.URI]
		if !ok {
			g = rdf.NewGraph(q.Context, registry)
			graphs[q.Context.URI] = g
		}
		g.Add(q.Triple())
	}
	return graphs, nil
}

func (s *MemoryStore) MergeGraph(g *rdf.Graph) error {
	for _, t := range g.All() {
		s.AddQuadruple(rdf.NewQuadruple(g.Context, t.Subject, t.Predicate, t.Object))
	}
	return nil
}
