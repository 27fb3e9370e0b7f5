package rdfdescribe

import "github.com/twinfer/rdfdescribe/rdf"

// FederationStore fans a Store operation out across its member stores:
// writes apply to every member, reads union results across members without
// attempting to disambiguate identical pattern names or quadruple identity
// across stores — a federation is a set of independently-addressed stores,
// not a single deduplicated one.
type FederationStore struct {
	Members []Store
}

// NewFederationStore constructs a FederationStore over the given members, in
// the order given (the order queries will be evaluated and unioned in).
func NewFederationStore(members ...Store) *FederationStore {
	return &FederationStore{Members: members}
}

func (f *FederationStore) AddQuadruple(q *rdf.Quadruple) error {
	for _, m := range f.Members {
		if err := m.AddQuadruple(q); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveQuadruple(q *rdf.Quadruple) error {
	for _, m := range f.Members {
		if err := m.RemoveQuadruple(q); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveByContext(ctx *rdf.Resource) error {
	for _, m := range f.Members {
		if err := m.RemoveByContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveBySubject(subject *rdf.Resource) error {
	for _, m := range f.Members {
		if err := m.RemoveBySubject(subject); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveByPredicate(predicate *rdf.Resource) error {
	for _, m := range f.Members {
		if err := m.RemoveByPredicate(predicate); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveByObject(obj *rdf.Resource) error {
	for _, m := range f.Members {
		if err := m.RemoveByObject(obj); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) RemoveByLiteral(lit rdf.Term) error {
	for _, m := range f.Members {
		if err := m.RemoveByLiteral(lit); err != nil {
			return err
		}
	}
	return nil
}

func (f *FederationStore) Clear() error {
	for _, m := range f.Members {
		if err := m.Clear(); err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether any member contains q.
func (f *FederationStore) Contains(q *rdf.Quadruple) (bool, error) {
	for _, m := range f.Members {
		ok, err := m.Contains(q)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// SelectQuadruples unions the matches from every member, in member order,
// without deduplication across members.
func (f *FederationStore) SelectQuadruples(ctx, subj, pred *rdf.Resource, obj rdf.Term) ([]*rdf.Quadruple, error) {
	var out []*rdf.Quadruple
	for _, m := range f.Members {
		quads, err := m.SelectQuadruples(ctx, subj, pred, obj)
		if err != nil {
			return nil, err
		}
		out = append(out, quads...)
	}
	return out, nil
}

// ExtractGraphs merges every member's graphs by context URI, combining
// triples from stores that share a context.
func (f *FederationStore) ExtractGraphs(registry *rdf.NamespaceRegistry) (map[string]*rdf.Graph, error) {
	merged := make(map[string]*rdf.Graph)
	for _, m := range f.Members {
		graphs, err := m.ExtractGraphs(registry)
		if err != nil {
			return nil, err
		}
		for uri, g := range graphs {
			existing, ok := merged[uri]
			if !ok {
				merged[uri] = g
				continue
			}
			for _, t := range g.All() {
				existing.Add(t)
			}
		}
	}
	return merged, nil
}

// MergeGraph inserts g's triples into every member store.
func (f *FederationStore) MergeGraph(g *rdf.Graph) error {
	for _, m := range f.Members {
		if err := m.MergeGraph(g); err != nil {
			return err
		}
	}
	return nil
}
