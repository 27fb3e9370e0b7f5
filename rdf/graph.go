package rdf

import "sort"

// Graph is an unordered set of triples plus a Context (base) IRI and a
// GraphMetadata collector rebuilt on every insertion. Like every data
// structure in this package, a Graph is mutated only by its own methods and
// is not safe for concurrent mutation.
type Graph struct {
	Context  *Resource
	Metadata *GraphMetadata

	registry *NamespaceRegistry
	triples  map[string]*Triple
}

// NewGraph constructs an empty graph with the given context (base) IRI,
// bound to registry for namespace collection.
func NewGraph(context *Resource, registry *NamespaceRegistry) *Graph {
	return &Graph{
		Context:  context,
		Metadata: NewGraphMetadata(registry),
		registry: registry,
		triples:  make(map[string]*Triple),
	}
}

// Len returns the number of distinct triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Add inserts t into the graph (no-op if an equal triple is already
// present) and updates metadata.
func (g *Graph) Add(t *Triple) {
	key := t.key()
	if _, exists := g.triples[key]; exists {
		return
	}
	g.triples[key] = t
	g.Metadata.Update(t)
}

// AddTriple is a convenience wrapper around Add for callers that have
// S/P/O components rather than an assembled *Triple.
func (g *Graph) AddTriple(subject, predicate *Resource, object Term) {
	g.Add(NewTriple(subject, predicate, object))
}

// Remove deletes t from the graph, if present. Metadata is not
// retroactively shrunk — metadata is rebuilt by Update on insertion only; a
// removed triple's contribution to Namespaces/Containers/Collections can
// still be implied by other triples, so this package does not attempt
// incremental metadata retraction.
func (g *Graph) Remove(t *Triple) {
	delete(g.triples, t.key())
}

// All returns every triple in the graph, in no particular order.
func (g *Graph) All() []*Triple {
	out := make([]*Triple, 0, len(g.triples))
	for _, t := range g.triples {
		out = append(out, t)
	}
	return out
}

// Match returns every triple matching the given pattern; a nil component is
// a wildcard.
func (g *Graph) Match(subject, predicate *Resource, object Term) []*Triple {
	var out []*Triple
	for _, t := range g.triples {
		if subject != nil && !t.Subject.Equal(subject) {
			continue
		}
		if predicate != nil && !t.Predicate.Equal(predicate) {
			continue
		}
		if object != nil && !t.Object.Equal(object) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// One returns one triple matching the pattern, or nil if none match.
func (g *Graph) One(subject, predicate *Resource, object Term) *Triple {
	for _, t := range g.triples {
		if subject != nil && !t.Subject.Equal(subject) {
			continue
		}
		if predicate != nil && !t.Predicate.Equal(predicate) {
			continue
		}
		if object != nil && !t.Object.Equal(object) {
			continue
		}
		return t
	}
	return nil
}

// GroupBySubject partitions the graph's triples by subject URI, and
// returns the subjects in lexicographic order — the grouping and ordering
// an RDF/XML serializer needs to emit one element per subject.
func (g *Graph) GroupBySubject() (subjects []string, bySubject map[string][]*Triple) {
	bySubject = make(map[string][]*Triple)
	for _, t := range g.triples {
		bySubject[t.Subject.URI] = append(bySubject[t.Subject.URI], t)
	}
	subjects = make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects, bySubject
}

// Registry returns the namespace registry this graph's metadata collector
// is bound to.
func (g *Graph) Registry() *NamespaceRegistry {
	return g.registry
}
