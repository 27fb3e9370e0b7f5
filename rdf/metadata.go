package rdf

import "strings"

// GraphMetadata is derived, incrementally-rebuilt bookkeeping for a Graph:
// which namespaces are in play, which subjects are container heads, and
// which subjects are collection (rdf:List) cons-cells.
type GraphMetadata struct {
	registry *NamespaceRegistry

	namespaces  map[string]Namespace      // keyed by prefix
	containers  map[string]ContainerKind  // keyed by subject URI
	collections map[string]*CollectionItem // keyed by subject URI
}

// NewGraphMetadata returns an empty metadata collector bound to registry.
// The registry is always an explicitly-passed handle, never a package-level
// singleton, so multiple graphs can use independent prefix mappings.
func NewGraphMetadata(registry *NamespaceRegistry) *GraphMetadata {
	m := &GraphMetadata{registry: registry}
	m.Clear()
	return m
}

// Clear resets all derived state.
func (m *GraphMetadata) Clear() {
	m.namespaces = make(map[string]Namespace)
	m.containers = make(map[string]ContainerKind)
	m.collections = make(map[string]*CollectionItem)
}

// Namespaces returns every namespace collected so far, in no particular
// order.
func (m *GraphMetadata) Namespaces() []Namespace {
	out := make([]Namespace, 0, len(m.namespaces))
	for _, ns := range m.namespaces {
		out = append(out, ns)
	}
	return out
}

// Containers returns the subject->kind mapping (read-only view).
func (m *GraphMetadata) Containers() map[string]ContainerKind {
	return m.containers
}

// Collections returns the subject->cell mapping (read-only view).
func (m *GraphMetadata) Collections() map[string]*CollectionItem {
	return m.collections
}

// Update applies the three collection rules below to one inserted triple.
// It is idempotent: repeated calls with the same triple yield identical
// metadata.
func (m *GraphMetadata) Update(t *Triple) {
	m.collectNamespaces(t)
	m.collectContainer(t)
	m.collectCollection(t)
}

// collectNamespaces finds every registered namespace that appears in t's
// subject, predicate, object, or (for a typed literal) datatype URI. This
// uses substring containment, which can match spurious infixes (e.g. a
// short prefix URI that happens to occur inside an unrelated longer one);
// known and left as-is rather than tightened to exact segment matching.
func (m *GraphMetadata) collectNamespaces(t *Triple) {
	candidates := []string{t.Subject.String(), t.Predicate.String()}
	if res, ok := AsResource(t.Object); ok {
		candidates = append(candidates, res.String())
	}
	if typed, ok := t.Object.(*TypedLiteral); ok {
		candidates = append(candidates, typed.Datatype.URI())
	}

	for _, ns := range m.registry.All() {
		if _, already := m.namespaces[ns.Prefix]; already {
			continue
		}
		for _, candidate := range candidates {
			if strings.Contains(candidate, ns.URI) || strings.HasPrefix(candidate, ns.Prefix+":") {
				m.namespaces[ns.Prefix] = ns
				break
			}
		}
	}
}

// collectContainer records t.Subject as a container head when t asserts
// rdf:type rdf:Bag|Seq|Alt, keeping the first kind seen for a given subject.
func (m *GraphMetadata) collectContainer(t *Triple) {
	if t.Flavor != SPO || t.Predicate.URI != RDFType {
		return
	}
	res, ok := AsResource(t.Object)
	if !ok {
		return
	}
	kind, ok := ContainerKindFromURI(res.URI)
	if !ok {
		return
	}
	if _, already := m.containers[t.Subject.URI]; already {
		return
	}
	m.containers[t.Subject.URI] = kind
}

// collectCollection builds up a CollectionItem cons-cell per subject from
// whichever of rdf:type/rdf:first/rdf:rest has been seen for it so far.
func (m *GraphMetadata) collectCollection(t *Triple) {
	switch t.Predicate.URI {
	case RDFType:
		res, ok := AsResource(t.Object)
		if !ok || res.URI != RDFList {
			return
		}
		if _, exists := m.collections[t.Subject.URI]; !exists {
			m.collections[t.Subject.URI] = &CollectionItem{ItemType: CollectionResource}
		}

	case RDFFirst:
		cell, exists := m.collections[t.Subject.URI]
		if !exists {
			return
		}
		kind := CollectionResource
		if IsLiteral(t.Object) {
			kind = CollectionLiteral
		}
		cell.ItemType = kind
		cell.ItemValue = t.Object

	case RDFRest:
		next, ok := AsResource(t.Object)
		if !ok {
			return
		}
		cell, exists := m.collections[t.Subject.URI]
		if !exists {
			return
		}
		cell.Next = next
	}
}
