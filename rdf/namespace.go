package rdf

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Namespace is a prefix/URI pair registered with a NamespaceRegistry.
type Namespace struct {
	Prefix string
	URI    string
}

var autoNSCounter atomic.Uint64

// AutoNS is the sentinel prefix an RDF/XML serializer suppresses on write:
// if the auto-generated prefix was used and equals AutoNS, it is omitted
// rather than emitted as an xmlns declaration.
const AutoNS = "autoNS"

// NamespaceRegistry is a guarded, explicitly-passed handle onto a set of
// prefix/URI mappings — never a package-level singleton, so deserializing
// multiple documents with conflicting prefixes in the same process stays
// deterministic. Every method is safe for concurrent use, since both
// metadata collection and (de)serialization read it.
type NamespaceRegistry struct {
	mu         sync.RWMutex
	byPrefix   map[string]string
	byURI      map[string]string
	generation uint64
}

// NewNamespaceRegistry returns a registry pre-populated with the standard
// rdf/rdfs/xsd prefixes.
func NewNamespaceRegistry() *NamespaceRegistry {
	r := &NamespaceRegistry{
		byPrefix: make(map[string]string),
		byURI:    make(map[string]string),
	}
	r.Register("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	r.Register("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	r.Register("xsd", "http://www.w3.org/2001/XMLSchema#")
	return r
}

// Register records a prefix/URI mapping, overwriting any prior mapping for
// the same prefix.
func (r *NamespaceRegistry) Register(prefix, uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPrefix[prefix] = uri
	r.byURI[uri] = prefix
}

// LookupPrefix returns the URI registered for prefix, if any.
func (r *NamespaceRegistry) LookupPrefix(prefix string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uri, ok := r.byPrefix[prefix]
	return uri, ok
}

// LookupURI returns the prefix registered for uri, if any.
func (r *NamespaceRegistry) LookupURI(uri string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefix, ok := r.byURI[uri]
	return prefix, ok
}

// PrefixFor returns the prefix registered for uri, auto-generating and
// registering an opaque one (AutoNS + a counter) if none is registered yet.
func (r *NamespaceRegistry) PrefixFor(uri string) string {
	if prefix, ok := r.LookupURI(uri); ok {
		return prefix
	}
	n := autoNSCounter.Add(1)
	prefix := fmt.Sprintf("%s%d", AutoNS, n)
	r.Register(prefix, uri)
	return prefix
}

// All returns every registered namespace, in no particular order.
func (r *NamespaceRegistry) All() []Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Namespace, 0, len(r.byPrefix))
	for prefix, uri := range r.byPrefix {
		out = append(out, Namespace{Prefix: prefix, URI: uri})
	}
	return out
}
