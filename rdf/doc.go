// Package rdf implements the RDF term, triple, quadruple and graph model:
// resources, plain and typed literals, the graph metadata collector that
// tracks namespaces, containers and collections, and a guarded namespace
// registry, passed explicitly as a handle and shared with the rdfxml codec.
package rdf
