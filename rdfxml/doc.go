// Package rdfxml implements the bidirectional mapping between an rdf.Graph
// and the RDF/XML surface syntax: a Serializer that emits a graph as a
// UTF-8 XML document with container and collection abbreviation, and a
// Deserializer that loads such a document into a DOM and expands it back
// into triples.
package rdfxml
