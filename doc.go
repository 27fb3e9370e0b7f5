// Package rdfdescribe implements a SPARQL DESCRIBE query pipeline over an
// RDF data model: pattern/pattern-group matching, natural join and union
// combination, filter evaluation, and term description, running against an
// in-memory graph, a backing SQL store, or a federation of stores.
//
// The rdf subpackage carries the triple/quadruple/graph data model and
// namespace handling; rdfxml reads and writes RDF/XML. This package sits
// above both: Engine evaluates a DescribeQuery against any of the three
// Store-shaped backends and returns the described triples as a DataTable.
package rdfdescribe
