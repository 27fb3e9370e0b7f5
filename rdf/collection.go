package rdf

import "bitbucket.org/creachadair/stringset"

// CollectionItem is one cons-cell of an rdf:List collection chain:
// populated by the three triples `rdf:type rdf:List`, `rdf:first <value>`,
// `rdf:rest <nextCell|rdf:nil>`.
type CollectionItem struct {
	ItemType  CollectionItemKind
	ItemValue Term
	Next      *Resource // nil until rdf:rest is seen; rdf:nil terminates the chain
}

// CollectionItemKind distinguishes a Resource-valued list item from a
// Literal-valued one.
type CollectionItemKind int

const (
	CollectionResource CollectionItemKind = iota
	CollectionLiteral
)

// IsNil reports whether next names the list terminator rdf:nil.
func IsNil(next *Resource) bool {
	return next != nil && next.URI == RDFNil
}

// WalkCollection follows rdf:rest links from head until rdf:nil, returning
// the items in order. It is bounded by a visited set so an adversarial
// cyclic rdf:rest chain terminates instead of looping forever.
func WalkCollection(cells map[string]*CollectionItem, head *Resource) ([]Term, error) {
	var items []Term
	visited := stringset.New()
	current := head
	for current != nil && !IsNil(current) {
		if visited.Contains(current.URI) {
			return nil, &ModelError{Msg: "cyclic rdf:rest chain detected at " + current.URI}
		}
		visited.Add(current.URI)

		cell, ok := cells[current.URI]
		if !ok {
			return nil, &ModelError{Msg: "dangling collection cell reference: " + current.URI}
		}
		if cell.ItemValue != nil {
			items = append(items, cell.ItemValue)
		}
		current = cell.Next
	}
	return items, nil
}
