package rdf

import "strconv"

// ContainerKind is the kind of an RDF container: Bag, Seq or Alt.
type ContainerKind int

const (
	Bag ContainerKind = iota
	Seq
	Alt
)

const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// RDF vocabulary URIs referenced throughout the term/graph/metadata and
// rdfxml packages.
const (
	RDFType      = rdfNS + "type"
	RDFBag       = rdfNS + "Bag"
	RDFSeq       = rdfNS + "Seq"
	RDFAlt       = rdfNS + "Alt"
	RDFList      = rdfNS + "List"
	RDFFirst     = rdfNS + "first"
	RDFRest      = rdfNS + "rest"
	RDFNil       = rdfNS + "nil"
	RDFSubject   = rdfNS + "subject"
	RDFPredicate = rdfNS + "predicate"
	RDFObject    = rdfNS + "object"
	RDFStatement = rdfNS + "Statement"
)

// ContainerKindURI returns the rdf: URI naming kind.
func ContainerKindURI(kind ContainerKind) string {
	switch kind {
	case Seq:
		return RDFSeq
	case Alt:
		return RDFAlt
	default:
		return RDFBag
	}
}

// ContainerKindFromURI resolves an rdf:Bag/Seq/Alt URI to a ContainerKind.
func ContainerKindFromURI(uri string) (ContainerKind, bool) {
	switch uri {
	case RDFBag:
		return Bag, true
	case RDFSeq:
		return Seq, true
	case RDFAlt:
		return Alt, true
	default:
		return 0, false
	}
}

// Container is a typed, ordered sequence of items of a single kind
// (Resource XOR Literal). Alt forbids duplicate items by value equality.
type Container struct {
	Subject *Resource
	Kind    ContainerKind
	Items   []Term
}

// NewContainer constructs an empty container of the given kind.
func NewContainer(subject *Resource, kind ContainerKind) *Container {
	return &Container{Subject: subject, Kind: kind}
}

// Add appends item to the container. For Alt it is a no-op if an
// value-equal item is already present.
func (c *Container) Add(item Term) error {
	if len(c.Items) > 0 {
		mixedKind := IsLiteral(c.Items[0]) != IsLiteral(item)
		if mixedKind {
			return &ModelError{Msg: "container items must all be the same kind (Resource or Literal)"}
		}
	}
	if c.Kind == Alt {
		for _, existing := range c.Items {
			if existing.Equal(item) {
				return nil
			}
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// Reify produces the triples `(C rdf:type rdf:K)` and `(C rdf:_j item_j)`
// for j=1..n. Zero items still emits the rdf:type triple alone.
func (c *Container) Reify() []*Triple {
	typeRes, _ := NewResource(ContainerKindURI(c.Kind))
	triples := []*Triple{NewTriple(c.Subject, mustResource(RDFType), typeRes)}
	for i, item := range c.Items {
		pred := mustResource(containerMemberURI(i + 1))
		triples = append(triples, NewTriple(c.Subject, pred, item))
	}
	return triples
}

func containerMemberURI(index int) string {
	return rdfNS + "_" + strconv.Itoa(index)
}

func mustResource(uri string) *Resource {
	r, err := NewResource(uri)
	if err != nil {
		panic(err)
	}
	return r
}
