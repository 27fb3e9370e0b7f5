package rdfxml

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/twinfer/rdfdescribe/rdf"
)

// rdfNS mirrors the RDF/XML namespace URI the rdf package keeps unexported;
// both packages own the constant independently rather than one exporting it
// purely for the other's convenience.
const rdfNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

const bnodePrefix = "bnode:"

// Serializer emits an rdf.Graph as an RDF/XML document: subjects grouped
// together, rdf:type emitted first within each group, and full container
// and collection abbreviation.
type Serializer struct {
	registry *rdf.NamespaceRegistry
}

// NewSerializer constructs a Serializer bound to registry, the shared
// namespace handle also used by graph metadata collection.
func NewSerializer(registry *rdf.NamespaceRegistry) *Serializer {
	return &Serializer{registry: registry}
}

// Serialize emits g as a complete RDF/XML document. Any I/O or XML
// construction failure is wrapped and returned; no partial output is
// returned on error.
func (s *Serializer) Serialize(g *rdf.Graph) ([]byte, error) {
	subjects, bySubject := g.GroupBySubject()

	st := &serializeState{
		graph:      g,
		registry:   s.registry,
		bySubject:  bySubject,
		containers: g.Metadata.Containers(),
		collections: g.Metadata.Collections(),
		rendered:    map[string]string{},
	}
	st.detectFloating()

	var b strings.Builder
	st.writeRoot(&b)

	for _, subjectURI := range subjects {
		if _, isContainer := st.containers[subjectURI]; isContainer && !st.floatingContainers[subjectURI] {
			continue
		}
		if cell, isCollection := st.collections[subjectURI]; isCollection &&
			cell.ItemType == rdf.CollectionResource && !st.floatingCollections[subjectURI] {
			continue
		}

		elem, err := st.renderDescriptionElement(subjectURI)
		if err != nil {
			return nil, fmt.Errorf("rdfxml: serialize subject %s: %w", subjectURI, err)
		}
		b.WriteString(elem)
	}

	b.WriteString("</rdf:RDF>\n")
	return []byte(b.String()), nil
}

// serializeState carries the bookkeeping one Serialize call needs across its
// recursive helper methods — transient tables scoped to the duration of one
// call, not shared across calls.
type serializeState struct {
	graph      *rdf.Graph
	registry   *rdf.NamespaceRegistry
	bySubject  map[string][]*rdf.Triple
	containers map[string]rdf.ContainerKind
	collections map[string]*rdf.CollectionItem

	floatingContainers  map[string]bool
	floatingCollections map[string]bool

	// rendered memoizes container element text keyed by subject URI, so a
	// container referenced from exactly one object is rendered exactly once.
	rendered map[string]string
}

// detectFloating computes the container/collection subjects that never
// appear as any triple's object and therefore cannot be embedded under a
// referencing predicate.
func (st *serializeState) detectFloating() {
	referenced := map[string]bool{}
	for _, t := range st.graph.All() {
		if res, ok := rdf.AsResource(t.Object); ok {
			referenced[res.URI] = true
		}
	}

	st.floatingContainers = map[string]bool{}
	for subj := range st.containers {
		if !referenced[subj] {
			st.floatingContainers[subj] = true
		}
	}
	st.floatingCollections = map[string]bool{}
	for subj := range st.collections {
		if !referenced[subj] {
			st.floatingCollections[subj] = true
		}
	}
}

// writeRoot emits the XML declaration and the opening rdf:RDF element with
// every collected namespace except rdf and the pseudo-prefix "base", plus
// xml:base set to the graph's context.
func (st *serializeState) writeRoot(b *strings.Builder) {
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<rdf:RDF\n    xmlns:rdf=\"" + rdfNS + "\"")

	namespaces := st.graph.Metadata.Namespaces()
	sort.Slice(namespaces, func(i, j int) bool { return namespaces[i].Prefix < namespaces[j].Prefix })
	for _, ns := range namespaces {
		if ns.Prefix == "rdf" || ns.Prefix == "base" {
			continue
		}
		fmt.Fprintf(b, "\n    xmlns:%s=\"%s\"", ns.Prefix, escapeXMLAttribute(ns.URI))
	}
	fmt.Fprintf(b, "\n    xml:base=\"%s\">\n", escapeXMLAttribute(st.graph.Context.String()))
}

// renderDescriptionElement renders a non-container, non-abbreviated-collection
// subject as an rdf:Description, including the floating-container/collection
// case where the subject keeps its ordinary triples (type triple included)
// instead of the dedicated container tag.
func (st *serializeState) renderDescriptionElement(subjectURI string) (string, error) {
	var b strings.Builder
	attrName, attrVal := identityAttr(subjectURI, "rdf:about")
	fmt.Fprintf(&b, "\n  <rdf:Description %s=\"%s\">\n", attrName, escapeXMLAttribute(attrVal))

	for _, t := range orderTriples(st.bySubject[subjectURI], false) {
		line, err := st.renderPredicateObject(t)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}

	b.WriteString("  </rdf:Description>\n")
	return b.String(), nil
}

// renderContainerElement renders subjectURI's container as <rdf:Bag|Seq|Alt>,
// with its rdf:_N member triples as children and the rdf:type triple
// suppressed (implied by the element's own local name). Results are
// memoized so a container referenced as exactly one object is emitted
// exactly once.
func (st *serializeState) renderContainerElement(subjectURI string) (string, error) {
	if cached, ok := st.rendered[subjectURI]; ok {
		return cached, nil
	}

	tag := containerTag(st.containers[subjectURI])
	var b strings.Builder
	b.WriteString("<rdf:" + tag + ">")
	for _, t := range orderTriples(st.bySubject[subjectURI], true) {
		line, err := st.renderPredicateObject(t)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
	}
	b.WriteString("</rdf:" + tag + ">")

	text := b.String()
	st.rendered[subjectURI] = text
	return text, nil
}

// renderCollectionChildren walks head's rdf:rest chain (reusing
// rdf.WalkCollection, and therefore its cycle guard) and renders each item as
// a standalone rdf:Description, the shape a parseType="Collection" predicate
// element's children take.
func (st *serializeState) renderCollectionChildren(head *rdf.Resource) (string, error) {
	items, err := rdf.WalkCollection(st.collections, head)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range items {
		res, ok := rdf.AsResource(item)
		if !ok {
			return "", fmt.Errorf("rdfxml: non-resource item in a resource-item collection")
		}
		attrName, attrVal := identityAttr(res.URI, "rdf:about")
		fmt.Fprintf(&b, "<rdf:Description %s=\"%s\"/>", attrName, escapeXMLAttribute(attrVal))
	}
	return b.String(), nil
}

// renderPredicateObject renders one triple as a predicate element, resolving
// the object in priority order: embedded container, embedded collection,
// resource reference, plain literal, then typed literal.
func (st *serializeState) renderPredicateObject(t *rdf.Triple) (string, error) {
	elemName, inlineXmlns := st.predicateElementName(t.Predicate.URI)
	xmlnsAttr := ""
	if inlineXmlns != "" {
		xmlnsAttr = fmt.Sprintf(` xmlns="%s"`, escapeXMLAttribute(inlineXmlns))
	}

	if res, ok := rdf.AsResource(t.Object); ok {
		if _, isContainer := st.containers[res.URI]; isContainer && !st.floatingContainers[res.URI] {
			inner, err := st.renderContainerElement(res.URI)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("    <%s%s>%s</%s>\n", elemName, xmlnsAttr, inner, elemName), nil
		}

		if cell, isCollection := st.collections[res.URI]; isCollection &&
			cell.ItemType == rdf.CollectionResource && !st.floatingCollections[res.URI] {
			inner, err := st.renderCollectionChildren(res)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("    <%s%s rdf:parseType=\"Collection\">%s</%s>\n", elemName, xmlnsAttr, inner, elemName), nil
		}

		attrName, attrVal := identityAttr(res.URI, "rdf:resource")
		return fmt.Sprintf("    <%s%s %s=\"%s\"/>\n", elemName, xmlnsAttr, attrName, escapeXMLAttribute(attrVal)), nil
	}

	if pl, ok := t.Object.(*rdf.PlainLiteral); ok {
		langAttr := ""
		if pl.Language != "" {
			langAttr = fmt.Sprintf(` xml:lang="%s"`, escapeXMLAttribute(pl.Language))
		}
		return fmt.Sprintf("    <%s%s%s>%s</%s>\n", elemName, xmlnsAttr, langAttr, escapeXMLText(pl.Value), elemName), nil
	}

	if tl, ok := t.Object.(*rdf.TypedLiteral); ok {
		return fmt.Sprintf("    <%s%s rdf:datatype=\"%s\">%s</%s>\n",
			elemName, xmlnsAttr, escapeXMLAttribute(tl.Datatype.URI()), escapeXMLText(tl.Value), elemName), nil
	}

	return "", fmt.Errorf("rdfxml: unsupported object term %T", t.Object)
}

// predicateElementName resolves predicateURI to an XML element name: a
// registered prefix's "prefix:local", or — when the registry had to
// auto-generate an opaque prefix — the bare local name, optionally with an
// inline xmlns carrying the namespace (suppressed when the namespace equals
// the graph's context, since that's already the ambient default).
func (st *serializeState) predicateElementName(predicateURI string) (elemName, inlineXmlns string) {
	ns, local := splitNamespaceURI(predicateURI)

	prefix, ok := st.registry.LookupURI(ns)
	if !ok {
		prefix = st.registry.PrefixFor(ns)
	}

	if strings.HasPrefix(prefix, rdf.AutoNS) {
		if ns == st.graph.Context.String() {
			return local, ""
		}
		return local, ns
	}
	return prefix + ":" + local, ""
}

// splitNamespaceURI splits a full URI at its last '#' or '/' into a
// namespace (including the separator) and a local name, stripping any stray
// leading ':', '#' or '/' artifacts from the local part.
func splitNamespaceURI(uri string) (ns, local string) {
	idx := strings.LastIndexAny(uri, "#/")
	if idx < 0 {
		return uri, ""
	}
	return uri[:idx+1], strings.TrimLeft(uri[idx+1:], ":#/")
}

// identityAttr picks the rdf:nodeID/rdf:about or rdf:nodeID/rdf:resource
// attribute pair for a subject or object URI, stripping the bnode: prefix
// for blank nodes.
func identityAttr(uri, nonBlankAttr string) (name, value string) {
	if strings.HasPrefix(uri, bnodePrefix) {
		return "rdf:nodeID", strings.TrimPrefix(uri, bnodePrefix)
	}
	return nonBlankAttr, uri
}

// orderTriples returns triples in emission order: rdf:_N container member
// predicates numerically, any other predicate alphabetically (multi-valued
// predicates ordered by object string for determinism), with rdf:type
// dropped when isContainerElement is true (its meaning is already implied
// by the container element's own local name) and otherwise emitted first.
func orderTriples(triples []*rdf.Triple, isContainerElement bool) []*rdf.Triple {
	var typeTriples, rest []*rdf.Triple
	for _, t := range triples {
		if t.Predicate.URI == rdf.RDFType {
			if isContainerElement {
				continue
			}
			typeTriples = append(typeTriples, t)
			continue
		}
		rest = append(rest, t)
	}

	sort.SliceStable(rest, func(i, j int) bool {
		ni, oki := containerMemberIndex(rest[i].Predicate.URI)
		nj, okj := containerMemberIndex(rest[j].Predicate.URI)
		if oki && okj {
			return ni < nj
		}
		if oki != okj {
			return oki
		}
		if rest[i].Predicate.URI != rest[j].Predicate.URI {
			return rest[i].Predicate.URI < rest[j].Predicate.URI
		}
		return rest[i].Object.String() < rest[j].Object.String()
	})

	return append(typeTriples, rest...)
}

// containerMemberIndex extracts N from an rdf:_N predicate URI.
func containerMemberIndex(predicateURI string) (int, bool) {
	if !strings.HasPrefix(predicateURI, rdfNS+"_") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(predicateURI, rdfNS+"_"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func containerTag(kind rdf.ContainerKind) string {
	switch kind {
	case rdf.Seq:
		return "Seq"
	case rdf.Alt:
		return "Alt"
	default:
		return "Bag"
	}
}

func escapeXMLText(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for _, r := range text {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func escapeXMLAttribute(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for _, r := range text {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
