package rdfxml

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/twinfer/rdfdescribe/rdf"
)

// Deserializer parses an RDF/XML document into an rdf.Graph. It loads the
// full document into a DOM tree and walks that rather than driving off a
// streaming token callback, trading peak memory for simpler recursive
// descent over the element nesting RDF/XML produces.
type Deserializer struct {
	registry *rdf.NamespaceRegistry
}

// NewDeserializer constructs a Deserializer bound to registry.
func NewDeserializer(registry *rdf.NamespaceRegistry) *Deserializer {
	return &Deserializer{registry: registry}
}

// Deserialize reads a complete RDF/XML document from r and returns the graph
// it describes. defaultContext is the fallback base IRI used when the
// document declares neither xml:base nor a default xmlns on its root. Any
// malformed node raises a wrapped error; triples already added to the
// returned graph are the caller's to discard. Deserialize never closes r —
// callers using an io.ReadCloser are expected to close it themselves after
// this call returns, on both the success and error paths.
func (d *Deserializer) Deserialize(r io.Reader, defaultContext *rdf.Resource) (*rdf.Graph, error) {
	root, err := parseDOM(r)
	if err != nil {
		return nil, fmt.Errorf("rdfxml: %w", err)
	}
	if !isRDFRoot(root) {
		return nil, fmt.Errorf("rdfxml: expected root element rdf:RDF (or bare RDF), got %q", root.Local)
	}

	d.registerNamespaces(root)

	xmlBase := defaultContext.String()
	if base, ok := root.attr("xml", "base"); ok {
		xmlBase = base
	} else if def, ok := root.attr("", "xmlns"); ok {
		xmlBase = def
	}

	ctxRes, err := rdf.NewResource(xmlBase)
	if err != nil {
		return nil, fmt.Errorf("rdfxml: invalid base IRI %q: %w", xmlBase, err)
	}

	g := rdf.NewGraph(ctxRes, d.registry)
	for _, child := range root.Children {
		if err := d.processSubjectElement(g, child, xmlBase); err != nil {
			return nil, fmt.Errorf("rdfxml: %w", err)
		}
	}
	return g, nil
}

func isRDFRoot(root *node) bool {
	return root.Local == "RDF" && (root.Space == rdfNS || root.Space == "")
}

// registerNamespaces records every xmlns:prefix declaration on the root
// element into the registry.
func (d *Deserializer) registerNamespaces(root *node) {
	for _, a := range root.Attr {
		if a.Name.Space == "xmlns" {
			d.registry.Register(a.Name.Local, a.Value)
		}
	}
}

// processSubjectElement resolves el's identity, emits its implicit rdf:type
// triple when its element name isn't rdf:Description, then walks its
// children as predicates.
func (d *Deserializer) processSubjectElement(g *rdf.Graph, el *node, xmlBase string) error {
	subject, hasIdentity, err := resolveSubjectIdentity(el, xmlBase)
	if err != nil {
		return err
	}

	isDescription := el.Local == "Description" && (el.Space == rdfNS || el.Space == "")
	if !hasIdentity {
		if !isDescription {
			return nil
		}
		subject = rdf.NewAnonBlankNode()
	}

	if !isDescription {
		typeRes, err := rdf.NewResource(el.Space + el.Local)
		if err != nil {
			return err
		}
		g.AddTriple(subject, mustRes(rdf.RDFType), typeRes)
	}

	for _, pel := range el.Children {
		if err := d.processPredicate(g, subject, pel, xmlBase); err != nil {
			return err
		}
	}
	return nil
}

// resolveSubjectIdentity tries rdf:about, about, rdf:nodeID, nodeID, rdf:ID,
// ID in that order.
func resolveSubjectIdentity(el *node, xmlBase string) (*rdf.Resource, bool, error) {
	if v, ok := el.attr(rdfNS, "about"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := el.attr("", "about"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := el.attr(rdfNS, "nodeID"); ok {
		return rdf.NewBlankNode(v), true, nil
	}
	if v, ok := el.attr("", "nodeID"); ok {
		return rdf.NewBlankNode(v), true, nil
	}
	if v, ok := el.attr(rdfNS, "ID"); ok {
		r, err := rdf.NewResource(xmlBase + v)
		return r, true, err
	}
	if v, ok := el.attr("", "ID"); ok {
		r, err := rdf.NewResource(xmlBase + v)
		return r, true, err
	}
	return nil, false, nil
}

func resolveAboutResource(val, xmlBase string) (*rdf.Resource, bool, error) {
	uri := val
	if !isAbsoluteURI(val) {
		resolved, err := resolveRelative(val, xmlBase)
		if err != nil {
			return nil, false, err
		}
		uri = resolved
	}
	r, err := rdf.NewResource(uri)
	return r, true, err
}

// processPredicate resolves pel's object by trying each predicate-element
// form in turn — resource reference, rdf:datatype, rdf:parseType="Literal",
// xml:lang/plain text, rdf:parseType="Collection", then a bare container
// child — and adds the resulting triple(s) to g.
func (d *Deserializer) processPredicate(g *rdf.Graph, subject *rdf.Resource, pel *node, xmlBase string) error {
	predURI := d.resolvePredicateURI(pel, xmlBase)
	predRes, err := rdf.NewResource(predURI)
	if err != nil {
		return err
	}

	// 1. resource reference attributes.
	if term, ok, err := resolveResourceRefAttrs(pel, xmlBase); err != nil {
		return err
	} else if ok {
		g.AddTriple(subject, predRes, term)
		return nil
	}

	// 2. rdf:datatype.
	if dtURI, ok := pel.attr(rdfNS, "datatype"); ok {
		dt, ok := rdf.DatatypeFromURI(dtURI)
		if !ok {
			parsed, err := rdf.ParseDatatype(dtURI)
			if err != nil {
				return err
			}
			dt = parsed
		}
		g.AddTriple(subject, predRes, rdf.NewTypedLiteral(pel.Text, dt))
		return nil
	}

	// 3. rdf:parseType="Literal".
	if pt, ok := pel.attr(rdfNS, "parseType"); ok && pt == "Literal" {
		g.AddTriple(subject, predRes, rdf.NewTypedLiteral(innerXML(pel), rdf.RDFSLiteral))
		return nil
	}

	// 4. xml:lang, or a sole text child.
	if lang, ok := pel.attr("xml", "lang"); ok {
		g.AddTriple(subject, predRes, rdf.NewPlainLiteral(pel.Text, lang))
		return nil
	}
	if text, ok := pel.soleTextChild(); ok {
		g.AddTriple(subject, predRes, rdf.NewPlainLiteral(text, ""))
		return nil
	}

	// 5. rdf:parseType="Collection".
	if pt, ok := pel.attr(rdfNS, "parseType"); ok && pt == "Collection" {
		return d.expandCollection(g, subject, predRes, pel, xmlBase)
	}

	// 6. a bare or prefixed rdf:Bag|Seq|Alt child with no attributes.
	if len(pel.Children) == 1 {
		if kindURI, ok := containerKindURIFromElement(pel.Children[0]); ok && len(pel.Children[0].Attr) == 0 {
			return d.expandContainer(g, subject, predRes, pel.Children[0], kindURI, xmlBase)
		}
	}

	return fmt.Errorf("could not resolve an object for predicate %s", predURI)
}

// resolveResourceRefAttrs tries rdf:about, about, rdf:resource, resource,
// rdf:nodeID, nodeID in that order — the highest-priority object form, also
// reused to resolve collection/container item values.
func resolveResourceRefAttrs(pel *node, xmlBase string) (rdf.Term, bool, error) {
	if v, ok := pel.attr(rdfNS, "about"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := pel.attr("", "about"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := pel.attr(rdfNS, "resource"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := pel.attr("", "resource"); ok {
		return resolveAboutResource(v, xmlBase)
	}
	if v, ok := pel.attr(rdfNS, "nodeID"); ok {
		return rdf.NewBlankNode(v), true, nil
	}
	if v, ok := pel.attr("", "nodeID"); ok {
		return rdf.NewBlankNode(v), true, nil
	}
	return nil, false, nil
}

// resolveItemTerm resolves one collection/container item element to a Term,
// trying a resource reference first and falling back to a literal form —
// items follow the same object grammar as ordinary predicate elements.
func resolveItemTerm(item *node, xmlBase string) (rdf.Term, error) {
	if term, ok, err := resolveResourceRefAttrs(item, xmlBase); err != nil {
		return nil, err
	} else if ok {
		return term, nil
	}
	if dtURI, ok := item.attr(rdfNS, "datatype"); ok {
		dt, ok := rdf.DatatypeFromURI(dtURI)
		if !ok {
			parsed, err := rdf.ParseDatatype(dtURI)
			if err != nil {
				return nil, err
			}
			dt = parsed
		}
		return rdf.NewTypedLiteral(item.Text, dt), nil
	}
	if lang, ok := item.attr("xml", "lang"); ok {
		return rdf.NewPlainLiteral(item.Text, lang), nil
	}
	if text, ok := item.soleTextChild(); ok {
		return rdf.NewPlainLiteral(text, ""), nil
	}
	return nil, fmt.Errorf("could not resolve collection/container item value")
}

// expandCollection expands an rdf:parseType="Collection" predicate element:
// the predicate's object is a fresh blank cons-cell, chained through
// rdf:first/rdf:rest to rdf:nil, one cell per child element of pel.
func (d *Deserializer) expandCollection(g *rdf.Graph, subject, predRes *rdf.Resource, pel *node, xmlBase string) error {
	items := pel.Children
	if len(items) == 0 {
		g.AddTriple(subject, predRes, mustRes(rdf.RDFNil))
		return nil
	}

	cells := make([]*rdf.Resource, len(items))
	for i := range items {
		cells[i] = rdf.NewAnonBlankNode()
	}
	g.AddTriple(subject, predRes, cells[0])

	for i, item := range items {
		term, err := resolveItemTerm(item, xmlBase)
		if err != nil {
			return err
		}
		g.AddTriple(cells[i], mustRes(rdf.RDFType), mustRes(rdf.RDFList))
		g.AddTriple(cells[i], mustRes(rdf.RDFFirst), term)

		next := mustRes(rdf.RDFNil)
		if i+1 < len(cells) {
			next = cells[i+1]
		}
		g.AddTriple(cells[i], mustRes(rdf.RDFRest), next)
	}
	return nil
}

// expandContainer expands a bare rdf:Bag/Seq/Alt child element: a fresh
// blank node typed rdf:Bag|Seq|Alt, with one rdf:_i triple per child item
// element (local name must be rdf:_i); Alt items are de-duplicated by
// stringified value.
func (d *Deserializer) expandContainer(g *rdf.Graph, subject, predRes *rdf.Resource, containerEl *node, kindURI, xmlBase string) error {
	b := rdf.NewAnonBlankNode()
	g.AddTriple(subject, predRes, b)

	kindRes, err := rdf.NewResource(kindURI)
	if err != nil {
		return err
	}
	g.AddTriple(b, mustRes(rdf.RDFType), kindRes)

	seen := map[string]bool{}
	for _, item := range containerEl.Children {
		if !strings.HasPrefix(item.Local, "_") {
			return fmt.Errorf("container item element local name must be rdf:_i, got %q", item.Local)
		}
		if _, err := strconv.Atoi(strings.TrimPrefix(item.Local, "_")); err != nil {
			return fmt.Errorf("container item element local name must be rdf:_i, got %q", item.Local)
		}

		term, err := resolveItemTerm(item, xmlBase)
		if err != nil {
			return err
		}
		if kindURI == rdf.RDFAlt {
			key := term.String()
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		memberRes, err := rdf.NewResource(rdfNS + item.Local)
		if err != nil {
			return err
		}
		g.AddTriple(b, memberRes, term)
	}
	return nil
}

func containerKindURIFromElement(el *node) (string, bool) {
	switch el.Local {
	case "Bag":
		return rdf.RDFBag, true
	case "Seq":
		return rdf.RDFSeq, true
	case "Alt":
		return rdf.RDFAlt, true
	default:
		return "", false
	}
}

// resolvePredicateURI computes namespaceURI+localName, with two special
// cases: a localName beginning with autoNS reverses the serializer's
// sanitization (namespace URI alone is used), and an empty namespace URI is
// resolved against xmlBase.
func (d *Deserializer) resolvePredicateURI(pel *node, xmlBase string) string {
	if strings.HasPrefix(pel.Local, rdf.AutoNS) {
		return pel.Space
	}
	ns := pel.Space
	if ns == "" {
		ns = xmlBase
	}
	return ns + pel.Local
}

func resolveRelative(val, xmlBase string) (string, error) {
	base, err := url.Parse(xmlBase)
	if err != nil {
		return "", fmt.Errorf("invalid base IRI %q: %w", xmlBase, err)
	}
	ref, err := url.Parse(val)
	if err != nil {
		return "", fmt.Errorf("invalid relative reference %q: %w", val, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func isAbsoluteURI(val string) bool {
	u, err := url.Parse(val)
	return err == nil && u.IsAbs()
}

// innerXML best-effort reconstructs pel's children as XML text for
// rdf:parseType="Literal". Attribute and element namespace prefixes are not
// round-tripped byte-for-byte; only well-formed reconstruction of structure
// and text is guaranteed.
func innerXML(pel *node) string {
	var b strings.Builder
	b.WriteString(pel.Text)
	for _, c := range pel.Children {
		writeNodeXML(&b, c)
	}
	return b.String()
}

func writeNodeXML(b *strings.Builder, n *node) {
	name := n.Local
	fmt.Fprintf(b, "<%s", name)
	for _, a := range n.Attr {
		fmt.Fprintf(b, " %s=\"%s\"", a.Name.Local, escapeXMLAttribute(a.Value))
	}
	if len(n.Children) == 0 && n.Text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.WriteString(innerXML(n))
	fmt.Fprintf(b, "</%s>", name)
}

func mustRes(uri string) *rdf.Resource {
	r, err := rdf.NewResource(uri)
	if err != nil {
		panic(err)
	}
	return r
}
