package rdfxml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// node is a minimal in-memory DOM element, built once from a whole
// document: the token loop below fully materializes a tree rather than
// invoking a per-element callback, so the rest of the package can walk and
// backtrack over the parsed structure freely.
type node struct {
	Space, Local string
	Attr         []xml.Attr
	Children     []*node
	Text         string
	Parent       *node
}

// xmlNamespace is the namespace encoding/xml reports for xml:-prefixed
// attributes such as xml:base and xml:lang.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// attr returns the value of the attribute with the exact (space, local) name
// — space "" means an unprefixed attribute, not a wildcard, and space "xml"
// names the xml: attributes. Callers wanting "rdf:about or bare about" try
// both explicitly, one attr call per form.
func (n *node) attr(space, local string) (string, bool) {
	if space == "xml" {
		space = xmlNamespace
	}
	for _, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == space {
			return a.Value, true
		}
	}
	return "", false
}

// soleTextChild reports whether n has no element children, in which case its
// (possibly empty) text content is its literal value.
func (n *node) soleTextChild() (string, bool) {
	if len(n.Children) != 0 {
		return "", false
	}
	return n.Text, true
}

// parseDOM decodes r in full into a tree rooted at the document element,
// driving an xml.Decoder.Token loop but building a complete tree up front
// instead of invoking a streaming callback per element.
func parseDOM(r io.Reader) (*node, error) {
	dec := xml.NewDecoder(r)

	var root *node
	var current *node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rdfxml: xml token error: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{Space: t.Name.Space, Local: t.Name.Local, Attr: t.Attr, Parent: current}
			if current == nil {
				root = n
			} else {
				current.Children = append(current.Children, n)
			}
			current = n

		case xml.EndElement:
			if current == nil {
				return nil, fmt.Errorf("rdfxml: unbalanced end element %s", t.Name.Local)
			}
			current = current.Parent

		case xml.CharData:
			if current != nil {
				current.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("rdfxml: empty document")
	}
	return root, nil
}
