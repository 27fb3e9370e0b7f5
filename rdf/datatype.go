package rdf

import (
	"strconv"
	"strings"
	"text/scanner"
)

// Datatype is a closed enumeration of the typed-literal datatypes this
// module understands: the xsd numeric/string/boolean/date family plus
// rdfs:Literal.
type Datatype int

// The closed datatype enumeration. Round-trippable: URI() and
// ParseDatatype are inverses over this set.
const (
	XSDString Datatype = iota
	XSDBoolean
	XSDInteger
	XSDDecimal
	XSDDouble
	XSDFloat
	XSDDate
	XSDDateTime
	XSDTime
	XSDAnyURI
	RDFSLiteral
)

const (
	xsdNS  = "http://www.w3.org/2001/XMLSchema#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"
)

var datatypeURIs = map[Datatype]string{
	XSDString:   xsdNS + "string",
	XSDBoolean:  xsdNS + "boolean",
	XSDInteger:  xsdNS + "integer",
	XSDDecimal:  xsdNS + "decimal",
	XSDDouble:   xsdNS + "double",
	XSDFloat:    xsdNS + "float",
	XSDDate:     xsdNS + "date",
	XSDDateTime: xsdNS + "dateTime",
	XSDTime:     xsdNS + "time",
	XSDAnyURI:   xsdNS + "anyURI",
	RDFSLiteral: rdfsNS + "Literal",
}

var uriToDatatype = func() map[string]Datatype {
	m := make(map[string]Datatype, len(datatypeURIs))
	for dt, uri := range datatypeURIs {
		m[uri] = dt
	}
	return m
}()

// URI returns the datatype's full URI.
func (d Datatype) URI() string {
	return datatypeURIs[d]
}

// DatatypeFromURI resolves a full datatype URI to its enum value.
func DatatypeFromURI(uri string) (Datatype, bool) {
	dt, ok := uriToDatatype[uri]
	return dt, ok
}

// ParseDatatype parses a datatype reference given as a CURIE ("xsd:integer",
// "rdfs:Literal") or a bare absolute URI, returning the matching enum value.
// It is a small tokenize-then-switch scan over a text/scanner.Scanner.
func ParseDatatype(s string) (Datatype, error) {
	if dt, ok := uriToDatatype[s]; ok {
		return dt, nil
	}

	var sc scanner.Scanner
	sc.Init(strings.NewReader(s))
	sc.Mode = scanner.ScanIdents
	sc.IsIdentRune = func(ch rune, i int) bool {
		return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == ':' || ch == '_'
	}

	tok := sc.Scan()
	if tok != scanner.Ident {
		return 0, &ModelError{Msg: "not a datatype CURIE or URI: " + strconv.Quote(s)}
	}
	text := sc.TokenText()

	switch text {
	case "xsd:string":
		return XSDString, nil
	case "xsd:boolean":
		return XSDBoolean, nil
	case "xsd:integer":
		return XSDInteger, nil
	case "xsd:decimal":
		return XSDDecimal, nil
	case "xsd:double":
		return XSDDouble, nil
	case "xsd:float":
		return XSDFloat, nil
	case "xsd:date":
		return XSDDate, nil
	case "xsd:dateTime":
		return XSDDateTime, nil
	case "xsd:time":
		return XSDTime, nil
	case "xsd:anyURI":
		return XSDAnyURI, nil
	case "rdfs:Literal":
		return RDFSLiteral, nil
	default:
		return 0, &ModelError{Msg: "unknown datatype CURIE: " + text}
	}
}
