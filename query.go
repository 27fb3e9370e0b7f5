package rdfdescribe

import (
	"fmt"
	"strings"

	"github.com/twinfer/rdfdescribe/rdf"
)

// DescribeTerm is a term named in a DESCRIBE clause: either a ground
// Resource or a Variable.
type DescribeTerm struct {
	Resource *rdf.Resource
	Variable *Variable
}

// DescribeResource wraps a ground resource as a describe term.
func DescribeResource(r *rdf.Resource) DescribeTerm { return DescribeTerm{Resource: r} }

// DescribeVariable wraps a variable as a describe term.
func DescribeVariable(v Variable) DescribeTerm { return DescribeTerm{Variable: &v} }

func (d DescribeTerm) String() string {
	if d.Variable != nil {
		return d.Variable.Name
	}
	return "<" + d.Resource.URI + ">"
}

// DescribeQuery is a SPARQL DESCRIBE query: describe terms, pattern groups,
// and Limit/Offset modifiers. Setting a modifier twice keeps the first
// value, and adding a group whose name is already present is a no-op.
type DescribeQuery struct {
	DescribeTerms []DescribeTerm
	Groups        []*PatternGroup

	limit  *int
	offset *int
}

// NewDescribeQuery constructs an empty DESCRIBE query (DESCRIBE * with an
// empty WHERE).
func NewDescribeQuery() *DescribeQuery {
	return &DescribeQuery{}
}

// AddDescribeTerm appends t to the query's DESCRIBE clause.
func (q *DescribeQuery) AddDescribeTerm(t DescribeTerm) {
	q.DescribeTerms = append(q.DescribeTerms, t)
}

// AddGroup appends g to the query, unless a group with the same name is
// already present.
func (q *DescribeQuery) AddGroup(g *PatternGroup) {
	for _, existing := range q.Groups {
		if existing.Name == g.Name {
			return
		}
	}
	q.Groups = append(q.Groups, g)
}

// SetLimit sets the LIMIT modifier, ignored if already set.
func (q *DescribeQuery) SetLimit(n int) {
	if q.limit == nil {
		q.limit = &n
	}
}

// SetOffset sets the OFFSET modifier, ignored if already set.
func (q *DescribeQuery) SetOffset(n int) {
	if q.offset == nil {
		q.offset = &n
	}
}

// Limit returns the LIMIT modifier and whether one was set.
func (q *DescribeQuery) Limit() (int, bool) {
	if q.limit == nil {
		return 0, false
	}
	return *q.limit, true
}

// Offset returns the OFFSET modifier and whether one was set.
func (q *DescribeQuery) Offset() (int, bool) {
	if q.offset == nil {
		return 0, false
	}
	return *q.offset, true
}

// IsStar reports whether the DESCRIBE clause is the bare "*" form (no
// explicit describe terms).
func (q *DescribeQuery) IsStar() bool { return len(q.DescribeTerms) == 0 }

// IsEmpty reports whether the query has no pattern groups.
func (q *DescribeQuery) IsEmpty() bool { return len(q.Groups) == 0 }

// applyModifiers applies Limit, then Offset, to t.
func (q *DescribeQuery) applyModifiers(t *DataTable) *DataTable {
	if q.limit != nil {
		t = t.head(*q.limit)
	}
	if q.offset != nil {
		t = t.skip(*q.offset)
	}
	return t
}

// String renders the query as text: "DESCRIBE " (terms | "*") "\nWHERE{\n"
// groups "\n}" then optional "\nLIMIT n" / "\nOFFSET n". Union blocks are
// wrapped "  {" … "  }" with "    UNION" separating members.
func (q *DescribeQuery) String() string {
	var b strings.Builder
	b.WriteString("DESCRIBE ")
	if q.IsStar() {
		b.WriteString("*")
	} else {
		parts := make([]string, len(q.DescribeTerms))
		for i, t := range q.DescribeTerms {
			parts[i] = t.String()
		}
		b.WriteString(strings.Join(parts, " "))
	}
	b.WriteString("\nWHERE{\n")
	b.WriteString(renderGroups(q.Groups))
	b.WriteString("\n}")
	if q.limit != nil {
		fmt.Fprintf(&b, "\nLIMIT %d", *q.limit)
	}
	if q.offset != nil {
		fmt.Fprintf(&b, "\nOFFSET %d", *q.offset)
	}
	return b.String()
}

func renderGroups(groups []*PatternGroup) string {
	var b strings.Builder
	i := 0
	for i < len(groups) {
		g := groups[i]
		if g.JoinAsUnion {
			b.WriteString("  {\n")
			b.WriteString(renderGroupBody(g))
			for i < len(groups) && groups[i].JoinAsUnion {
				i++
				if i >= len(groups) {
					break
				}
				b.WriteString("    UNION\n")
				b.WriteString(renderGroupBody(groups[i]))
			}
			b.WriteString("  }\n")
			i++
		} else {
			b.WriteString(renderGroupBody(g))
			i++
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderGroupBody(g *PatternGroup) string {
	var b strings.Builder
	for _, p := range g.Patterns {
		b.WriteString("    ")
		b.WriteString(p.String())
		b.WriteString(" .\n")
	}
	for _, f := range g.Filters {
		b.WriteString("    FILTER(")
		b.WriteString(f.String())
		b.WriteString(")\n")
	}
	return b.String()
}
