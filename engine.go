package rdfdescribe

import (
	"bitbucket.org/creachadair/stringset"

	"github.com/twinfer/rdfdescribe/rdf"
)

// dataSource abstracts the thing an Engine queries: a single in-memory
// Graph, a Store, or a FederationStore. One small interface here lets
// Engine.apply implement the pipeline exactly once instead of once per
// backend.
type dataSource interface {
	// evaluatePattern returns one DataTable row per match of p against the
	// source, columns named by p's variables.
	evaluatePattern(p *Pattern) (*DataTable, error)
	// describeTriples returns every triple where t is the subject or the
	// object.
	describeTriples(t rdf.Term) ([]*rdf.Triple, error)
}

// graphSource evaluates a DescribeQuery against a single in-memory rdf.Graph.
type graphSource struct{ g *rdf.Graph }

func (s graphSource) evaluatePattern(p *Pattern) (*DataTable, error) {
	return evaluatePatternOverTriples(p, s.g.All())
}

func (s graphSource) describeTriples(t rdf.Term) ([]*rdf.Triple, error) {
	var out []*rdf.Triple
	for _, tr := range s.g.All() {
		if tr.Subject.Equal(t) || tr.Object.Equal(t) {
			out = append(out, tr)
		}
	}
	return out, nil
}

// storeSource evaluates a DescribeQuery against a Store, translating ground
// pattern slots into SelectQuadruples calls.
type storeSource struct{ s Store }

func (s storeSource) evaluatePattern(p *Pattern) (*DataTable, error) {
	var ctx, subj, pred *rdf.Resource
	var obj rdf.Term
	if p.Context != nil && !p.Context.IsVariable() {
		ctx, _ = rdf.AsResource(p.Context.Term)
	}
	if !p.Subject.IsVariable() {
		subj, _ = rdf.AsResource(p.Subject.Term)
	}
	if !p.Predicate.IsVariable() {
		pred, _ = rdf.AsResource(p.Predicate.Term)
	}
	if !p.Object.IsVariable() {
		obj = p.Object.Term
	}

	quads, err := s.s.SelectQuadruples(ctx, subj, pred, obj)
	if err != nil {
		return nil, err
	}
	triples := make([]*rdf.Triple, len(quads))
	for i, q := range quads {
		triples[i] = q.Triple()
	}
	return evaluatePatternOverTriples(p, triples)
}

func (s storeSource) describeTriples(t rdf.Term) ([]*rdf.Triple, error) {
	var seen []*rdf.Triple
	if r, ok := rdf.AsResource(t); ok {
		bySubj, err := s.s.SelectQuadruples(nil, r, nil, nil)
		if err != nil {
			return nil, err
		}
		for _, q := range bySubj {
			seen = append(seen, q.Triple())
		}
	}
	byObj, err := s.s.SelectQuadruples(nil, nil, nil, t)
	if err != nil {
		return nil, err
	}
	for _, q := range byObj {
		seen = append(seen, q.Triple())
	}
	return seen, nil
}

// federationSource evaluates a DescribeQuery against a FederationStore by
// delegating to a storeSource per member and unioning the results.
type federationSource struct{ f *FederationStore }

func (s federationSource) evaluatePattern(p *Pattern) (*DataTable, error) {
	var table *DataTable
	for _, member := range s.f.Members {
		t, err := (storeSource{member}).evaluatePattern(p)
		if err != nil {
			return nil, err
		}
		if table == nil {
			table = t
			continue
		}
		table = table.Union(t)
	}
	if table == nil {
		table = NewDataTable()
	}
	return table, nil
}

func (s federationSource) describeTriples(t rdf.Term) ([]*rdf.Triple, error) {
	var out []*rdf.Triple
	for _, member := range s.f.Members {
		triples, err := (storeSource{member}).describeTriples(t)
		if err != nil {
			return nil, err
		}
		out = append(out, triples...)
	}
	return out, nil
}

// evaluatePatternOverTriples matches p against triples in-process, the
// evaluation strategy graphSource always uses and storeSource/
// federationSource use once SelectQuadruples has narrowed the candidate set
// by its ground slots.
func evaluatePatternOverTriples(p *Pattern, triples []*rdf.Triple) (*DataTable, error) {
	table := NewDataTable(p.Variables()...)
	for _, t := range triples {
		row, ok := matchPattern(p, t)
		if ok {
			table.AddRow(row)
		}
	}
	return table, nil
}

func matchPattern(p *Pattern, t *rdf.Triple) (Row, bool) {
	row := Row{}
	bind := func(slot PatternSlot, term rdf.Term) bool {
		if !slot.IsVariable() {
			return slot.Term.Equal(term)
		}
		if existing, ok := row[slot.Var.Name]; ok {
			return existing.Equal(term)
		}
		row[slot.Var.Name] = term
		return true
	}
	if !bind(p.Subject, t.Subject) {
		return nil, false
	}
	if !bind(p.Predicate, t.Predicate) {
		return nil, false
	}
	if !bind(p.Object, t.Object) {
		return nil, false
	}
	return row, true
}

// engineConfig holds Engine construction options.
type engineConfig struct {
	rowLimit int // 0 means unlimited
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*engineConfig)

// WithRowLimit caps the number of rows of the joined query table (all
// pattern groups combined, before description), a safety valve against
// runaway cross products on ungrounded pattern groups; a query whose joined
// table exceeds it fails with a QueryError. Per-pattern and per-group tables
// are not checked on their own. Zero (the default) means unlimited.
func WithRowLimit(n int) EngineOption {
	return func(c *engineConfig) { c.rowLimit = n }
}

// Engine runs the DESCRIBE pipeline against a data source. It is stateless
// between calls to ApplyToGraph/ApplyToStore/ApplyToFederation — there is no
// cached query plan or warm state to reuse across queries, so queries may
// run concurrently over the same Engine value.
type Engine struct {
	cfg engineConfig
}

// NewEngine constructs an Engine with the given options applied.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

// DescribeQueryResult is the outcome of running a DescribeQuery: the
// resulting graph-shaped triple table plus the query's rendered text form,
// useful for logging or caching keyed by query shape.
type DescribeQueryResult struct {
	QueryText       string
	DescribeResults *DataTable
}

// ApplyToGraph runs q against a single in-memory graph.
func (e *Engine) ApplyToGraph(q *DescribeQuery, g *rdf.Graph) (*DescribeQueryResult, error) {
	if g == nil {
		return nil, &QueryError{Msg: "graph source is nil"}
	}
	return e.apply(q, graphSource{g})
}

// ApplyToStore runs q against a Store backend.
func (e *Engine) ApplyToStore(q *DescribeQuery, s Store) (*DescribeQueryResult, error) {
	if s == nil {
		return nil, &QueryError{Msg: "store source is nil"}
	}
	return e.apply(q, storeSource{s})
}

// ApplyToFederation runs q against a federation of stores.
func (e *Engine) ApplyToFederation(q *DescribeQuery, f *FederationStore) (*DescribeQueryResult, error) {
	if f == nil || len(f.Members) == 0 {
		return nil, &QueryError{Msg: "federation source is nil or empty"}
	}
	return e.apply(q, federationSource{f})
}

// apply implements the DESCRIBE pipeline: evaluate each group's patterns,
// combine and filter within the group, join groups across union/natural-join
// boundaries, describe the resulting terms, then apply Limit/Offset
// modifiers.
func (e *Engine) apply(q *DescribeQuery, src dataSource) (*DescribeQueryResult, error) {
	if q == nil {
		return nil, &QueryError{Msg: "query is nil"}
	}

	var queryTable *DataTable
	if !q.IsEmpty() {
		groupTables := make([]*DataTable, len(q.Groups))
		for i, g := range q.Groups {
			t, err := e.evaluateGroup(g, src)
			if err != nil {
				return nil, err
			}
			groupTables[i] = t
		}
		queryTable = joinGroups(q.Groups, groupTables)
		if e.cfg.rowLimit > 0 && len(queryTable.Rows) > e.cfg.rowLimit {
			return nil, &QueryError{Msg: "intermediate result exceeds configured row limit"}
		}
	}

	terms, err := collectDescribeTerms(q, queryTable)
	if err != nil {
		return nil, err
	}

	seen := stringset.New()
	describeTable := NewDataTable("?subject", "?predicate", "?object")
	for _, term := range terms {
		triples, err := src.describeTriples(term)
		if err != nil {
			return nil, err
		}
		for _, t := range triples {
			key := t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
			if seen.Contains(key) {
				continue
			}
			seen.Add(key)
			describeTable.AddRow(Row{
				"?subject":   t.Subject,
				"?predicate": t.Predicate,
				"?object":    t.Object,
			})
		}
	}

	describeTable = q.applyModifiers(describeTable)

	return &DescribeQueryResult{
		QueryText:       q.String(),
		DescribeResults: describeTable,
	}, nil
}

// evaluateGroup evaluates each pattern in g, natural-joins the results
// across the group's own patterns, then applies the group's filters.
func (e *Engine) evaluateGroup(g *PatternGroup, src dataSource) (*DataTable, error) {
	var table *DataTable
	for _, p := range g.Patterns {
		t, err := src.evaluatePattern(p)
		if err != nil {
			return nil, err
		}
		if table == nil {
			table = t
			continue
		}
		table = table.NaturalJoin(t)
	}
	if table == nil {
		table = NewDataTable()
	}
	for _, f := range g.Filters {
		table = table.ApplyFilter(f)
	}
	return table, nil
}

// joinGroups combines per-group tables left to right: a group marked
// JoinAsUnion unions with the group after it, so a contiguous run of marked
// groups plus the group that follows the run form one union block (the same
// block DescribeQuery.String wraps in braces), which then natural-joins with
// whatever precedes or follows it.
func joinGroups(groups []*PatternGroup, tables []*DataTable) *DataTable {
	if len(groups) == 0 {
		return NewDataTable()
	}

	var result *DataTable
	i := 0
	for i < len(groups) {
		if groups[i].JoinAsUnion {
			block := tables[i]
			for i < len(groups) && groups[i].JoinAsUnion {
				i++
				if i >= len(groups) {
					break
				}
				block = block.Union(tables[i])
			}
			i++
			if result == nil {
				result = block
			} else {
				result = result.NaturalJoin(block)
			}
			continue
		}
		if result == nil {
			result = tables[i]
		} else {
			result = result.NaturalJoin(tables[i])
		}
		i++
	}
	return result
}

// collectDescribeTerms gathers the terms to describe, including the
// empty-query edge case: an empty query (no groups) with explicit Resource
// describe terms skips straight to those resources; an empty query with
// DESCRIBE * yields no terms at all (nothing to describe).
func collectDescribeTerms(q *DescribeQuery, queryTable *DataTable) ([]rdf.Term, error) {
	if q.IsEmpty() {
		if q.IsStar() {
			return nil, nil
		}
		var terms []rdf.Term
		seen := stringset.New()
		for _, dt := range q.DescribeTerms {
			if dt.Resource == nil {
				continue
			}
			key := dt.Resource.String()
			if seen.Contains(key) {
				continue
			}
			seen.Add(key)
			terms = append(terms, dt.Resource)
		}
		return terms, nil
	}

	if q.IsStar() {
		return queryTable.AllDistinctValues(), nil
	}

	var terms []rdf.Term
	seen := stringset.New()
	add := func(t rdf.Term) {
		key := t.String()
		if seen.Contains(key) {
			return
		}
		seen.Add(key)
		terms = append(terms, t)
	}
	for _, dt := range q.DescribeTerms {
		if dt.Resource != nil {
			add(dt.Resource)
			continue
		}
		for _, v := range queryTable.DistinctValues(dt.Variable.Name) {
			add(v)
		}
	}
	return terms, nil
}
