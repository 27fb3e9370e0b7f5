package rdfdescribe

import "github.com/twinfer/rdfdescribe/rdf"

// Row is one binding of a DataTable: column name (e.g. "?s") to bound term.
// A row need not bind every one of its table's columns — natural join and
// union both tolerate partial rows.
type Row map[string]rdf.Term

// DataTable is a `?var`-columned intermediate result table: column-per-
// variable, row-per-binding. The representation is a plain row slice rather
// than a columnar store, since the join/union code below only ever needs
// whole rows.
type DataTable struct {
	Columns []string
	Rows    []Row
}

// NewDataTable constructs an empty table with the given columns.
func NewDataTable(columns ...string) *DataTable {
	return &DataTable{Columns: append([]string(nil), columns...)}
}

// AddRow appends a row to the table.
func (t *DataTable) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// DistinctValues returns every distinct term bound to col across the
// table's rows, in first-seen order.
func (t *DataTable) DistinctValues(col string) []rdf.Term {
	var out []rdf.Term
	seen := map[string]bool{}
	for _, row := range t.Rows {
		v, ok := row[col]
		if !ok {
			continue
		}
		key := v.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// AllDistinctValues returns every distinct term bound to any column, in
// column then first-seen order — used by DESCRIBE *.
func (t *DataTable) AllDistinctValues() []rdf.Term {
	var out []rdf.Term
	seen := map[string]bool{}
	for _, col := range t.Columns {
		for _, v := range t.DistinctValues(col) {
			key := v.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func sharedColumns(a, b []string) []string {
	bSet := make(map[string]bool, len(b))
	for _, c := range b {
		bSet[c] = true
	}
	var shared []string
	for _, c := range a {
		if bSet[c] {
			shared = append(shared, c)
		}
	}
	return shared
}

func mergedColumns(a, b []string) []string {
	out := append([]string(nil), a...)
	seen := make(map[string]bool, len(a))
	for _, c := range a {
		seen[c] = true
	}
	for _, c := range b {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func rowsCompatible(a, b Row, shared []string) bool {
	for _, col := range shared {
		va, aok := a[col]
		vb, bok := b[col]
		if !aok || !bok {
			continue
		}
		if !va.Equal(vb) {
			return false
		}
	}
	return true
}

func mergeRows(a, b Row) Row {
	out := make(Row, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

// NaturalJoin combines t and other on their shared columns: rows whose
// shared-column bindings agree are merged into one row carrying the union
// of both tables' columns. With no shared columns this degenerates to a
// cross product, which is the natural-join definition at its boundary.
func (t *DataTable) NaturalJoin(other *DataTable) *DataTable {
	shared := sharedColumns(t.Columns, other.Columns)
	out := NewDataTable(mergedColumns(t.Columns, other.Columns)...)
	for _, a := range t.Rows {
		for _, b := range other.Rows {
			if rowsCompatible(a, b, shared) {
				out.AddRow(mergeRows(a, b))
			}
		}
	}
	return out
}

// Union appends other's rows to t's, over the combined column set.
func (t *DataTable) Union(other *DataTable) *DataTable {
	out := NewDataTable(mergedColumns(t.Columns, other.Columns)...)
	out.Rows = append(out.Rows, t.Rows...)
	out.Rows = append(out.Rows, other.Rows...)
	return out
}

// ApplyFilter drops every row that fails f, preserving row order.
func (t *DataTable) ApplyFilter(f Filter) *DataTable {
	out := NewDataTable(t.Columns...)
	for _, row := range t.Rows {
		if f.Evaluate(row) {
			out.AddRow(row)
		}
	}
	return out
}

// head returns a table truncated to at most n rows.
func (t *DataTable) head(n int) *DataTable {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	out := NewDataTable(t.Columns...)
	out.Rows = append(out.Rows, t.Rows[:n]...)
	return out
}

// skip returns a table with the first n rows dropped.
func (t *DataTable) skip(n int) *DataTable {
	if n <= 0 {
		return t
	}
	if n >= len(t.Rows) {
		return NewDataTable(t.Columns...)
	}
	out := NewDataTable(t.Columns...)
	out.Rows = append(out.Rows, t.Rows[n:]...)
	return out
}
