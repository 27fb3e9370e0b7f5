package rdfdescribe

import "testing"

func TestSQLiteDialectPlaceholder(t *testing.T) {
	d := sqliteDialect{}
	if got := d.placeholder(3); got != "?" {
		t.Fatalf("expected sqlite placeholder to always be '?', got %q", got)
	}
}

func TestPostgresDialectPlaceholder(t *testing.T) {
	d := postgresDialect{}
	if got := d.placeholder(3); got != "$3" {
		t.Fatalf("expected postgres placeholder $3, got %q", got)
	}
}

func TestBatchUpsertSQLRowCount(t *testing.T) {
	d := sqliteDialect{}
	sql := d.batchUpsertSQL(2)
	// 2 rows * 10 columns = 20 placeholders.
	count := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' {
			count++
		}
	}
	if count != 20 {
		t.Fatalf("expected 20 placeholders for 2 rows of 10 columns, got %d", count)
	}
}

func TestQuadrupleIndexStatementsCoverage(t *testing.T) {
	stmts := quadrupleIndexStatements()
	if len(stmts) != 7 {
		t.Fatalf("expected 7 index statements per the reference schema, got %d", len(stmts))
	}
}
