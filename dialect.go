package rdfdescribe

import (
	"fmt"
	"strings"
)

// dialect generates database-specific SQL for the quadruples table.
// sqliteDialect and postgresDialect are each a complete, compiler-checked
// implementation — every method SQLStore calls is declared here, so a
// dialect can never be missing one at the call site.
type dialect interface {
	// createTableSQL returns the SQL for creating the quadruples table.
	createTableSQL() string
	// createIndexSQL returns the SQL for every index the quadruples table
	// needs for its common lookup patterns.
	createIndexSQL() []string
	// upsertSQL returns the parameterized single-row INSERT...ON CONFLICT DO
	// NOTHING statement, columns in the fixed order quadrupleColumns declares.
	upsertSQL() string
	// batchUpsertSQL returns a multi-row INSERT...ON CONFLICT DO NOTHING
	// statement for n rows, same column order as upsertSQL.
	batchUpsertSQL(n int) string
	// placeholder returns the positional parameter syntax for the n-th
	// parameter (1-based) in a query built outside upsertSQL/batchUpsertSQL.
	placeholder(n int) string
}

// quadrupleColumns is the fixed column order every dialect's upsertSQL/
// batchUpsertSQL must follow.
var quadrupleColumns = []string{
	"quadruple_id", "flavor", "context", "context_id",
	"subject", "subject_id", "predicate", "predicate_id", "object", "object_id",
}

// --- SQLite dialect ---

type sqliteDialect struct{}

func (sqliteDialect) createTableSQL() string {
	return `
		CREATE TABLE IF NOT EXISTS quadruples (
			quadruple_id  INTEGER PRIMARY KEY,
			flavor        INTEGER NOT NULL,
			context       TEXT NOT NULL,
			context_id    INTEGER NOT NULL,
			subject       TEXT NOT NULL,
			subject_id    INTEGER NOT NULL,
			predicate     TEXT NOT NULL,
			predicate_id  INTEGER NOT NULL,
			object        TEXT NOT NULL,
			object_id     INTEGER NOT NULL
		);
	`
}

func (sqliteDialect) createIndexSQL() []string { return quadrupleIndexStatements() }

func (sqliteDialect) upsertSQL() string {
	return `
		INSERT INTO quadruples (quadruple_id, flavor, context, context_id, subject, subject_id, predicate, predicate_id, object, object_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`
}

func (sqliteDialect) batchUpsertSQL(n int) string {
	return batchUpsertSQLWithPlaceholders(n, func(int) string { return "?" }, "ON CONFLICT DO NOTHING")
}

func (sqliteDialect) placeholder(int) string { return "?" }

// --- PostgreSQL dialect ---

type postgresDialect struct{}

func (postgresDialect) createTableSQL() string {
	return `
		CREATE TABLE IF NOT EXISTS quadruples (
			quadruple_id  BIGINT PRIMARY KEY,
			flavor        INTEGER NOT NULL,
			context       TEXT NOT NULL,
			context_id    BIGINT NOT NULL,
			subject       TEXT NOT NULL,
			subject_id    BIGINT NOT NULL,
			predicate     TEXT NOT NULL,
			predicate_id  BIGINT NOT NULL,
			object        TEXT NOT NULL,
			object_id     BIGINT NOT NULL
		);
	`
}

func (postgresDialect) createIndexSQL() []string { return quadrupleIndexStatements() }

func (postgresDialect) upsertSQL() string {
	return `
		INSERT INTO quadruples (quadruple_id, flavor, context, context_id, subject, subject_id, predicate, predicate_id, object, object_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (quadruple_id) DO NOTHING
	`
}

func (postgresDialect) batchUpsertSQL(n int) string {
	return batchUpsertSQLWithPlaceholders(n, func(paramIndex int) string {
		return fmt.Sprintf("$%d", paramIndex)
	}, "ON CONFLICT (quadruple_id) DO NOTHING")
}

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

// quadrupleIndexStatements returns the CREATE INDEX statements for the
// single-column and composite indexes the quadruples table relies on:
// ContextID, SubjectID, PredicateID, (ObjectID,Flavor),
// (SubjectID,PredicateID), (SubjectID,ObjectID,Flavor),
// (PredicateID,ObjectID,Flavor).
func quadrupleIndexStatements() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_quad_context ON quadruples(context_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_subject ON quadruples(subject_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_predicate ON quadruples(predicate_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_object_flavor ON quadruples(object_id, flavor);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_subject_predicate ON quadruples(subject_id, predicate_id);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_subject_object_flavor ON quadruples(subject_id, object_id, flavor);`,
		`CREATE INDEX IF NOT EXISTS idx_quad_predicate_object_flavor ON quadruples(predicate_id, object_id, flavor);`,
	}
}

// batchUpsertSQLWithPlaceholders builds a multi-row INSERT statement for n
// rows of the fixed 10-column shape, shared by both dialects' batchUpsertSQL.
func batchUpsertSQLWithPlaceholders(n int, ph func(paramIndex int) string, conflictClause string) string {
	var b strings.Builder
	b.WriteString("INSERT INTO quadruples (")
	b.WriteString(strings.Join(quadrupleColumns, ", "))
	b.WriteString(") VALUES ")
	paramIndex := 1
	for row := 0; row < n; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for col := 0; col < len(quadrupleColumns); col++ {
			if col > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ph(paramIndex))
			paramIndex++
		}
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(conflictClause)
	return b.String()
}
