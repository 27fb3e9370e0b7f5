package rdfdescribe

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-json-experiment/json/jsontext"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/twinfer/rdfdescribe/rdf"
)

// sqlConfig holds configuration options for a SQLStore.
type sqlConfig struct {
	pragmas map[string]string
}

// StoreOption configures a SQLStore at construction time.
type StoreOption func(*sqlConfig)

// WithPragma sets a SQLite PRAGMA (e.g. WithPragma("synchronous", "NORMAL")),
// overriding any default value for the same key. Ignored by the PostgreSQL
// constructors, which accept StoreOption only for API consistency.
func WithPragma(key, value string) StoreOption {
	return func(c *sqlConfig) {
		if c.pragmas == nil {
			c.pragmas = make(map[string]string)
		}
		c.pragmas[key] = value
	}
}

func defaultSQLConfig() *sqlConfig {
	return &sqlConfig{
		pragmas: map[string]string{
			"journal_mode": "WAL",
			"synchronous":  "NORMAL",
			"cache_size":   "-64000",
			"temp_store":   "MEMORY",
			"busy_timeout": "5000",
			"foreign_keys": "OFF",
		},
	}
}

// SQLStore realizes Store against the quadruples table over modernc.org/
// sqlite or github.com/lib/pq, selected by dialect.
type SQLStore struct {
	db         *sql.DB
	dialect    dialect
	ownsDB     bool
	upsertStmt *sql.Stmt
}

// memoryDBCounter gives each ":memory:" SQLStore its own uniquely-named
// shared-cache database, so that two stores opened with ":memory:" never
// silently share (or fail to share) state through modernc.org/sqlite's
// cache.
var memoryDBCounter atomic.Uint64

// NewSQLiteStore opens (or creates) a SQLite-backed SQLStore. Pass ":memory:"
// for an in-memory database.
//
// A bare ":memory:" DSN is unsafe under database/sql's connection pool:
// each pooled connection would open its own private, empty in-memory
// database, so a second connection silently sees no rows. NewSQLiteStore
// instead opens ":memory:" as a uniquely-named shared-cache URI DSN and
// pins the pool to a single connection, so every caller of one SQLStore
// observes the same database no matter how many goroutines share it.
func NewSQLiteStore(dbPath string, opts ...StoreOption) (*SQLStore, error) {
	memory := dbPath == ":memory:"
	if memory {
		dbPath = fmt.Sprintf("file:rdfdescribe_mem_%d?mode=memory&cache=shared", memoryDBCounter.Add(1))
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &StoreError{Msg: "failed to open sqlite", Err: err}
	}
	if memory {
		// A shared in-memory database only stays alive while at least one
		// connection is open; a single-connection pool also sidesteps
		// SQLite's one-writer-at-a-time restriction entirely.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	cfg := defaultSQLConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	keys := make([]string, 0, len(cfg.pragmas))
	for k := range cfg.pragmas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		stmt := fmt.Sprintf("PRAGMA %s=%s", key, cfg.pragmas[key])
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, &StoreError{Msg: fmt.Sprintf("failed to set pragma %q", stmt), Err: err}
		}
	}

	store := &SQLStore{db: db, dialect: sqliteDialect{}, ownsDB: true}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStore opens a PostgreSQL-backed SQLStore over connStr. opts is
// accepted for signature consistency with NewSQLiteStore; PostgreSQL has no
// PRAGMA equivalent, so pragma options are ignored.
func NewPostgresStore(connStr string, opts ...StoreOption) (*SQLStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, &StoreError{Msg: "failed to open postgres", Err: err}
	}
	store := &SQLStore{db: db, dialect: postgresDialect{}, ownsDB: true}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewPostgresStoreFromDB adapts an existing *sql.DB the caller owns and will
// close separately.
func NewPostgresStoreFromDB(db *sql.DB) (*SQLStore, error) {
	store := &SQLStore{db: db, dialect: postgresDialect{}, ownsDB: false}
	if err := store.initSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLStore) initSchema() error {
	if _, err := s.db.Exec(s.dialect.createTableSQL()); err != nil {
		return &StoreError{Msg: "failed to create quadruples table", Err: err}
	}
	for _, idx := range s.dialect.createIndexSQL() {
		if _, err := s.db.Exec(idx); err != nil {
			return &StoreError{Msg: "failed to create index", Err: err}
		}
	}
	stmt, err := s.db.Prepare(s.dialect.upsertSQL())
	if err != nil {
		return &StoreError{Msg: "failed to prepare upsert statement", Err: err}
	}
	s.upsertStmt = stmt
	return nil
}

// Close releases the prepared statement and, if this store opened the
// connection itself, the underlying *sql.DB.
func (s *SQLStore) Close() error {
	if s.upsertStmt != nil {
		s.upsertStmt.Close()
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// componentID hashes one quadruple component's string form to a stable
// 64-bit index column value, the same fnv-1a idiom rdf.ComputeQuadrupleID
// uses for the full quadruple.
func componentID(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

func (s *SQLStore) AddQuadruple(q *rdf.Quadruple) error {
	_, err := s.upsertStmt.Exec(
		int64(q.ID()), int(q.Flavor),
		q.Context.String(), componentID(q.Context.String()),
		q.Subject.String(), componentID(q.Subject.String()),
		q.Predicate.String(), componentID(q.Predicate.String()),
		q.Object.String(), componentID(q.Object.String()),
	)
	if err != nil {
		return &StoreError{Msg: "failed to add quadruple", Err: err}
	}
	return nil
}

func (s *SQLStore) RemoveQuadruple(q *rdf.Quadruple) error {
	query := fmt.Sprintf("DELETE FROM quadruples WHERE quadruple_id = %s", s.dialect.placeholder(1))
	if _, err := s.db.Exec(query, int64(q.ID())); err != nil {
		return &StoreError{Msg: "failed to remove quadruple", Err: err}
	}
	return nil
}

func (s *SQLStore) removeByColumn(column string, value int64) error {
	query := fmt.Sprintf("DELETE FROM quadruples WHERE %s = %s", column, s.dialect.placeholder(1))
	if _, err := s.db.Exec(query, value); err != nil {
		return &StoreError{Msg: "failed to remove by " + column, Err: err}
	}
	return nil
}

func (s *SQLStore) RemoveByContext(ctx *rdf.Resource) error {
	return s.removeByColumn("context_id", componentID(ctx.String()))
}

func (s *SQLStore) RemoveBySubject(subject *rdf.Resource) error {
	return s.removeByColumn("subject_id", componentID(subject.String()))
}

func (s *SQLStore) RemoveByPredicate(predicate *rdf.Resource) error {
	return s.removeByColumn("predicate_id", componentID(predicate.String()))
}

func (s *SQLStore) removeByObjectColumn(obj rdf.Term, flavor rdf.Flavor) error {
	query := fmt.Sprintf("DELETE FROM quadruples WHERE object_id = %s AND flavor = %s",
		s.dialect.placeholder(1), s.dialect.placeholder(2))
	if _, err := s.db.Exec(query, componentID(obj.String()), int(flavor)); err != nil {
		return &StoreError{Msg: "failed to remove by object", Err: err}
	}
	return nil
}

func (s *SQLStore) RemoveByObject(obj *rdf.Resource) error {
	return s.removeByObjectColumn(obj, rdf.SPO)
}

func (s *SQLStore) RemoveByLiteral(lit rdf.Term) error {
	return s.removeByObjectColumn(lit, rdf.SPL)
}

func (s *SQLStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM quadruples"); err != nil {
		return &StoreError{Msg: "failed to clear store", Err: err}
	}
	return nil
}

func (s *SQLStore) Contains(q *rdf.Quadruple) (bool, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM quadruples WHERE quadruple_id = %s", s.dialect.placeholder(1))
	var count int
	if err := s.db.QueryRow(query, int64(q.ID())).Scan(&count); err != nil {
		return false, &StoreError{Msg: "failed to check containment", Err: err}
	}
	return count > 0, nil
}

func (s *SQLStore) SelectQuadruples(ctx, subj, pred *rdf.Resource, obj rdf.Term) ([]*rdf.Quadruple, error) {
	var conds []string
	var args []any
	n := 1
	add := func(column string, id int64) {
		conds = append(conds, fmt.Sprintf("%s = %s", column, s.dialect.placeholder(n)))
		args = append(args, id)
		n++
	}
	if ctx != nil {
		add("context_id", componentID(ctx.String()))
	}
	if subj != nil {
		add("subject_id", componentID(subj.String()))
	}
	if pred != nil {
		add("predicate_id", componentID(pred.String()))
	}
	if obj != nil {
		add("object_id", componentID(obj.String()))
	}

	query := "SELECT context, subject, predicate, object, flavor FROM quadruples"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, &StoreError{Msg: "failed to select quadruples", Err: err}
	}
	defer rows.Close()

	var out []*rdf.Quadruple
	for rows.Next() {
		var ctxStr, subjStr, predStr, objStr string
		var flavor int
		if err := rows.Scan(&ctxStr, &subjStr, &predStr, &objStr, &flavor); err != nil {
			return nil, &StoreError{Msg: "failed to scan quadruple row", Err: err}
		}
		q, err := reconstructQuadruple(ctxStr, subjStr, predStr, objStr, rdf.Flavor(flavor))
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) ExtractGraphs(registry *rdf.NamespaceRegistry) (map[string]*rdf.Graph, error) {
	rows, err := s.db.Query("SELECT context, subject, predicate, object, flavor FROM quadruples")
	if err != nil {
		return nil, &StoreError{Msg: "failed to extract graphs", Err: err}
	}
	defer rows.Close()

	graphs := make(map[string]*rdf.Graph)
	for rows.Next() {
		var ctxStr, subjStr, predStr, objStr string
		var flavor int
		if err := rows.Scan(&ctxStr, &subjStr, &predStr, &objStr, &flavor); err != nil {
			return nil, &StoreError{Msg: "failed to scan quadruple row", Err: err}
		}
		q, err := reconstructQuadruple(ctxStr, subjStr, predStr, objStr, rdf.Flavor(flavor))
		if err != nil {
			return nil, err
		}
		g, ok := graphs[ctxStr]
		if !ok {
			g = rdf.NewGraph(q.Context, registry)
			graphs[ctxStr] = g
		}
		g.Add(q.Triple())
	}
	return graphs, rows.Err()
}

func (s *SQLStore) MergeGraph(g *rdf.Graph) error {
	var quads []*rdf.Quadruple
	for _, t := range g.All() {
		quads = append(quads, rdf.NewQuadruple(g.Context, t.Subject, t.Predicate, t.Object))
	}
	return s.batchInsertQuadruples(quads)
}

// batchInsertQuadruples inserts quads using multi-row INSERTs inside a
// single transaction that commits on success or rolls back on any failure.
func (s *SQLStore) batchInsertQuadruples(quads []*rdf.Quadruple) error {
	const batchSize = 500
	if len(quads) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return &StoreError{Msg: "failed to begin transaction", Err: err}
	}
	defer tx.Rollback() // no-op once Commit succeeds

	for i := 0; i < len(quads); i += batchSize {
		end := min(i+batchSize, len(quads))
		batch := quads[i:end]

		query := s.dialect.batchUpsertSQL(len(batch))
		params := make([]any, 0, len(batch)*len(quadrupleColumns))
		for _, q := range batch {
			params = append(params,
				int64(q.ID()), int(q.Flavor),
				q.Context.String(), componentID(q.Context.String()),
				q.Subject.String(), componentID(q.Subject.String()),
				q.Predicate.String(), componentID(q.Predicate.String()),
				q.Object.String(), componentID(q.Object.String()),
			)
		}
		if _, err := tx.Exec(query, params...); err != nil {
			return &StoreError{Msg: "failed to execute batch insert", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Msg: "failed to commit transaction", Err: err}
	}
	return nil
}

// reconstructQuadruple rebuilds a *rdf.Quadruple from its stored string
// columns: Subject/Predicate/Context are always bare resource URIs, and
// Object is the term's full rdf.Term.String() lexical form (a bare URI for
// a Resource, or `"value"@lang` / `"value"^^<dt>` for a literal) — the
// schema's single Object STRING column captures everything needed to parse
// the term back, keyed by the stored flavor.
func reconstructQuadruple(ctxStr, subjStr, predStr, objStr string, flavor rdf.Flavor) (*rdf.Quadruple, error) {
	ctx, err := rdf.NewResource(ctxStr)
	if err != nil {
		return nil, &StoreError{Msg: "corrupt stored context", Err: err}
	}
	subj, err := rdf.NewResource(subjStr)
	if err != nil {
		return nil, &StoreError{Msg: "corrupt stored subject", Err: err}
	}
	pred, err := rdf.NewResource(predStr)
	if err != nil {
		return nil, &StoreError{Msg: "corrupt stored predicate", Err: err}
	}

	var obj rdf.Term
	if flavor == rdf.SPO {
		obj, err = rdf.NewResource(objStr)
		if err != nil {
			return nil, &StoreError{Msg: "corrupt stored object", Err: err}
		}
	} else {
		obj, err = parseStoredLiteral(objStr)
		if err != nil {
			return nil, &StoreError{Msg: "corrupt stored literal object", Err: err}
		}
	}

	return rdf.NewQuadruple(ctx, subj, pred, obj), nil
}

// parseStoredLiteral reverses PlainLiteral/TypedLiteral.String(): a Go-quoted
// lexical value optionally followed by "^^<datatypeURI>" or "@lang".
func parseStoredLiteral(s string) (rdf.Term, error) {
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return nil, fmt.Errorf("not a quoted literal: %q: %w", s, err)
	}
	value, err := strconv.Unquote(quoted)
	if err != nil {
		return nil, fmt.Errorf("failed to unquote literal %q: %w", s, err)
	}
	rest := s[len(quoted):]

	switch {
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		dtURI := rest[len("^^<") : len(rest)-1]
		dt, ok := rdf.DatatypeFromURI(dtURI)
		if !ok {
			return nil, fmt.Errorf("unknown stored datatype URI: %s", dtURI)
		}
		return rdf.NewTypedLiteral(value, dt), nil
	case strings.HasPrefix(rest, "@"):
		return rdf.NewPlainLiteral(value, rest[1:]), nil
	default:
		return rdf.NewPlainLiteral(value, ""), nil
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w     interface{ Write([]byte) (int, error) }
	count int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

// countingReader wraps an io.Reader and counts bytes read.
type countingReader struct {
	r     interface{ Read([]byte) (int, error) }
	count int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.count += int64(n)
	return n, err
}

// WriteTo writes every stored quadruple to w as a JSON array of objects,
// streamed via go-json-experiment/jsontext tokens.
func (s *SQLStore) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := jsontext.NewEncoder(cw)

	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return cw.count, err
	}

	rows, err := s.db.Query("SELECT context, subject, predicate, object, flavor FROM quadruples ORDER BY quadruple_id")
	if err != nil {
		return cw.count, &StoreError{Msg: "failed to query quadruples for dump", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var ctxStr, subjStr, predStr, objStr string
		var flavor int
		if err := rows.Scan(&ctxStr, &subjStr, &predStr, &objStr, &flavor); err != nil {
			return cw.count, err
		}
		if err := writeQuadRowJSON(enc, ctxStr, subjStr, predStr, objStr, flavor); err != nil {
			return cw.count, err
		}
	}
	if err := rows.Err(); err != nil {
		return cw.count, err
	}

	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return cw.count, err
	}
	return cw.count, nil
}

func writeQuadRowJSON(enc *jsontext.Encoder, ctxStr, subjStr, predStr, objStr string, flavor int) error {
	tokens := []jsontext.Token{
		jsontext.BeginObject,
		jsontext.String("context"), jsontext.String(ctxStr),
		jsontext.String("subject"), jsontext.String(subjStr),
		jsontext.String("predicate"), jsontext.String(predStr),
		jsontext.String("object"), jsontext.String(objStr),
		jsontext.String("flavor"), jsontext.Int(int64(flavor)),
		jsontext.EndObject,
	}
	for _, tok := range tokens {
		if err := enc.WriteToken(tok); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom reads a JSON array produced by WriteTo and bulk-inserts the
// quadruples into the store in 500-row batches.
func (s *SQLStore) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	dec := jsontext.NewDecoder(cr)

	tok, err := dec.ReadToken()
	if err != nil {
		return cr.count, &StoreError{Msg: "failed to read opening token", Err: err}
	}
	if tok.Kind() != '[' {
		return cr.count, &StoreError{Msg: fmt.Sprintf("expected JSON array start, got %c", tok.Kind())}
	}

	const batchSize = 500
	var batch []*rdf.Quadruple

	for dec.PeekKind() == '{' {
		q, err := readQuadRowJSON(dec)
		if err != nil {
			return cr.count, err
		}
		batch = append(batch, q)
		if len(batch) >= batchSize {
			if err := s.batchInsertQuadruples(batch); err != nil {
				return cr.count, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.batchInsertQuadruples(batch); err != nil {
			return cr.count, err
		}
	}

	tok, err = dec.ReadToken()
	if err != nil {
		return cr.count, &StoreError{Msg: "failed to read closing token", Err: err}
	}
	if tok.Kind() != ']' {
		return cr.count, &StoreError{Msg: fmt.Sprintf("expected JSON array end, got %c", tok.Kind())}
	}
	return cr.count, nil
}

func readQuadRowJSON(dec *jsontext.Decoder) (*rdf.Quadruple, error) {
	if _, err := dec.ReadToken(); err != nil { // BeginObject
		return nil, err
	}
	var ctxStr, subjStr, predStr, objStr string
	var flavor int
	for dec.PeekKind() != '}' {
		keyTok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		key := keyTok.String()
		valTok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		switch key {
		case "context":
			ctxStr = valTok.String()
		case "subject":
			subjStr = valTok.String()
		case "predicate":
			predStr = valTok.String()
		case "object":
			objStr = valTok.String()
		case "flavor":
			flavor = int(valTok.Int())
		}
	}
	if _, err := dec.ReadToken(); err != nil { // EndObject
		return nil, err
	}
	return reconstructQuadruple(ctxStr, subjStr, predStr, objStr, rdf.Flavor(flavor))
}
