package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// LibSQLStore implements the Store interface using libSQL (embedded SQLite fork).
type LibSQLStore struct {
	db *sql.DB
}

// NewLibSQLStore opens a libSQL database at the given path and returns a Store.
// The path should be a file URI, e.g. "file:/path/to/history.db".
func NewLibSQLStore(dbPath string) (*LibSQLStore, error) {
	db, err := sql.Open("libsql", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open libsql: %w", err)
	}
	db.SetMaxOpenConns(1)

	// Some PRAGMAs return rows so we use QueryRow.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		var result string
		_ = db.QueryRow(p).Scan(&result)
	}

	return &LibSQLStore{db: db}, nil
}

// Close closes the database.
func (s *LibSQLStore) Close() error { return s.db.Close() }

// Migrate runs all pending database migrations.
func (s *LibSQLStore) Migrate(ctx context.Context) error {
	return runMigrations(ctx, s.db)
}

// Vacuum runs VACUUM on the database.
func (s *LibSQLStore) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

const generationColumns = "id, kind, input, output, source, language, model, request_id, degraded, metadata, created_at"

func (s *LibSQLStore) SaveGeneration(ctx context.Context, gen *Generation) error {
	if gen.ID == "" {
		return schema.NewError(schema.ErrCodeStore, "generation id is required")
	}
	metadata, err := nullableJSON(gen.Metadata)
	if err != nil {
		return fmt.Errorf("marshal generation metadata: %w", err)
	}
	gen.CreatedAt = timeOrNow(gen.CreatedAt)

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generations (`+generationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gen.ID, string(gen.Kind), gen.Input, gen.Output, string(gen.Source),
		nullStr(gen.Language), nullStr(gen.Model), nullStr(gen.RequestID),
		boolInt(gen.Degraded), metadata, gen.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return schema.NewErrorf(schema.ErrCodeStore, "save generation %s", gen.ID).WithCause(err)
	}
	return nil
}

func (s *LibSQLStore) GetGeneration(ctx context.Context, id string) (*Generation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	gen, err := scanGeneration(row)
	if err == sql.ErrNoRows {
		return nil, storeNotFound("generation", id)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func (s *LibSQLStore) ListGenerations(ctx context.Context, filter GenerationFilter) ([]*Generation, error) {
	var where []string
	var args []any

	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Source != "" {
		where = append(where, "source = ?")
		args = append(args, string(filter.Source))
	}
	if filter.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, filter.Since.UnixMilli())
	}

	query := "SELECT " + generationColumns + " FROM generations"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []*Generation
	for rows.Next() {
		gen, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}
	return gens, rows.Err()
}

func (s *LibSQLStore) DeleteGeneration(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM generations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res, "generation", id)
}

func (s *LibSQLStore) PruneGenerations(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM generations WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, schema.NewError(schema.ErrCodeStore, "prune generations").WithCause(err)
	}
	return res.RowsAffected()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row rowScanner) (*Generation, error) {
	gen := &Generation{}
	var (
		kind, source               string
		language, model, requestID sql.NullString
		metadata                   sql.NullString
		degraded                   int64
		createdAt                  int64
	)
	if err := row.Scan(&gen.ID, &kind, &gen.Input, &gen.Output, &source,
		&language, &model, &requestID, &degraded, &metadata, &createdAt); err != nil {
		return nil, err
	}
	gen.Kind = schema.Kind(kind)
	gen.Source = schema.Source(source)
	gen.Language = language.String
	gen.Model = model.String
	gen.RequestID = requestID.String
	gen.Degraded = degraded != 0
	gen.Metadata = jsonOrNil(metadata)
	gen.CreatedAt = time.UnixMilli(createdAt).UTC()
	return gen, nil
}

// --- Helpers ---

func storeNotFound(resource, id string) *schema.Error {
	return schema.NewErrorf(schema.ErrCodeNotFound, "%s %q not found", resource, id)
}

func checkRowsAffected(res sql.Result, resource, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storeNotFound(resource, id)
	}
	return nil
}

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func jsonOrNil(ns sql.NullString) json.RawMessage {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.RawMessage(ns.String)
}

func nullableJSON(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON")
	}
	return string(raw), nil
}
