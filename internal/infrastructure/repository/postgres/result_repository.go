package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/secureai/docshield/internal/core/domain"
)

// ResultRepository is the durable store for document results. Save has
// insert-or-replace full-row semantics; no partial-field update exists at
// this layer.
type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ResultRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082901)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS document_results (
	id TEXT PRIMARY KEY,
	doc_type TEXT,
	masked_markdown TEXT NOT NULL,
	answer_markdown TEXT,
	filename TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_document_results_doc_type ON document_results(doc_type);
CREATE INDEX IF NOT EXISTS idx_document_results_created_at ON document_results(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ResultRepository) Save(ctx context.Context, result *domain.DocumentResult) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO document_results (
	id, doc_type, masked_markdown, answer_markdown, filename, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
	doc_type = EXCLUDED.doc_type,
	masked_markdown = EXCLUDED.masked_markdown,
	answer_markdown = EXCLUDED.answer_markdown,
	filename = EXCLUDED.filename,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at
`,
		result.ID,
		nullableString(string(result.Type)),
		result.MaskedMarkdown,
		nullableString(result.AnswerMarkdown),
		result.Filename,
		result.CreatedAt,
		result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save document result: %w", err)
	}
	return nil
}

func (r *ResultRepository) FindByID(ctx context.Context, id string) (*domain.DocumentResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, doc_type, masked_markdown, answer_markdown, filename, created_at, updated_at
FROM document_results
WHERE id = $1
`, id)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "find document result",
				fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan document result: %w", err)
	}
	return result, nil
}

func (r *ResultRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM document_results WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check document result existence: %w", err)
	}
	return exists, nil
}

func (r *ResultRepository) FindAll(ctx context.Context) ([]domain.DocumentResult, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, doc_type, masked_markdown, answer_markdown, filename, created_at, updated_at
FROM document_results
ORDER BY created_at
`)
	if err != nil {
		return nil, fmt.Errorf("query document results: %w", err)
	}
	defer rows.Close()

	var results []domain.DocumentResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document result: %w", err)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document results: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*domain.DocumentResult, error) {
	var result domain.DocumentResult
	var docType, answer sql.NullString

	err := row.Scan(
		&result.ID, &docType, &result.MaskedMarkdown, &answer,
		&result.Filename, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	result.Type = domain.DocumentType(docType.String)
	result.AnswerMarkdown = answer.String
	return &result, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
