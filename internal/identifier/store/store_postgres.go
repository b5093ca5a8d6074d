package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/pkg/platform/sentinel"
	"diddht/pkg/requestcontext"
)

// Schema creates the identifiers table. Aliases are unique per provider;
// an identifier without an alias stores NULL.
const Schema = `
CREATE TABLE IF NOT EXISTS identifiers (
	did               TEXT PRIMARY KEY,
	provider          TEXT NOT NULL,
	alias             TEXT,
	controller_key_id TEXT NOT NULL,
	key_ids           TEXT[] NOT NULL DEFAULT '{}',
	keys              JSONB NOT NULL,
	services          JSONB NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	UNIQUE (provider, alias)
);
CREATE INDEX IF NOT EXISTS identifiers_key_ids_idx ON identifiers USING GIN (key_ids);
`

const uniqueViolation = "23505"

// PostgresStore persists identifiers in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed identifier store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies Schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate identifiers: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, id models.Identifier) error {
	keys, err := json.Marshal(id.Keys)
	if err != nil {
		return fmt.Errorf("marshal identifier keys: %w", err)
	}
	services, err := json.Marshal(id.Services)
	if err != nil {
		return fmt.Errorf("marshal identifier services: %w", err)
	}
	query := `
		INSERT INTO identifiers (did, provider, alias, controller_key_id, key_ids, keys, services, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		id.DID,
		id.Provider,
		nullString(id.Alias),
		id.ControllerKeyID,
		pq.Array(id.KeyIDs()),
		keys,
		services,
		requestcontext.Now(ctx),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save identifier: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, did string) (models.Identifier, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT did, provider, alias, controller_key_id, keys, services
		FROM identifiers WHERE did = $1
	`, did)
	id, err := scanIdentifier(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Identifier{}, sentinel.ErrNotFound
		}
		return models.Identifier{}, fmt.Errorf("get identifier: %w", err)
	}
	return id, nil
}

// Find returns matches ordered by DID.
func (s *PostgresStore) Find(ctx context.Context, filter Filter) ([]models.Identifier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT did, provider, alias, controller_key_id, keys, services
		FROM identifiers
		WHERE ($1 = '' OR provider = $1)
		  AND ($2 = '' OR alias = $2)
		  AND ($3 = '' OR $3 = ANY(key_ids))
		ORDER BY did
	`, filter.Provider, filter.Alias, filter.KeyID)
	if err != nil {
		return nil, fmt.Errorf("find identifiers: %w", err)
	}
	defer rows.Close()

	out := make([]models.Identifier, 0)
	for rows.Next() {
		id, err := scanIdentifier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identifier: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find identifiers: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Delete(ctx context.Context, did string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM identifiers WHERE did = $1`, did)
	if err != nil {
		return fmt.Errorf("delete identifier: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete identifier: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdentifier(row scanner) (models.Identifier, error) {
	var (
		id       models.Identifier
		alias    sql.NullString
		keys     []byte
		services []byte
	)
	if err := row.Scan(&id.DID, &id.Provider, &alias, &id.ControllerKeyID, &keys, &services); err != nil {
		return models.Identifier{}, err
	}
	id.Alias = alias.String
	if err := json.Unmarshal(keys, &id.Keys); err != nil {
		return models.Identifier{}, fmt.Errorf("unmarshal identifier keys: %w", err)
	}
	if err := json.Unmarshal(services, &id.Services); err != nil {
		return models.Identifier{}, fmt.Errorf("unmarshal identifier services: %w", err)
	}
	if id.Keys == nil {
		id.Keys = []kms.Key{}
	}
	if id.Services == nil {
		id.Services = []models.Service{}
	}
	return id, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
