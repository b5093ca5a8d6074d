package kms

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diddht/pkg/platform/sentinel"
)

// PrivateKeySchema creates the table PostgresPrivateKeyStore writes to.
const PrivateKeySchema = `
CREATE TABLE IF NOT EXISTS kms_private_keys (
	alias       TEXT PRIMARY KEY,
	key_type    TEXT NOT NULL,
	sealed_hex  TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresPrivateKeyStore persists sealed private keys in PostgreSQL.
type PostgresPrivateKeyStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPrivateKeyStore constructs the store. Call Migrate once before use.
func NewPostgresPrivateKeyStore(pool *pgxpool.Pool) *PostgresPrivateKeyStore {
	return &PostgresPrivateKeyStore{pool: pool}
}

// Migrate creates the backing table if it does not exist.
func (s *PostgresPrivateKeyStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, PrivateKeySchema); err != nil {
		return fmt.Errorf("migrate kms_private_keys: %w", err)
	}
	return nil
}

func (s *PostgresPrivateKeyStore) Save(ctx context.Context, key PrivateKey) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO kms_private_keys (alias, key_type, sealed_hex)
		VALUES ($1, $2, $3)
		ON CONFLICT (alias) DO NOTHING
	`, key.Alias, string(key.Type), key.SealedHex)
	if err != nil {
		return fmt.Errorf("save private key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresPrivateKeyStore) Get(ctx context.Context, alias string) (PrivateKey, error) {
	var (
		pk      PrivateKey
		keyType string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT alias, key_type, sealed_hex FROM kms_private_keys WHERE alias = $1`, alias,
	).Scan(&pk.Alias, &keyType, &pk.SealedHex)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PrivateKey{}, sentinel.ErrNotFound
		}
		return PrivateKey{}, fmt.Errorf("get private key: %w", err)
	}
	pk.Type = KeyType(keyType)
	return pk, nil
}

func (s *PostgresPrivateKeyStore) Delete(ctx context.Context, alias string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM kms_private_keys WHERE alias = $1`, alias)
	if err != nil {
		return fmt.Errorf("delete private key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// KeySchema creates the table PostgresKeyStore writes to.
const KeySchema = `
CREATE TABLE IF NOT EXISTS kms_keys (
	kid             TEXT PRIMARY KEY,
	kms             TEXT NOT NULL,
	key_type        TEXT NOT NULL,
	public_key_hex  TEXT NOT NULL,
	meta            JSONB,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresKeyStore persists public key metadata in PostgreSQL so the key
// manager can find keys created before a restart.
type PostgresKeyStore struct {
	pool *pgxpool.Pool
}

// NewPostgresKeyStore constructs the store. Call Migrate once before use.
func NewPostgresKeyStore(pool *pgxpool.Pool) *PostgresKeyStore {
	return &PostgresKeyStore{pool: pool}
}

// Migrate creates the backing table if it does not exist.
func (s *PostgresKeyStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, KeySchema); err != nil {
		return fmt.Errorf("migrate kms_keys: %w", err)
	}
	return nil
}

func (s *PostgresKeyStore) Import(ctx context.Context, key Key) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO kms_keys (kid, kms, key_type, public_key_hex, meta)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kid) DO NOTHING
	`, key.KID, key.KMS, string(key.Type), key.PublicKeyHex, key.Meta)
	if err != nil {
		return fmt.Errorf("import key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresKeyStore) Get(ctx context.Context, kid string) (Key, error) {
	var (
		key     Key
		keyType string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT kid, kms, key_type, public_key_hex, meta FROM kms_keys WHERE kid = $1`, kid,
	).Scan(&key.KID, &key.KMS, &keyType, &key.PublicKeyHex, &key.Meta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Key{}, sentinel.ErrNotFound
		}
		return Key{}, fmt.Errorf("get key: %w", err)
	}
	key.Type = KeyType(keyType)
	return key, nil
}

func (s *PostgresKeyStore) Delete(ctx context.Context, kid string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM kms_keys WHERE kid = $1`, kid)
	if err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
