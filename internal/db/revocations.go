package db

import (
	"context"
	"time"
)

func (db *Postgres) EnsureRevocationSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS revoked_tokens (
			jti TEXT PRIMARY KEY,
			revoked_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)
		`,
		`CREATE INDEX IF NOT EXISTS revoked_tokens_expires_at_idx ON revoked_tokens(expires_at)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// RevokeToken records a jti until the token would have expired anyway.
// ON CONFLICT DO NOTHING makes a second revoke of the same jti a no-op:
// the original revoked_at/expires_at are never overwritten, and concurrent
// logouts of the same token leave exactly one row.
func (db *Postgres) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) (bool, error) {
	query := `
		INSERT INTO revoked_tokens (jti, revoked_at, expires_at)
		VALUES ($1, NOW(), $2)
		ON CONFLICT (jti) DO NOTHING
	`
	tag, err := db.Pool.Exec(ctx, query, jti, expiresAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (db *Postgres) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`

	var revoked bool
	if err := db.Pool.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}

// DeleteExpiredRevocations prunes entries for tokens that are already past
// their own expiry. Strictly expires_at < now, so a still-valid token can
// never lose its ledger entry early.
func (db *Postgres) DeleteExpiredRevocations(ctx context.Context) (int64, error) {
	query := `DELETE FROM revoked_tokens WHERE expires_at < NOW()`

	tag, err := db.Pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
