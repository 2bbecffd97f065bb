package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrInvalidAPIKey = errors.New("invalid api key")

type APIKey struct {
	ID          int            `db:"id"`
	UserID      int            `db:"user_id"`
	Name        string         `db:"name"`
	Permissions pq.StringArray `db:"permissions"`
	ExpiresAt   time.Time      `db:"expires_at"`
	Revoked     bool           `db:"revoked"`
}

// KeyStore resolves API keys by their stored hash. Issuance lives outside
// this service.
type KeyStore interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
}

// HashAPIKey derives the stored lookup hash for a raw key: hex(sha256(key + salt)).
func HashAPIKey(rawKey, salt string) string {
	sum := sha256.Sum256([]byte(rawKey + salt))
	return hex.EncodeToString(sum[:])
}

type keyRepository struct {
	db *sqlx.DB
}

func NewKeyRepository(db *sqlx.DB) KeyStore {
	return &keyRepository{db: db}
}

func (r *keyRepository) FindByHash(ctx context.Context, hash string) (*APIKey, error) {
	var k APIKey
	err := r.db.GetContext(ctx, &k, `
		SELECT id, user_id, name, permissions, expires_at, revoked
		FROM api_keys
		WHERE key_hash = $1
	`, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}
	return &k, nil
}

// Usable reports whether the key may authenticate a request at now.
func (k *APIKey) Usable(now time.Time) bool {
	return !k.Revoked && now.Before(k.ExpiresAt)
}
