package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const blacklistPrefix = "jwt:blacklist:"

// KeyStore is where revoked token hashes live. The redis cache client
// implements it.
type KeyStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenBlacklist manages revoked JWT tokens
type TokenBlacklist struct {
	store KeyStore
}

// NewTokenBlacklist creates a new token blacklist
func NewTokenBlacklist(store KeyStore) *TokenBlacklist {
	return &TokenBlacklist{store: store}
}

// Add revokes token until expiration has passed. Tokens that already
// expired are not stored.
func (b *TokenBlacklist) Add(ctx context.Context, token string, expiration time.Duration) error {
	if expiration <= 0 {
		return nil
	}
	return b.store.Set(ctx, blacklistPrefix+hashToken(token), "revoked", expiration)
}

// IsBlacklisted checks if a token is blacklisted
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return b.store.Exists(ctx, blacklistPrefix+hashToken(token))
}

// hashToken keeps raw tokens out of redis.
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
