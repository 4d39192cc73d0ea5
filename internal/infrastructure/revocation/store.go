// Package revocation tracks bearer tokens that were invalidated before
// their natural expiry (logout). A revoked token fails the auth guard even
// while its signature and expiry are still individually valid.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is the blacklist backing store. Implementations must be safe for
// concurrent Revoke/IsRevoked calls from multiple requests.
//
// Revoke is idempotent. expiresAt is the token's own expiry: once it has
// passed, the token can no longer validate anyway, so the entry may be
// dropped.
type Store interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// digest keys entries by SHA-256 of the token so raw token values are never
// held by the store or sent to Redis.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
