package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCredentialTTL is the lifetime the reference backend gives a freshly
// issued credential.
const DefaultCredentialTTL = 24 * time.Hour

// Role is the flat, exclusive role carried by a credential. An admin is not
// also a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Claims is the decoded payload of a storefront credential. Times are epoch
// seconds, exactly as the backend writes them.
type Claims struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// NewClaims builds claims issued at now and expiring after ttl.
func NewClaims(id, name, email string, role Role, ttl time.Duration, now time.Time) Claims {
	return Claims{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// Expiry returns the expiry as a time.Time.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// ValidAt reports whether the credential has not expired at now. The
// comparison is done in milliseconds: exp*1000 > now.
func (c Claims) ValidAt(now time.Time) bool {
	return c.ExpiresAt*1000 > now.UnixMilli()
}

/* jwt.Claims implementation so golang-jwt can parse into Claims directly. */

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.ExpiresAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == 0 {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c Claims) GetIssuer() (string, error)               { return "", nil }
func (c Claims) GetSubject() (string, error)              { return c.ID, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)   { return nil, nil }
