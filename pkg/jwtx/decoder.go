package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Decoder turns a raw credential into Claims. Implementations never judge
// expiry; that is the session's call.
type Decoder interface {
	Decode(token string) (Claims, error)
}

// UnverifiedDecoder reads the payload without checking the signature. The
// client only carries the credential, the backend is what enforces it.
type UnverifiedDecoder struct{}

// Decode parses the token payload into Claims.
func (UnverifiedDecoder) Decode(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := checkClaims(claims); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// checkClaims rejects payloads that decoded as JSON but are not credentials.
func checkClaims(c Claims) error {
	if c.ID == "" || c.ExpiresAt == 0 {
		return ErrInvalidClaim
	}
	return nil
}
