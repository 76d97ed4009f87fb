package jwtx

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier is a Decoder that also checks the Ed25519 signature. Expiry
// is left to the caller so an expired credential still decodes.
type EdDSAVerifier struct {
	pub ed25519.PublicKey
}

// NewEdDSAVerifier creates a verifier for a single public key.
func NewEdDSAVerifier(pub ed25519.PublicKey) *EdDSAVerifier {
	return &EdDSAVerifier{pub: pub}
}

// NewEdDSAVerifierPEM loads a PKIX "PUBLIC KEY" PEM block.
func NewEdDSAVerifierPEM(pemKey []byte) (*EdDSAVerifier, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKIX: %w", err)
	}

	key, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 public key")
	}

	return NewEdDSAVerifier(key), nil
}

// Decode validates the signature and returns the claims.
func (v *EdDSAVerifier) Decode(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.pub, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case err != nil:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := checkClaims(claims); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// MarshalPublicKeyPEM encodes pub as a PKIX PEM block, the format
// NewEdDSAVerifierPEM reads.
func MarshalPublicKeyPEM(pub ed25519.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKIX: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}
