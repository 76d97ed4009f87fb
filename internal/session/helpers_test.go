package session_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type issuer struct {
	signer *jwtx.EdDSASigner
}

func newIssuer(t *testing.T) *issuer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	s, err := jwtx.NewEdDSASigner(priv)
	require.NoError(t, err)
	return &issuer{signer: s}
}

// issue signs a credential for id that expires ttl after epoch.
func (i *issuer) issue(t *testing.T, id string, role jwtx.Role, ttl time.Duration) string {
	t.Helper()
	tok, err := i.signer.Sign(jwtx.NewClaims(id, "Name "+id, id+"@example.com", role, ttl, epoch))
	require.NoError(t, err)
	return tok
}

// failingSlot errors on every call.
type failingSlot struct{}

var errSlot = errors.New("disk on fire")

func (failingSlot) Get(context.Context) (string, bool, error) { return "", false, errSlot }
func (failingSlot) Set(context.Context, string) error         { return errSlot }
func (failingSlot) Clear(context.Context) error               { return errSlot }
