// Package backend is an in-memory reference implementation of the
// storefront HTTP API. It backs the end-to-end tests and the shopd
// development server.
package backend

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/shopfront/pkg/cryptox"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
)

// BuildVersion is reported by /livez.
const BuildVersion = "v0.1.0"

// Server bundles the store, signing key and HTTP router.
type Server struct {
	cfg    Config
	logger *slog.Logger

	Store  *Store
	Router *Router
	signer *jwtx.EdDSASigner
}

// New builds a seeded server. With no key file the signing key is
// ephemeral and every restart invalidates issued credentials.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	priv, err := loadKey(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	signer, err := jwtx.NewEdDSASigner(priv)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	st := NewStore(nil)
	hasher := cryptox.NewHasher(cfg.Pepper)
	if err := Seed(st, hasher, cfg); err != nil {
		return nil, err
	}

	router := NewRouter(st, signer, hasher, cfg.TokenTTL, BuildVersion, logger)
	router.ApplyRoutes()

	return &Server{cfg: cfg, logger: logger, Store: st, Router: router, signer: signer}, nil
}

func loadKey(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		priv, _, err := cryptox.GenerateEd25519Key()
		return priv, err
	}
	priv, err := cryptox.LoadOrCreateEd25519Key(path)
	if err != nil {
		return nil, fmt.Errorf("signing key %s: %w", path, err)
	}
	return priv, nil
}

// PublicKeyPEM is the credential verification key, for clients that
// verify signatures.
func (s *Server) PublicKeyPEM() ([]byte, error) {
	return jwtx.MarshalPublicKeyPEM(s.signer.Public())
}

// Handler is the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.Router }

// Run serves on cfg.Addr until ctx is done, then shuts down within
// cfg.ShutdownGracePeriod.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 3 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("shopd listening", "addr", ln.Addr().String(), "version", BuildVersion)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down shopd")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGracePeriod)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("graceful server shutdown failed", "error", err)
			return srv.Close()
		}
		return nil
	})

	return g.Wait()
}
