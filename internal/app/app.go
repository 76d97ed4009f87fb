// Package app wires the storefront client together: configuration, the
// outbound transport chain, the session and the domain services.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/shopfront/internal/account"
	"github.com/aussiebroadwan/shopfront/internal/authz"
	"github.com/aussiebroadwan/shopfront/internal/cart"
	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/internal/nav"
	"github.com/aussiebroadwan/shopfront/internal/order"
	"github.com/aussiebroadwan/shopfront/internal/session"
	"github.com/aussiebroadwan/shopfront/internal/session/drivers/sqlite"
	"github.com/aussiebroadwan/shopfront/internal/transport"
	"github.com/aussiebroadwan/shopfront/internal/triage"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
)

// BuildVersion is stamped into log records.
const BuildVersion = "v0.1.0"

// Application is one storefront client: one session, one cart, one order
// view.
type Application struct {
	cfg    Config
	logger *slog.Logger

	Nav     nav.Navigator
	Session *session.Manager
	Client  *shopsdk.Client
	Cart    *cart.Store
	Orders  *order.Service
	Account *account.Service
	Routes  *authz.Router

	closers []io.Closer
	stop    func()
	done    chan struct{}
}

type options struct {
	nav      nav.Navigator
	notifier triage.Notifier
	base     http.RoundTripper
	slot     session.Slot
	logger   *slog.Logger
	now      func() time.Time
}

// Option overrides a default collaborator.
type Option func(*options)

// WithNavigator sets where navigation effects go. The default is a
// nav.History starting at nav.Home.
func WithNavigator(n nav.Navigator) Option { return func(o *options) { o.nav = n } }

// WithNotifier sets where failure notices go. The default logs them.
func WithNotifier(n triage.Notifier) Option { return func(o *options) { o.notifier = n } }

// WithBaseTransport replaces http.DefaultTransport at the bottom of the
// chain.
func WithBaseTransport(rt http.RoundTripper) Option { return func(o *options) { o.base = rt } }

// WithSlot replaces the configured credential slot.
func WithSlot(s session.Slot) Option { return func(o *options) { o.slot = s } }

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithClock sets the clock used for credential expiry and confirmations.
func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

// New builds an Application. Call Bootstrap before use and Close after.
func New(cfg Config, opts ...Option) (*Application, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	app := &Application{cfg: cfg, logger: o.logger}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "shopfront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	app.Nav = o.nav
	if app.Nav == nil {
		app.Nav = nav.NewHistory(nav.Home)
	}
	if o.notifier == nil {
		o.notifier = triage.LogNotifier{Logger: app.logger}
	}

	if err := app.initSession(o); err != nil {
		return nil, err
	}
	app.initClient(o)
	app.initServices(o)

	return app, nil
}

func (app *Application) initSession(o options) error {
	slot := o.slot
	if slot == nil {
		var err error
		if slot, err = app.openSlot(); err != nil {
			return err
		}
	}

	var dec jwtx.Decoder = jwtx.UnverifiedDecoder{}
	if app.cfg.TokenPublicKey != "" {
		pemKey, err := os.ReadFile(app.cfg.TokenPublicKey)
		if err != nil {
			return fmt.Errorf("read token public key: %w", err)
		}
		if dec, err = jwtx.NewEdDSAVerifierPEM(pemKey); err != nil {
			return err
		}
	}

	app.Session = session.New(slot,
		session.WithDecoder(dec),
		session.WithNavigator(app.Nav),
		session.WithClock(o.now),
		session.WithLogger(app.logger),
	)
	return nil
}

func (app *Application) openSlot() (session.Slot, error) {
	switch app.cfg.SlotDriver {
	case SlotMemory:
		return session.NewMemorySlot(), nil
	case SlotFile:
		return session.NewFileSlot(app.cfg.SlotPath), nil
	case SlotSQLite:
		if err := os.MkdirAll(filepath.Dir(app.cfg.SlotPath), 0o700); err != nil {
			return nil, fmt.Errorf("create slot dir: %w", err)
		}
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", app.cfg.SlotPath)
		s, err := sqlite.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite slot: %w", err)
		}
		app.closers = append(app.closers, s)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown slot driver %q", app.cfg.SlotDriver)
	}
}

// initClient builds the outbound chain, outermost first: request id,
// logging, failure triage, credential, rate limit.
func (app *Application) initClient(o options) {
	wrappers := []transport.Wrapper{
		transport.RequestID(),
		transport.Logging(app.logger),
		triage.Wrap(app.Nav, o.notifier),
		transport.Augment(app.Session),
	}
	if app.cfg.RateLimit > 0 {
		wrappers = append(wrappers, transport.RateLimit(rate.Limit(app.cfg.RateLimit), app.cfg.RateBurst))
	}

	app.Client = shopsdk.NewClient(app.cfg.APIURL, &http.Client{
		Timeout:   app.cfg.HTTPTimeout,
		Transport: transport.Chain(o.base, wrappers...),
	})
}

func (app *Application) initServices(o options) {
	tickets := confirm.NewBook(app.cfg.ConfirmTTL, o.now)

	app.Cart = cart.New(app.Client, tickets, app.logger)
	app.Orders = order.NewService(app.Client, app.Session, app.Cart,
		order.WithTickets(tickets),
		order.WithLogger(app.logger),
	)
	app.Account = account.NewService(app.Client, app.Session, tickets)
	app.Routes = authz.NewRouter(authz.New(app.Session, authz.Routes), app.Nav)
}

// Bootstrap loads the stored credential and starts dropping the cart
// whenever the session ends.
func (app *Application) Bootstrap(ctx context.Context) error {
	if app.stop != nil {
		return errors.New("app: already bootstrapped")
	}
	if err := app.Session.RefreshFromStorage(ctx); err != nil {
		return err
	}

	ch, cancel := app.Session.Session().Subscribe()
	app.stop, app.done = cancel, make(chan struct{})
	go func() {
		defer close(app.done)
		for claims := range ch {
			if claims == nil && app.Cart.Current() != nil {
				app.Cart.Reset()
			}
		}
	}()
	return nil
}

// Close stops background work and releases the credential slot.
func (app *Application) Close() error {
	if app.stop != nil {
		app.stop()
		<-app.done
	}

	var errs []error
	for _, c := range app.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Navigate moves to path if the current session may enter it.
func (app *Application) Navigate(path string) bool {
	return app.Routes.Navigate(path)
}

// Logger is the application logger.
func (app *Application) Logger() *slog.Logger { return app.logger }
