package backend

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/shopfront/api/shop" // Swagger docs
	"github.com/aussiebroadwan/shopfront/pkg/cryptox"
	"github.com/aussiebroadwan/shopfront/pkg/httpx"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	store        *Store
	signer       *jwtx.EdDSASigner
	verifier     jwtx.Decoder
	hasher       *cryptox.Hasher
	tokenTTL     time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	// Now is the clock used for token issue and expiry checks.
	Now func() time.Time

	// Rate limits applied by ApplyRoutes.
	LoginLimit httpx.RateLimitConfig
	APILimit   httpx.RateLimitConfig
}

func NewRouter(
	st *Store,
	signer *jwtx.EdDSASigner,
	hasher *cryptox.Hasher,
	tokenTTL time.Duration,
	buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		store:        st,
		signer:       signer,
		verifier:     jwtx.NewEdDSAVerifier(signer.Public()),
		hasher:       hasher,
		tokenTTL:     tokenTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		Now:          time.Now,
		LoginLimit:   httpx.LoginLimit,
		APILimit:     httpx.APILimit,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCatalog()
	r.registerCart()
	r.registerOrders()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Shopfront Reference Backend API
//	@version					0.1.0
//	@description				In-memory storefront backend. Every body is {message, data}.
//	@BasePath					/
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Credential from /auth/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// user chains authentication and a per-user limit in front of h.
func (r *Router) user(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.Authn(r.verifier, r.now),
		httpx.RateLimit(r.APILimit, httpx.UserKeyExtractor),
	)
}

// admin is user plus the admin role.
func (r *Router) admin(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h,
		httpx.Authn(r.verifier, r.now),
		httpx.RequireRole(jwtx.RoleAdmin),
		httpx.RateLimit(r.APILimit, httpx.UserKeyExtractor),
	)
}

func (r *Router) public(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.RateLimit(r.APILimit, httpx.IPKeyExtractor))
}

func (r *Router) now() time.Time { return r.Now() }

func (r *Router) registerAuth() {
	h := &AuthHandler{Store: r.store, Signer: r.signer, Hasher: r.hasher, TTL: r.tokenTTL, Now: r.now}

	// Credential endpoints share the strict per-IP limit.
	strict := httpx.RateLimit(r.LoginLimit, httpx.IPKeyExtractor)
	r.Mux.Handle("POST /auth/login", httpx.Chain(http.HandlerFunc(h.HandleLogin), strict))
	r.Mux.Handle("POST /auth/signup", httpx.Chain(http.HandlerFunc(h.HandleSignup), strict))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{Store: r.store}

	r.Mux.Handle("GET /product", r.public(h.HandleList))
	r.Mux.Handle("GET /product/{slug}", r.public(h.HandleGet))
}

func (r *Router) registerCart() {
	h := &CartHandler{Store: r.store}

	r.Mux.Handle("GET /cart", r.user(h.HandleGet))
	r.Mux.Handle("POST /cart", r.user(h.HandleAdd))
	r.Mux.Handle("POST /cart/remove", r.user(h.HandleRemove))
	r.Mux.Handle("DELETE /cart/clear", r.user(h.HandleClear))
}

func (r *Router) registerOrders() {
	h := &OrderHandler{Store: r.store}

	r.Mux.Handle("POST /order", r.user(h.HandleCreate))
	r.Mux.Handle("GET /order", r.user(h.HandleListMine))
	r.Mux.Handle("GET /order/all", r.admin(h.HandleListAll))
	r.Mux.Handle("GET /order/stats", r.user(h.HandleStats))
	r.Mux.Handle("GET /order/{id}", r.user(h.HandleGet))
	r.Mux.Handle("PUT /order/{id}", r.user(h.HandleUpdate))
	r.Mux.Handle("PUT /order/{id}/cancel", r.user(h.HandleCancel))
	r.Mux.Handle("PUT /order/{id}/status", r.admin(h.HandleSetStatus))
}

func (r *Router) registerUsers() {
	h := &UserHandler{Store: r.store, Hasher: r.hasher}

	r.Mux.Handle("GET /user/me/profile", r.user(h.HandleProfile))
	r.Mux.Handle("GET /user/{$}", r.admin(h.HandleList))
	r.Mux.Handle("GET /user/{id}", r.user(h.HandleGet))
	r.Mux.Handle("PUT /user/{id}", r.user(h.HandleUpdate))
	r.Mux.Handle("PUT /user/{id}/password", r.user(h.HandlePassword))
	r.Mux.Handle("DELETE /user/{id}", r.admin(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", r.public(LivezHandler(r.startTime, r.buildVersion)))
}

// actorFrom reads the caller installed by httpx.Authn.
func actorFrom(req *http.Request) Actor {
	c, _ := httpx.ClaimsFromContext(req.Context())
	return Actor{ID: c.ID, Role: c.Role}
}

// decodeValid decodes the JSON body into v and validates it. On failure
// the 400 response has already been written.
func decodeValid(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := httpx.DecodeJSON(req, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := validate.Default.StructCtx(req.Context(), v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
