package backend

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/shopfront/pkg/cryptox"
	"github.com/aussiebroadwan/shopfront/pkg/httpx"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupBody struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthHandler struct {
	Store  *Store
	Signer *jwtx.EdDSASigner
	Hasher *cryptox.Hasher
	TTL    time.Duration
	Now    func() time.Time
}

// HandleLogin exchanges email and password for a credential.
//
//	@Summary	Log in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginBody		true	"credentials"
//	@Success	200		{object}	httpx.Envelope	"data is the raw credential"
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	429		{object}	httpx.Envelope
//	@Router		/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var body loginBody
	if !decodeValid(w, r, &body) {
		return
	}

	u, ok := h.Store.userByEmail(body.Email)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := h.Hasher.Verify(body.Password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("password verify failed", "user_id", u.ID, "err", err)
		}
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.Signer.Sign(jwtx.NewClaims(u.ID, u.Name, u.Email, u.Role, h.TTL, h.Now()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info("login", "user_id", u.ID, "role", u.Role)
	httpx.WriteData(w, http.StatusOK, "Login successful", token)
}

// HandleSignup registers a user account.
//
//	@Summary	Sign up
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		signupBody		true	"account"
//	@Success	201		{object}	httpx.Envelope	"data is the created user"
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	409		{object}	httpx.Envelope
//	@Router		/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupBody
	if !decodeValid(w, r, &body) {
		return
	}

	hash, err := h.Hasher.Hash(body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Store.CreateUser(body.Name, body.Email, hash, jwtx.RoleUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteData(w, http.StatusCreated, "User created successfully", u)
}
