package backend

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/shopfront/pkg/cryptox"
	"github.com/aussiebroadwan/shopfront/pkg/httpx"
	"github.com/aussiebroadwan/shopfront/pkg/slogx"
)

type updateUserBody struct {
	Name  string `json:"name" validate:"omitempty,notblank,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

type updatePasswordBody struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type UserHandler struct {
	Store  *Store
	Hasher *cryptox.Hasher
}

// HandleProfile returns the caller's account.
//
//	@Summary	My profile
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is User"
//	@Router		/user/me/profile [get].
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.Store.User(actorFrom(r).ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "Profile fetched successfully", u)
}

// HandleList returns every account.
//
//	@Summary	List users
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope	"data is []User"
//	@Failure	403	{object}	httpx.Envelope
//	@Router		/user/ [get].
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, http.StatusOK, "Users fetched successfully", h.Store.Users())
}

// HandleGet returns one account to itself or an admin.
//
//	@Summary	Get user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string			true	"user id"
//	@Success	200	{object}	httpx.Envelope	"data is User"
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/user/{id} [get].
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !selfOrAdmin(r, id) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	u, err := h.Store.User(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "User fetched successfully", u)
}

// HandleUpdate changes name or email.
//
//	@Summary	Update user
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"user id"
//	@Param		body	body		updateUserBody	true	"fields to change"
//	@Success	200		{object}	httpx.Envelope	"data is User"
//	@Failure	403		{object}	httpx.Envelope
//	@Failure	409		{object}	httpx.Envelope
//	@Router		/user/{id} [put].
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !selfOrAdmin(r, id) {
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	var body updateUserBody
	if !decodeValid(w, r, &body) {
		return
	}

	u, err := h.Store.UpdateUser(id, body.Name, body.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "User updated successfully", u)
}

// HandlePassword changes the caller's own password.
//
//	@Summary	Change password
//	@Tags		Users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"user id"
//	@Param		body	body		updatePasswordBody	true	"current and new password"
//	@Success	200		{object}	httpx.Envelope
//	@Failure	400		{object}	httpx.Envelope
//	@Failure	403		{object}	httpx.Envelope
//	@Router		/user/{id}/password [put].
func (h *UserHandler) HandlePassword(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if actorFrom(r).ID != id {
		httpx.WriteError(w, http.StatusForbidden, "forbidden")
		return
	}

	var body updatePasswordBody
	if !decodeValid(w, r, &body) {
		return
	}

	rec, err := h.Store.userRecord(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Hasher.Verify(body.CurrentPassword, rec.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			writeError(w, r, err)
			return
		}
		// A form error, not an authentication failure.
		httpx.WriteError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := h.Hasher.Hash(body.NewPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Store.SetPasswordHash(id, hash); err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("password changed", "user_id", id)
	httpx.WriteData(w, http.StatusOK, "Password updated successfully", nil)
}

// HandleDelete removes an account.
//
//	@Summary	Delete user
//	@Tags		Users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string			true	"user id"
//	@Success	200	{object}	httpx.Envelope
//	@Failure	403	{object}	httpx.Envelope
//	@Failure	404	{object}	httpx.Envelope
//	@Router		/user/{id} [delete].
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if actorFrom(r).ID == id {
		httpx.WriteError(w, http.StatusBadRequest, "Cannot delete own account")
		return
	}
	if err := h.Store.DeleteUser(id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, "User deleted successfully", nil)
}

func selfOrAdmin(r *http.Request, id string) bool {
	a := actorFrom(r)
	return a.ID == id || a.admin()
}
