// Package account covers self-service profile and password changes and
// the admin user list.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/shopfront/internal/confirm"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// ActionDeleteUser is the confirmation action for deleting an account.
const ActionDeleteUser = "user.delete"

var (
	// ErrNoCredential is returned when an operation needs the caller's
	// identity and no credential is held.
	ErrNoCredential = errors.New("account: no token available")

	// ErrNotPermitted is returned for admin operations by non-admins.
	ErrNotPermitted = errors.New("account: not permitted")

	// ErrSelfDelete is returned when an admin tries to delete their own
	// account.
	ErrSelfDelete = errors.New("account: cannot delete own account")

	ErrNothingToUpdate = errors.New("account: nothing to update")
)

// Backend is the part of shopsdk.Client the service calls.
type Backend interface {
	GetProfile(ctx context.Context) (*shopsdk.User, error)
	UpdateUser(ctx context.Context, id string, req shopsdk.UpdateUserRequest) (*shopsdk.User, error)
	UpdatePassword(ctx context.Context, id string, req shopsdk.UpdatePasswordRequest) (string, error)
	ListUsers(ctx context.Context) ([]shopsdk.User, error)
	GetUser(ctx context.Context, id string) (*shopsdk.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Identity is the session as seen from here. session.Manager satisfies it.
type Identity interface {
	CurrentClaims() (jwtx.Claims, bool)
	IsAuthenticatedAdmin() bool
}

// ProfileForm edits the caller's profile. Empty fields are left as is.
type ProfileForm struct {
	Name  string `json:"name" validate:"omitempty,notblank,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
}

// PasswordForm changes the caller's password.
type PasswordForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// Service implements the account operations.
type Service struct {
	backend Backend
	who     Identity
	tickets *confirm.Book
	val     *validate.Validator
}

// NewService creates a Service. tickets may be nil.
func NewService(backend Backend, who Identity, tickets *confirm.Book) *Service {
	if tickets == nil {
		tickets = confirm.NewBook(0, nil)
	}
	return &Service{backend: backend, who: who, tickets: tickets, val: validate.Default}
}

// Profile returns the caller's account.
func (s *Service) Profile(ctx context.Context) (*shopsdk.User, error) {
	if _, err := s.subject(); err != nil {
		return nil, err
	}
	u, err := s.backend.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("account profile: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the caller's name or email.
func (s *Service) UpdateProfile(ctx context.Context, form ProfileForm) (*shopsdk.User, error) {
	id, err := s.subject()
	if err != nil {
		return nil, err
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if form.Name == "" && form.Email == "" {
		return nil, ErrNothingToUpdate
	}
	if err := s.val.StructCtx(ctx, form); err != nil {
		return nil, err
	}

	u, err := s.backend.UpdateUser(ctx, id, shopsdk.UpdateUserRequest{Name: form.Name, Email: form.Email})
	if err != nil {
		return nil, fmt.Errorf("account update: %w", err)
	}
	return u, nil
}

// ChangePassword changes the caller's password and returns the backend's
// confirmation message.
func (s *Service) ChangePassword(ctx context.Context, form PasswordForm) (string, error) {
	id, err := s.subject()
	if err != nil {
		return "", err
	}
	if err := s.val.StructCtx(ctx, form); err != nil {
		return "", err
	}

	msg, err := s.backend.UpdatePassword(ctx, id, shopsdk.UpdatePasswordRequest(form))
	if err != nil {
		return "", fmt.Errorf("account password: %w", err)
	}
	return msg, nil
}

// Users lists every account.
func (s *Service) Users(ctx context.Context) ([]shopsdk.User, error) {
	if !s.who.IsAuthenticatedAdmin() {
		return nil, ErrNotPermitted
	}
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("account list: %w", err)
	}
	return users, nil
}

// User fetches one account.
func (s *Service) User(ctx context.Context, id string) (*shopsdk.User, error) {
	if !s.who.IsAuthenticatedAdmin() {
		return nil, ErrNotPermitted
	}
	u, err := s.backend.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account get: %w", err)
	}
	return u, nil
}

// RequestDelete starts a two-step deletion of account id.
func (s *Service) RequestDelete(id string) (confirm.Ticket, error) {
	if !s.who.IsAuthenticatedAdmin() {
		return confirm.Ticket{}, ErrNotPermitted
	}
	if me, _ := s.subject(); me == id {
		return confirm.Ticket{}, ErrSelfDelete
	}
	return s.tickets.Request(ActionDeleteUser, id), nil
}

// ConfirmDelete redeems a RequestDelete ticket.
func (s *Service) ConfirmDelete(ctx context.Context, ticketID string) error {
	t, err := s.tickets.Redeem(ticketID, ActionDeleteUser)
	if err != nil {
		return err
	}
	if !s.who.IsAuthenticatedAdmin() {
		return ErrNotPermitted
	}
	if err := s.backend.DeleteUser(ctx, t.Target); err != nil {
		return fmt.Errorf("account delete: %w", err)
	}
	return nil
}

// AbortDelete drops a pending deletion.
func (s *Service) AbortDelete(ticketID string) { s.tickets.Abort(ticketID) }

func (s *Service) subject() (string, error) {
	c, ok := s.who.CurrentClaims()
	if !ok || c.ID == "" {
		return "", ErrNoCredential
	}
	return c.ID, nil
}
