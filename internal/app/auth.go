package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/shopfront/internal/nav"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/aussiebroadwan/shopfront/pkg/validate"
)

// LoginForm is the login screen.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupForm is the registration screen.
type SignupForm struct {
	Name            string `json:"name" validate:"notblank,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Login validates the form, exchanges it for a credential and establishes
// the session, which navigates to the actor's landing page.
func (app *Application) Login(ctx context.Context, form LoginForm) (jwtx.Claims, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Default.StructCtx(ctx, form); err != nil {
		return jwtx.Claims{}, err
	}

	token, err := app.Client.Login(ctx, shopsdk.LoginRequest{Email: form.Email, Password: form.Password})
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("login: %w", err)
	}
	return app.Session.Establish(ctx, token)
}

// Signup registers an account and sends the user to the login screen. It
// does not log in.
func (app *Application) Signup(ctx context.Context, form SignupForm) (*shopsdk.User, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validate.Default.StructCtx(ctx, form); err != nil {
		return nil, err
	}

	u, err := app.Client.Signup(ctx, shopsdk.SignupRequest{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	app.Nav.Navigate(nav.Login)
	return u, nil
}

// Logout ends the session and drops the cart.
func (app *Application) Logout(ctx context.Context) error {
	err := app.Session.Logout(ctx)
	app.Cart.Reset()
	return err
}
