package validate_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/shopfront/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name            string `json:"name" validate:"notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

type checkoutForm struct {
	Address string `json:"address" validate:"notblank"`
	Phone   string `json:"phonenumber" validate:"notblank,phone"`
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	err := validate.Struct(signupForm{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
}

func TestStructCollectsEveryField(t *testing.T) {
	t.Parallel()

	err := validate.Struct(signupForm{
		Name:            "   ",
		Email:           "not-an-email",
		Password:        "123",
		ConfirmPassword: "1234",
	})

	var ve *validate.Error
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 4)

	require.Equal(t, "name is a required field", ve.Field("name"))
	require.Equal(t, "email must be a valid email address", ve.Field("email"))
	require.Equal(t, "password must be at least 6 characters in length", ve.Field("password"))
	require.True(t, validate.HasField(err, "confirmPassword"))
	require.False(t, validate.HasField(err, "missing"))
}

func TestPhone(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"0123456789":        true,
		"012 345 6789":      true,
		"012345678901234":   true,
		"0123456789012345":  false,
		"012345678":         false,
		"+61123456789":      false,
		"01234abc89":        false,
		"\t0123456789\n":    true,
	}
	for in, want := range cases {
		require.Equal(t, want, validate.IsPhone(in), "phone %q", in)
	}

	err := validate.Struct(checkoutForm{Address: "1 Road", Phone: "12"})
	require.Equal(t, "phonenumber must be a valid phone number", err.(*validate.Error).Field("phonenumber"))
}

func TestNilTarget(t *testing.T) {
	t.Parallel()

	err := validate.Struct(nil)
	require.Error(t, err)
	require.False(t, validate.HasField(err, "x"))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	val := validate.New()

	t.Run("empty tag is refused", func(t *testing.T) {
		t.Parallel()
		err := val.Register("", "{0} is odd", func(validator.FieldLevel) bool { return true })
		require.Error(t, err)
	})

	t.Run("custom tag gets its message", func(t *testing.T) {
		t.Parallel()
		v := validate.New()
		require.NoError(t, v.Register("even", "{0} must be even", func(fl validator.FieldLevel) bool {
			return fl.Field().Int()%2 == 0
		}))

		type form struct {
			Count int `json:"count" validate:"even"`
		}
		require.NoError(t, v.Struct(form{Count: 2}))

		err := v.Struct(form{Count: 3})
		require.True(t, validate.HasField(err, "count"))
		require.ErrorContains(t, err, "count must be even")
	})
}

func TestNewRegistersBuiltinTags(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { validate.New() })
}
