// Package validate checks form structs locally before they reach the
// backend. Messages are English translations from go-playground/validator.
package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// Validator wraps a validator.Validate with an English translator and the
// storefront's custom tags.
type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

// Default is the shared instance used by Struct.
var Default = New()

// New builds a Validator. Field names in messages are the JSON names. It
// panics if the translations or the built-in custom tags fail to register.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	locale := en.New()
	trans, found := ut.New(locale, locale).GetTranslator("en")
	if !found {
		panic("validate: english translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(fmt.Sprintf("validate: register translations: %v", err))
	}

	val := &Validator{v: v, trans: trans}
	for _, tag := range []struct {
		name, msg string
		fn        validator.Func
	}{
		{"phone", "{0} must be a valid phone number", isPhone},
		{"notblank", "{0} is a required field", isNotBlank},
	} {
		if err := val.Register(tag.name, tag.msg, tag.fn); err != nil {
			panic(err)
		}
	}
	return val
}

// Register adds a custom tag together with its English message. {0} in msg
// is replaced with the field name.
func (val *Validator) Register(tag, msg string, fn validator.Func) error {
	if err := val.v.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("validate: register tag %q: %w", tag, err)
	}
	err := val.v.RegisterTranslation(tag, val.trans,
		func(t ut.Translator) error { return t.Add(tag, msg, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
	if err != nil {
		return fmt.Errorf("validate: register message for %q: %w", tag, err)
	}
	return nil
}

// Struct validates s and returns a *Error listing every failing field.
func (val *Validator) Struct(s any) error {
	return val.StructCtx(context.Background(), s)
}

// StructCtx is Struct with a context for validators that need one.
func (val *Validator) StructCtx(ctx context.Context, s any) error {
	if s == nil {
		return errors.New("validate: nil target")
	}

	err := val.v.StructCtx(ctx, s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(val.trans),
		})
	}
	return out
}

// Struct validates s with Default.
func Struct(s any) error {
	return Default.Struct(s)
}

// NormalizePhone removes all whitespace from a phone number.
func NormalizePhone(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// IsPhone reports whether s is 10 to 15 digits once whitespace is removed.
func IsPhone(s string) bool {
	return phonePattern.MatchString(NormalizePhone(s))
}

func isPhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
