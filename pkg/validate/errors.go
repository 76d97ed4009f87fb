package validate

import (
	"errors"
	"strings"
)

// FieldError is one failing field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error collects every failing field of a form.
type Error struct {
	Fields []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message for field, or "".
func (e *Error) Field(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// HasField reports whether err is a *Error naming field.
func HasField(err error, field string) bool {
	var ve *Error
	return errors.As(err, &ve) && ve.Field(field) != ""
}
