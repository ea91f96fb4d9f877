package domain

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ValidationError: ошибка проверки поля формы до какого-либо сетевого вызова.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(v))
	for _, e := range v {
		out = append(out, e)
	}
	return out
}

func (v *ValidationErrors) Add(field, msg string) {
	*v = append(*v, &ValidationError{Field: field, Msg: msg})
}

// Required добавляет ошибку, если значение пустое после TrimSpace.
func (v *ValidationErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// Err возвращает nil, если ошибок нет.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

func OneOf[T ~string](v T, allowed ...T) bool { return slices.Contains(allowed, v) }

// SchemaError: ответ сервера нарушает схему ресурса.
type SchemaError struct {
	Resource string
	Field    string
	Msg      string
}

func (e *SchemaError) Error() string {
	return e.Resource + "." + e.Field + ": " + e.Msg
}
