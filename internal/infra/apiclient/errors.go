package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrFetch: неуспешное чтение (GET).
	ErrFetch = errors.New("fetch failed")
	// ErrMutation: неуспешная запись (POST/PUT/DELETE).
	ErrMutation = errors.New("mutation failed")
)

// RequestError описывает неуспешный запрос: статус не 2xx или сбой транспорта (Status == 0).
type RequestError struct {
	Method   string
	Endpoint string
	Status   int
	Detail   string
	Err      error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Endpoint, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Endpoint, e.Status)
}

func (e *RequestError) Unwrap() []error {
	kind := ErrMutation
	if e.Method == http.MethodGet {
		kind = ErrFetch
	}
	if e.Err != nil {
		return []error{kind, e.Err}
	}
	return []error{kind}
}

// ParseError: ответ сервера не разобрался или не прошёл проверку схемы.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StatusOf возвращает HTTP-статус из цепочки ошибок, 0 если его нет.
func StatusOf(err error) int {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
