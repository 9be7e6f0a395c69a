package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError is returned when the prediction API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction API returned %s", e.Status)
}

// StatusText returns the reason phrase of the response, e.g. "Bad Request".
func (e *StatusError) StatusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// AsStatusError extracts a *StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
