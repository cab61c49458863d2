package backend

import "fmt"

// RequestError is a non-2xx response from the backend. Body carries the
// backend's message verbatim so callers can surface it to the user.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}
