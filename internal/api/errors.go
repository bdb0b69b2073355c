package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSession is returned by authenticated calls when no token is configured.
	ErrNoSession = errors.New("no authenticated session")
)

// APIError is a non-2xx response from the collaborator.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// Message extracts the collaborator-provided message from err, if any.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(op string, status int, body []byte) error {
	var eb errorBody
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		msg = eb.Message
		if msg == "" {
			msg = eb.Error
		}
	}
	return &APIError{Op: op, Status: status, Message: strings.TrimSpace(msg)}
}
