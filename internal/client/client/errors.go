package client

import (
	"errors"

	"google.golang.org/grpc/codes"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ServerError is a request the server understood and rejected.
type ServerError struct {
	Code    codes.Code
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
