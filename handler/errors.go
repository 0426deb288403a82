package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrMalformedBody indicates a request body that could not be decoded.
	ErrMalformedBody = errors.New("malformed request body")
)
