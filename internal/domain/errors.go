package domain

import "errors"

var (
	ErrMalformedIdentifier = errors.New("malformed item identifier")
	ErrTransport           = errors.New("stash transport failure")
	ErrUnauthorized        = errors.New("stash access unauthorized")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionIncomplete   = errors.New("session incomplete")
	ErrSecretNotFound      = errors.New("secret not found")
)
