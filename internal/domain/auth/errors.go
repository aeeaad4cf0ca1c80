package auth

import "errors"

var (
	ErrInvalidToken    = errors.New("invalid session token")
	ErrEmptyToken      = errors.New("session token must not be empty")
	ErrPersistIdentity = errors.New("persist session identity")
)
