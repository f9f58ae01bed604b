package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("all fields are required")
	ErrPasswordTooLong    = fmt.Errorf("%w: password must be at most 72 bytes", ErrValidation)
	ErrConflict           = errors.New("user already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)
