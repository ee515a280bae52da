package service

import (
	"github.com/pkg/errors"
)

var (
	ErrBadRequest             = errors.New("bad request")
	ErrInvalidCredentials     = errors.New("the user was not found or the password is incorrect")
	ErrEmailAlreadyRegistered = errors.New("the email is already registered")
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrInvalidToken           = errors.New("the user referenced by the token was not found")
	ErrNotFound               = errors.New("the bookmark has not been found")
	ErrInternal               = errors.New("internal error")
)
