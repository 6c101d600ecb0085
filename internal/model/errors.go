package model

import "errors"

// Domain errors
var (
	ErrRealmNotFound   = errors.New("realm not found")
	ErrRealmExists     = errors.New("realm already exists")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrAccountNotFound = errors.New("account not found")
)
