package domain

import "errors"

var (
	ErrDatabase = errors.New("database-error")
	ErrNotFound = errors.New("not-found")
)
