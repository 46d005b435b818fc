package repository

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrInvalidInput    = errors.New("invalid input data")
	ErrEmptyProductSet = errors.New("order requires at least one product")
)
