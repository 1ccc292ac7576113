package entity

import "errors"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrForbidden    = errors.New("forbidden")
)
