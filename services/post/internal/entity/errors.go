package entity

import "errors"

var (
	// ErrValidation covers malformed block input: duplicate block uuids,
	// uuids that do not belong to the post, missing required fields.
	ErrValidation = errors.New("invalid block input")

	ErrPostNotFound = errors.New("post not found")
	ErrFileNotFound = errors.New("file not found")

	// ErrForbidden is returned when the acting user is not the post's author.
	ErrForbidden = errors.New("user is not the author of this post")

	// ErrIntegrity signals a read-time invariant violation, e.g. a media
	// block with no primary file association. Never repaired silently.
	ErrIntegrity = errors.New("post integrity violation")
)
