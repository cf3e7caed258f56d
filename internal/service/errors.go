package service

import "errors"

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrNotFound           = errors.New("record not found")
	ErrNotOwner           = errors.New("only the author may modify this review")
	ErrCaptchaFailed      = errors.New("anti-abuse verification failed")
	ErrBadAdminPassword   = errors.New("invalid admin password")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
	ErrTextTooLong        = errors.New("comment exceeds the maximum length")
	ErrInvalidSlug        = errors.New("slug must look like restaurang/<lowercase-hyphenated-name>")
	ErrInvalidTag         = errors.New("unknown category tag")
	ErrSlugTaken          = errors.New("slug is already in use")
)
