package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrUnknownBackend     = errors.New("unknown backend")
	ErrUnknownAuthScheme  = errors.New("unknown auth scheme")
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrInvalidConfigValue = errors.New("invalid value")
)

// Argument errors.
var (
	ErrInvalidRepoSlug   = errors.New("repository must be given as owner/name")
	ErrInvalidIssueNum   = errors.New("issue number must be a positive integer")
	ErrTitleRequired     = errors.New("--title flag is required")
	ErrPasswordRequired  = errors.New("password is required for basic auth")
	ErrNotATerminal      = errors.New("cannot prompt for password: stdin is not a terminal")
	ErrSearchQueryNeeded = errors.New("search query is required")
)
