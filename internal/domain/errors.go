package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrMissingCredential = errors.New("generation credential not configured")
	ErrSentinelPreset    = errors.New("sentinel preset is reserved")
	ErrEmptySelection    = errors.New("at least one aspect ratio must stay selected")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
