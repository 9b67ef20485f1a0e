package model

import "errors"

// Failure classes surfaced to the CLI. Callers wrap these with context and
// the CLI maps them to exit codes with errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidFormat     = errors.New("invalid time format")
	ErrInvalidRange      = errors.New("invalid time range")
	ErrMissingDependency = errors.New("missing dependency")
	ErrDownloadFailed    = errors.New("download failed")
	ErrEncodeFailed      = errors.New("encode failed")
	ErrPublishFailed     = errors.New("publish failed")
)
