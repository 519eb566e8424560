package migration

import "errors"

var (
	// ErrExportIDMismatch is returned when a store-assigned ID differs from the row's export ID.
	ErrExportIDMismatch = errors.New("export id mismatch")
	// ErrTargetNotEmpty is returned when the target store already holds authorities.
	ErrTargetNotEmpty = errors.New("target store is not empty")
	// ErrStageDependency is returned when a stage runs before one it depends on.
	ErrStageDependency = errors.New("stage dependency not satisfied")
)
