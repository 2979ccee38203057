// Package logger provides slog attribute helpers shared across the module.
//
// Helpers follow the empty-Attr pattern for nil safety: passing a nil error
// or zero value yields an attribute slog silently drops, so call sites never
// need explicit nil checks:
//
//	log.Warn("refresh failed", logger.Error(err), logger.Duration(elapsed))
package logger
