// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Aurras Contributors

// Package errutil bridges oops errors and structured logging.
package errutil

import (
	"github.com/samber/oops"
)

// ErrorLogger is the subset of *slog.Logger that LogError needs.
type ErrorLogger interface {
	Error(msg string, args ...any)
}

// Attrs returns slog key/value pairs describing err. For oops errors the
// code and context are included alongside the message.
func Attrs(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err}
	}
	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}

// LogError logs err at error level with its structured attributes, followed
// by any extra key/value pairs.
func LogError(logger ErrorLogger, msg string, err error, args ...any) {
	logger.Error(msg, append(Attrs(err), args...)...)
}
