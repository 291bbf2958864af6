// Package controllers holds the HTTP handlers. Each controller wires a
// service and translates its sentinel errors into the JSON error envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/crafthaven/app/services"
	"github.com/shashiranjanraj/crafthaven/pkg/auth"
	"github.com/shashiranjanraj/crafthaven/pkg/ctx"
	"github.com/shashiranjanraj/crafthaven/pkg/logger"
)

// freshToken issues a token reflecting the account's current role.
func freshToken(userID uint, role string) (string, error) {
	return auth.GenerateToken(userID, role)
}

// fail translates a service error into the right status code.
// Anything unexpected logs the detail and answers with a generic 500.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrInvalidRole):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrOwnReview),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrEmailTaken):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		// Records the caller does not own answer like absent ones, so
		// probing for other sellers' product ids reveals nothing.
		c.NotFound()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Internal()
	}
}
