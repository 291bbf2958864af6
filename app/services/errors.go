// Package services holds the storefront's business rules. Services sit
// between controllers and repositories and return sentinel errors that
// controllers translate to HTTP statuses.
package services

import "errors"

var (
	// ErrNotFound means the requested record does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRole means the requested role is not BUYER, SELLER or ADMIN.
	ErrInvalidRole = errors.New("invalid role")

	// ErrForbidden means the caller does not own the targeted resource.
	ErrForbidden = errors.New("forbidden")

	// ErrOwnReview means a seller tried to review their own product.
	ErrOwnReview = errors.New("cannot review your own product")

	// ErrDuplicateReview means the caller already reviewed this product.
	ErrDuplicateReview = errors.New("you have already reviewed this product")

	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials means login failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
