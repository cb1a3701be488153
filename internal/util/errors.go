package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email is already registered")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrItemNotFound            = errors.New("content item not found")
	ErrInvalidTransition       = errors.New("item is not pending review")
	ErrRejectionReasonRequired = errors.New("a rejection reason is required")
	ErrNoSourceMaterial        = errors.New("no source material provided")
)
