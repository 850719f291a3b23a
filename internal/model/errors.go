package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("user not found")
	ErrGroupNotFound          = errors.New("group not found")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrExceededMaximumResults = errors.New("search exceeded maximum allowed results")
	ErrUnsupportedOperation   = errors.New("operation not supported")
	ErrInvalidGroup           = errors.New("invalid group implementation")
	ErrReadOnly               = errors.New("user dao is read only")
	ErrInvalidUser            = errors.New("invalid user")
)

// InvalidPasswordError is returned when the identity provider rejects a
// password because of its password policy.
type InvalidPasswordError struct {
	Message string
}

func (e *InvalidPasswordError) Error() string {
	if e.Message == "" {
		return "invalid password"
	}
	return fmt.Sprintf("invalid password: %s", e.Message)
}

// ProviderError is a failure reported by the identity provider.
type ProviderError struct {
	Code    string
	Summary string
	Causes  []string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error %s: %s", e.Code, e.Summary)
}

// ProviderOperationError wraps an identity provider failure that has no
// domain specific meaning.
type ProviderOperationError struct {
	Err error
}

func (e *ProviderOperationError) Error() string {
	return fmt.Sprintf("identity provider operation failed: %v", e.Err)
}

func (e *ProviderOperationError) Unwrap() error {
	return e.Err
}
