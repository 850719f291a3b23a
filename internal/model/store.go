package model

import "context"

// FallbackStore is the legacy user directory holding attributes the identity
// provider cannot represent.
type FallbackStore interface {
	FindByTheKeyGUID(ctx context.Context, guid string, includeDeactivated bool) (*User, error)
	// Save returns ErrUserAlreadyExists if a record with the same GUID exists.
	Save(ctx context.Context, user *User) error
	// Update writes the fields of user belonging to attrs onto the stored record of
	// original. It accepts any attribute group, not only those owned by the store.
	Update(ctx context.Context, original, user *User, attrs ...Attr) error
}

// UserListener is notified after the primary user store changes or loads a user.
type UserListener interface {
	OnUserLoaded(ctx context.Context, user *User) error
	OnUserCreated(ctx context.Context, user *User) error
	OnUserUpdated(ctx context.Context, user *User, attrs ...Attr) error
}
