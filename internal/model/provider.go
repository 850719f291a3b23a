package model

import (
	"context"
	"iter"
	"time"
)

// ProviderUserStatus is the lifecycle status of an identity provider account.
type ProviderUserStatus string

const (
	StatusStaged          ProviderUserStatus = "STAGED"
	StatusProvisioned     ProviderUserStatus = "PROVISIONED"
	StatusActive          ProviderUserStatus = "ACTIVE"
	StatusRecovery        ProviderUserStatus = "RECOVERY"
	StatusPasswordExpired ProviderUserStatus = "PASSWORD_EXPIRED"
	StatusLockedOut       ProviderUserStatus = "LOCKED_OUT"
	StatusSuspended       ProviderUserStatus = "SUSPENDED"
	StatusDeprovisioned   ProviderUserStatus = "DEPROVISIONED"
)

// IdentityProvider defines the operations consumed from the identity provider.
type IdentityProvider interface {
	GetUser(ctx context.Context, id string) (*ProviderUser, error)
	// ListUsers lazily pages through users matching the native search filter.
	// An empty search lists every user.
	ListUsers(ctx context.Context, search string) iter.Seq2[*ProviderUser, error]
	CreateUser(ctx context.Context, req CreateUserRequest) (*ProviderUser, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) error
	SuspendUser(ctx context.Context, id string) error
	UnsuspendUser(ctx context.Context, id string) error
	DeactivateUser(ctx context.Context, id string) error

	GetGroup(ctx context.Context, id string) (*ProviderGroup, error)
	ListGroups(ctx context.Context, q string) ([]ProviderGroup, error)
	ListGroupUsers(ctx context.Context, groupID string) iter.Seq2[*ProviderUser, error]
	ListUserGroups(ctx context.Context, userID string) ([]ProviderGroup, error)
	AddUserToGroup(ctx context.Context, groupID, userID string) error
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) error
}

// ProviderUser is a user as stored by the identity provider.
type ProviderUser struct {
	ID        string
	Status    ProviderUserStatus
	Profile   map[string]any
	LastLogin *time.Time
}

// ProviderGroup is a group as stored by the identity provider.
type ProviderGroup struct {
	ID   string
	Type string
	Name string
}

// ProfilePatch maps profile keys to their new values. A nil value clears the key.
type ProfilePatch map[string]any

// UserPatch is a single atomic write against a provider user.
type UserPatch struct {
	Profile  ProfilePatch
	Password *string
}

// Empty reports whether the patch would not change anything.
func (p UserPatch) Empty() bool {
	return len(p.Profile) == 0 && p.Password == nil
}

// CreateUserRequest contains parameters to create a provider user.
type CreateUserRequest struct {
	Profile  ProfilePatch
	Password string
	GroupIDs []string
}
