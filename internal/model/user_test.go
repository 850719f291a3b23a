package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name: "valid user",
			user: User{TheKeyGUID: uuid.NewString(), Email: "john@example.com"},
		},
		{
			name:    "missing guid",
			user:    User{Email: "john@example.com"},
			wantErr: true,
		},
		{
			name: "upper case guid",
			user: User{TheKeyGUID: "6B4C9D44-4C2B-4C1F-9C33-6DD7C2F8A0E1", Email: "john@example.com"},
		},
		{
			name:    "braced guid",
			user:    User{TheKeyGUID: "{6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1}", Email: "john@example.com"},
			wantErr: true,
		},
		{
			name:    "missing email",
			user:    User{TheKeyGUID: uuid.NewString()},
			wantErr: true,
		},
		{
			name: "deactivated without email",
			user: User{TheKeyGUID: uuid.NewString(), Deactivated: true},
		},
		{
			name:    "deactivated with malformed email",
			user:    User{TheKeyGUID: uuid.NewString(), Email: "not-an-email", Deactivated: true},
			wantErr: true,
		},
		{
			name:    "malformed email",
			user:    User{TheKeyGUID: uuid.NewString(), Email: "not-an-email"},
			wantErr: true,
		},
		{
			name:    "malformed proxy address",
			user:    User{TheKeyGUID: uuid.NewString(), Email: "john@example.com", ProxyAddresses: []string{"nope"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidUser))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidGUID(t *testing.T) {
	assert.True(t, ValidGUID("6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1"))
	assert.True(t, ValidGUID("6B4C9D44-4C2B-4C1F-9C33-6DD7C2F8A0E1"))
	assert.False(t, ValidGUID("urn:uuid:6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1"))
	assert.False(t, ValidGUID("6b4c9d444c2b4c1f9c336dd7c2f8a0e1"))
	assert.False(t, ValidGUID(""))
}

func TestUser_SecurityAnswer(t *testing.T) {
	t.Run("hashed answer is normalised", func(t *testing.T) {
		u := User{}
		require.NoError(t, u.SetSecurityAnswer("  Blue ", true))
		assert.NotEqual(t, "  Blue ", u.SecurityAnswer)
		assert.True(t, u.CheckSecurityAnswer("blue"))
		assert.False(t, u.CheckSecurityAnswer("red"))
	})

	t.Run("unhashed answer is copied", func(t *testing.T) {
		src := User{}
		require.NoError(t, src.SetSecurityAnswer("blue", true))

		dst := User{}
		require.NoError(t, dst.SetSecurityAnswer(src.SecurityAnswer, false))
		assert.Equal(t, src.SecurityAnswer, dst.SecurityAnswer)
		assert.True(t, dst.CheckSecurityAnswer("BLUE"))
	})

	t.Run("no answer never matches", func(t *testing.T) {
		u := User{}
		assert.False(t, u.CheckSecurityAnswer(""))
	})
}

func TestUser_PreferredNameOrFirst(t *testing.T) {
	assert.Equal(t, "John", (&User{FirstName: "John"}).PreferredNameOrFirst())
	assert.Equal(t, "Jack", (&User{FirstName: "John", PreferredName: "Jack"}).PreferredNameOrFirst())
}
