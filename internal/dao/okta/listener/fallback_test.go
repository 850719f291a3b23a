package listener

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/idm-okta/internal/mocks"
	"github.com/dtroode/idm-okta/internal/model"
	"github.com/dtroode/idm-okta/internal/testutil"
)

const testGUID = "6b4c9d44-4c2b-4c1f-9c33-6dd7c2f8a0e1"

func TestFallback_OnUserLoaded(t *testing.T) {
	ctx := context.Background()
	fallbackLogin := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	oktaLogin := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	resetTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	stored := &model.User{
		TheKeyGUID:           testGUID,
		Email:                "legacy@example.com",
		FirstName:            "Legacy",
		MFABypassed:          true,
		MFAEncryptedSecret:   "secret",
		MFAIntruderLocked:    true,
		MFAIntruderAttempts:  3,
		MFAIntruderResetTime: &resetTime,
		SignupKey:            "signup",
		ProposedEmail:        "new@example.com",
		ChangeEmailKey:       "change",
		ResetPasswordKey:     "reset",
		SecurityQuestion:     "Favourite colour?",
		SecurityAnswer:       "$2a$10$alreadyhashed",
		EmployeeStatus:       "Active",
		LoginTime:            &fallbackLogin,
	}

	t.Run("overlays fallback fields", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(stored, nil).Once()

		user := &model.User{TheKeyGUID: testGUID, Email: "john@example.com", FirstName: "John"}
		require.NoError(t, NewFallback(store, testutil.MakeNoopLogger()).OnUserLoaded(ctx, user))

		assert.Equal(t, "john@example.com", user.Email)
		assert.Equal(t, "John", user.FirstName)
		assert.True(t, user.MFABypassed)
		assert.Equal(t, "secret", user.MFAEncryptedSecret)
		assert.True(t, user.MFAIntruderLocked)
		assert.Equal(t, 3, user.MFAIntruderAttempts)
		assert.Equal(t, &resetTime, user.MFAIntruderResetTime)
		assert.Equal(t, "signup", user.SignupKey)
		assert.Equal(t, "new@example.com", user.ProposedEmail)
		assert.Equal(t, "change", user.ChangeEmailKey)
		assert.Equal(t, "reset", user.ResetPasswordKey)
		assert.Equal(t, "Favourite colour?", user.SecurityQuestion)
		assert.Equal(t, "$2a$10$alreadyhashed", user.SecurityAnswer)
		assert.Equal(t, "Active", user.EmployeeStatus)
		assert.Equal(t, &fallbackLogin, user.LoginTime)
	})

	t.Run("okta login time wins", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(stored, nil).Once()

		user := &model.User{TheKeyGUID: testGUID, LoginTime: &oktaLogin}
		require.NoError(t, NewFallback(store, testutil.MakeNoopLogger()).OnUserLoaded(ctx, user))

		assert.Equal(t, &oktaLogin, user.LoginTime)
	})

	t.Run("missing fallback record", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(nil, model.ErrNotFound).Once()

		user := &model.User{TheKeyGUID: testGUID, Email: "john@example.com"}
		require.NoError(t, NewFallback(store, testutil.MakeNoopLogger()).OnUserLoaded(ctx, user))
		assert.Equal(t, &model.User{TheKeyGUID: testGUID, Email: "john@example.com"}, user)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(nil, assert.AnError).Once()

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserLoaded(ctx, &model.User{TheKeyGUID: testGUID})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestFallback_OnUserCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("saves new user", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		user := &model.User{TheKeyGUID: testGUID}
		store.On("Save", mock.Anything, user).Return(nil).Once()

		require.NoError(t, NewFallback(store, testutil.MakeNoopLogger()).OnUserCreated(ctx, user))
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("existing user updates fallback attrs only", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		user := &model.User{TheKeyGUID: testGUID}
		store.On("Save", mock.Anything, user).Return(model.ErrUserAlreadyExists).Once()
		store.On("Update", mock.Anything, user, user, []model.Attr{
			model.AttrMFASecret,
			model.AttrMFAIntruderDetection,
			model.AttrSelfServiceKeys,
			model.AttrSecurityQA,
			model.AttrHumanResource,
		}).Return(nil).Once()

		require.NoError(t, NewFallback(store, testutil.MakeNoopLogger()).OnUserCreated(ctx, user))
		store.AssertExpectations(t)
	})

	t.Run("other save failure", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("Save", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserCreated(ctx, &model.User{TheKeyGUID: testGUID})
		assert.ErrorIs(t, err, assert.AnError)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFallback_OnUserUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("attrs without fallback representation", func(t *testing.T) {
		store := &mocks.FallbackStore{}

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserUpdated(ctx, &model.User{TheKeyGUID: testGUID},
			model.AttrEmail, model.AttrName, model.AttrFlags, model.AttrPassword)
		require.NoError(t, err)
		assert.Empty(t, store.Calls)
	})

	t.Run("updates stored record with filtered attrs", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		user := &model.User{TheKeyGUID: testGUID, SecurityQuestion: "Pet?"}
		original := &model.User{TheKeyGUID: testGUID, SecurityQuestion: "Colour?"}

		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(original, nil).Once()
		store.On("Update", mock.Anything, original, user,
			[]model.Attr{model.AttrSecurityQA, model.AttrHumanResource}).Return(nil).Once()

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserUpdated(ctx, user,
			model.AttrEmail, model.AttrSecurityQA, model.AttrName, model.AttrHumanResource)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("missing fallback record", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(nil, model.ErrNotFound).Once()

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserUpdated(ctx, &model.User{TheKeyGUID: testGUID},
			model.AttrMFASecret)
		require.NoError(t, err)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("update failure", func(t *testing.T) {
		store := &mocks.FallbackStore{}
		store.On("FindByTheKeyGUID", mock.Anything, testGUID, true).Return(&model.User{TheKeyGUID: testGUID}, nil).Once()
		store.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

		err := NewFallback(store, testutil.MakeNoopLogger()).OnUserUpdated(ctx, &model.User{TheKeyGUID: testGUID},
			model.AttrSelfServiceKeys)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
