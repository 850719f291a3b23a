package listener

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/idm-okta/internal/logger"
	"github.com/dtroode/idm-okta/internal/model"
)

// FallbackAttrs are the attribute groups the fallback store keeps for users
// whose primary record lives in Okta.
var FallbackAttrs = []model.Attr{
	model.AttrMFASecret,
	model.AttrMFAIntruderDetection,
	model.AttrSelfServiceKeys,
	model.AttrSecurityQA,
	model.AttrHumanResource,
}

var fallbackAttrSet = func() map[model.Attr]struct{} {
	set := make(map[model.Attr]struct{}, len(FallbackAttrs))
	for _, a := range FallbackAttrs {
		set[a] = struct{}{}
	}
	return set
}()

var _ model.UserListener = (*Fallback)(nil)

// Fallback keeps the fallback store in step with the Okta user DAO.
type Fallback struct {
	store  model.FallbackStore
	logger *logger.Logger
}

func NewFallback(store model.FallbackStore, logger *logger.Logger) *Fallback {
	return &Fallback{
		store:  store,
		logger: logger,
	}
}

// OnUserLoaded copies the fallback owned fields onto user. Login time is only
// taken from the fallback store when Okta has none.
func (f *Fallback) OnUserLoaded(ctx context.Context, user *model.User) error {
	stored, err := f.store.FindByTheKeyGUID(ctx, user.TheKeyGUID, true)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find fallback user: %w", err)
	}

	user.MFABypassed = stored.MFABypassed
	user.MFAEncryptedSecret = stored.MFAEncryptedSecret
	user.MFAIntruderLocked = stored.MFAIntruderLocked
	user.MFAIntruderAttempts = stored.MFAIntruderAttempts
	user.MFAIntruderResetTime = stored.MFAIntruderResetTime

	user.SignupKey = stored.SignupKey
	user.ProposedEmail = stored.ProposedEmail
	user.ChangeEmailKey = stored.ChangeEmailKey
	user.ResetPasswordKey = stored.ResetPasswordKey

	user.SecurityQuestion = stored.SecurityQuestion
	if err := user.SetSecurityAnswer(stored.SecurityAnswer, false); err != nil {
		return err
	}

	if user.LoginTime == nil {
		user.LoginTime = stored.LoginTime
	}

	user.EmployeeStatus = stored.EmployeeStatus
	return nil
}

// OnUserCreated mirrors a new user into the fallback store. A user that is
// already there only gets its fallback owned attributes refreshed.
func (f *Fallback) OnUserCreated(ctx context.Context, user *model.User) error {
	err := f.store.Save(ctx, user)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserAlreadyExists) {
		return fmt.Errorf("failed to save fallback user: %w", err)
	}

	f.logger.Info("Fallback: user already exists, updating fallback attributes",
		"the_key_guid", user.TheKeyGUID)

	if err := f.store.Update(ctx, user, user, FallbackAttrs...); err != nil {
		return fmt.Errorf("failed to update fallback user: %w", err)
	}
	return nil
}

// OnUserUpdated writes the fallback owned subset of attrs. Users missing from
// the fallback store are skipped.
func (f *Fallback) OnUserUpdated(ctx context.Context, user *model.User, attrs ...model.Attr) error {
	attrs = model.FilterAttrs(attrs, fallbackAttrSet)
	if len(attrs) == 0 {
		return nil
	}

	original, err := f.store.FindByTheKeyGUID(ctx, user.TheKeyGUID, true)
	if errors.Is(err, model.ErrNotFound) {
		f.logger.Debug("Fallback: user not in fallback store, skipping update",
			"the_key_guid", user.TheKeyGUID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find fallback user: %w", err)
	}

	if err := f.store.Update(ctx, original, user, attrs...); err != nil {
		return fmt.Errorf("failed to update fallback user: %w", err)
	}
	return nil
}
