package okta

import (
	"context"
	"errors"

	"github.com/dtroode/idm-okta/internal/model"
)

// Deactivate suspends the Okta account when Okta allows it and marks the user
// deactivated. Accounts that were never activated cannot be suspended and are
// deprovisioned instead. A user missing from Okta is ignored.
func (d *UserDao) Deactivate(ctx context.Context, user *model.User) error {
	deactivated := *user
	deactivated.Deactivated = true
	if err := deactivated.Validate(); err != nil {
		return err
	}

	pu, err := d.findOktaUser(ctx, user)
	if errors.Is(err, model.ErrNotFound) {
		d.logger.Debug("UserDao: deactivate skipped, user not found",
			"the_key_guid", user.TheKeyGUID)
		return nil
	}
	if err != nil {
		return err
	}

	neverActivated := pu.Status == model.StatusStaged || pu.Status == model.StatusProvisioned
	if pu.Status != model.StatusSuspended && !neverActivated {
		if err := d.provider.SuspendUser(ctx, pu.ID); err != nil {
			return toDomainError(err, false)
		}
	}

	user.Deactivated = true
	if err := d.update(ctx, user, pu, model.AttrEmail, model.AttrFlags); err != nil {
		return err
	}

	if neverActivated {
		if err := d.provider.DeactivateUser(ctx, pu.ID); err != nil {
			return toDomainError(err, false)
		}
	}

	d.logger.Info("UserDao: user deactivated",
		"the_key_guid", user.TheKeyGUID,
		"okta_user_id", pu.ID,
		"status", string(pu.Status))
	return nil
}

// Reactivate clears the deactivated flag and unsuspends a suspended account.
// The user must carry the email to restore. A user missing from Okta is ignored.
func (d *UserDao) Reactivate(ctx context.Context, user *model.User) error {
	reactivated := *user
	reactivated.Deactivated = false
	if err := reactivated.Validate(); err != nil {
		return err
	}

	pu, err := d.findOktaUser(ctx, user)
	if errors.Is(err, model.ErrNotFound) {
		d.logger.Debug("UserDao: reactivate skipped, user not found",
			"the_key_guid", user.TheKeyGUID)
		return nil
	}
	if err != nil {
		return err
	}

	user.Deactivated = false
	if err := d.update(ctx, user, pu, model.AttrEmail, model.AttrFlags); err != nil {
		return err
	}

	if pu.Status == model.StatusSuspended {
		if err := d.provider.UnsuspendUser(ctx, pu.ID); err != nil {
			return toDomainError(err, false)
		}
	}

	d.logger.Info("UserDao: user reactivated",
		"the_key_guid", user.TheKeyGUID,
		"okta_user_id", pu.ID)
	return nil
}
