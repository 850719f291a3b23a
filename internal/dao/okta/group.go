package okta

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/idm-okta/internal/model"
)

// GetGroup returns the Okta group with the given id.
func (d *UserDao) GetGroup(ctx context.Context, id string) (model.OktaGroup, error) {
	if id == "" {
		return model.OktaGroup{}, model.ErrGroupNotFound
	}

	pg, err := d.provider.GetGroup(ctx, id)
	if err != nil {
		return model.OktaGroup{}, toDomainError(err, false)
	}
	return toGroup(*pg), nil
}

// GetAllGroups lists the groups at or below baseSearch; an empty baseSearch
// lists every group.
func (d *UserDao) GetAllGroups(ctx context.Context, baseSearch string) ([]model.Group, error) {
	groups, err := d.provider.ListGroups(ctx, baseSearch)
	if err != nil {
		return nil, toDomainError(err, false)
	}

	out := make([]model.Group, 0, len(groups))
	for _, pg := range groups {
		g := toGroup(pg)
		if baseSearch == "" || g.IsDescendantOfOrEqualTo(baseSearch) {
			out = append(out, g)
		}
	}
	return out, nil
}

// AddToGroup adds user to an Okta group.
func (d *UserDao) AddToGroup(ctx context.Context, user *model.User, group model.Group) error {
	og, err := asOktaGroup(group)
	if err != nil {
		return err
	}

	pu, err := d.findOktaUser(ctx, user)
	if err != nil {
		return err
	}

	if err := d.provider.AddUserToGroup(ctx, og.ID, pu.ID); err != nil {
		return toDomainError(err, false)
	}

	d.logger.Info("UserDao: user added to group",
		"the_key_guid", user.TheKeyGUID,
		"group_id", og.ID)
	return nil
}

// RemoveFromGroup removes user from group. A group missing from Okta is ignored.
func (d *UserDao) RemoveFromGroup(ctx context.Context, user *model.User, group model.Group) error {
	og, err := asOktaGroup(group)
	if err != nil {
		return err
	}

	oktaUserID := user.OktaUserID
	if oktaUserID == "" {
		pu, err := d.findOktaUser(ctx, user)
		if err != nil {
			return err
		}
		oktaUserID = pu.ID
	}

	err = d.provider.RemoveUserFromGroup(ctx, og.ID, oktaUserID)
	if errors.Is(err, model.ErrGroupNotFound) {
		return nil
	}
	if err != nil {
		return toDomainError(err, false)
	}

	d.logger.Info("UserDao: user removed from group",
		"the_key_guid", user.TheKeyGUID,
		"group_id", og.ID)
	return nil
}

func asOktaGroup(group model.Group) (model.OktaGroup, error) {
	switch g := group.(type) {
	case model.OktaGroup:
		return g, nil
	case *model.OktaGroup:
		if g != nil {
			return *g, nil
		}
	}
	return model.OktaGroup{}, fmt.Errorf("%w: %T is not an Okta group", model.ErrInvalidGroup, group)
}

func toGroup(pg model.ProviderGroup) model.OktaGroup {
	return model.OktaGroup{ID: pg.ID, Type: pg.Type, GroupName: pg.Name}
}
