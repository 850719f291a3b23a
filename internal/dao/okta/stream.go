package okta

import (
	"context"
	"fmt"
	"iter"

	"github.com/dtroode/idm-okta/internal/model"
	"github.com/dtroode/idm-okta/internal/query"
)

// StreamUsers lazily streams the users matching expr; a nil expr matches every
// user. Groups are never loaded for streamed users. Translation errors are
// returned before anything is requested from Okta.
func (d *UserDao) StreamUsers(
	ctx context.Context,
	expr query.Expression,
	includeDeactivated bool,
	restrictMaxAllowed bool,
) (iter.Seq2[*model.User, error], error) {
	var search string
	if expr != nil {
		var err error
		search, err = ToFilter(expr, includeDeactivated)
		if err != nil {
			return nil, err
		}
	}

	users := d.mapUsers(ctx, d.provider.ListUsers(ctx, search), includeDeactivated, nil)
	return d.restrictMaxAllowed(users, restrictMaxAllowed), nil
}

// StreamUsersInGroup lazily streams the members of group. expr is evaluated
// in memory against each member.
func (d *UserDao) StreamUsersInGroup(
	ctx context.Context,
	group model.Group,
	expr query.Expression,
	includeDeactivated bool,
	restrictMaxAllowed bool,
) (iter.Seq2[*model.User, error], error) {
	og, err := asOktaGroup(group)
	if err != nil {
		return nil, err
	}
	if og.ID == "" {
		return nil, model.ErrGroupNotFound
	}

	pg, err := d.provider.GetGroup(ctx, og.ID)
	if err != nil {
		return nil, toDomainError(err, false)
	}

	users := d.mapUsers(ctx, d.provider.ListGroupUsers(ctx, pg.ID), includeDeactivated, expr)
	return d.restrictMaxAllowed(users, restrictMaxAllowed), nil
}

func (d *UserDao) mapUsers(
	ctx context.Context,
	seq iter.Seq2[*model.ProviderUser, error],
	includeDeactivated bool,
	expr query.Expression,
) iter.Seq2[*model.User, error] {
	return func(yield func(*model.User, error) bool) {
		for pu, err := range seq {
			if err != nil {
				yield(nil, toDomainError(err, false))
				return
			}

			user, err := d.toUser(ctx, pu, false)
			if err != nil {
				yield(nil, err)
				return
			}
			if user.Deactivated && !includeDeactivated {
				continue
			}
			if expr != nil {
				ok, err := query.Matches(expr, user)
				if err != nil {
					yield(nil, err)
					return
				}
				if !ok {
					continue
				}
			}

			if !yield(user, nil) {
				return
			}
		}
	}
}

// restrictMaxAllowed fails the enumeration as soon as more than
// maxSearchResults users are seen. The counter is local to each enumeration.
func (d *UserDao) restrictMaxAllowed(seq iter.Seq2[*model.User, error], restrict bool) iter.Seq2[*model.User, error] {
	limit := d.maxSearchResults
	if !restrict || limit == SearchNoLimit {
		return seq
	}

	return func(yield func(*model.User, error) bool) {
		count := 0
		for user, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}

			count++
			if count > limit {
				yield(nil, fmt.Errorf("%w: search exceeded %d results", model.ErrExceededMaximumResults, limit))
				return
			}

			if !yield(user, nil) {
				return
			}
		}
	}
}
