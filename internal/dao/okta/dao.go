package okta

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dtroode/idm-okta/internal/logger"
	"github.com/dtroode/idm-okta/internal/model"
	"github.com/dtroode/idm-okta/internal/query"
)

// SearchNoLimit disables the cap on streamed search results.
const SearchNoLimit = 0

// Options configures a UserDao.
type Options struct {
	MaxSearchResults int
	InitialGroups    []string
	LoadGroups       bool
	ReadOnly         bool
}

// UserDao stores users in Okta. Listeners are notified synchronously, in
// registration order, after each successful load, create and update.
type UserDao struct {
	provider         model.IdentityProvider
	listeners        []model.UserListener
	logger           *logger.Logger
	maxSearchResults int
	initialGroups    []string
	loadGroups       bool
	readOnly         bool
}

// NewUserDao creates a UserDao. Listeners are notified in order.
func NewUserDao(
	provider model.IdentityProvider,
	logger *logger.Logger,
	opts Options,
	listeners ...model.UserListener,
) *UserDao {
	return &UserDao{
		provider:         provider,
		listeners:        listeners,
		logger:           logger,
		maxSearchResults: opts.MaxSearchResults,
		initialGroups:    opts.InitialGroups,
		loadGroups:       opts.LoadGroups,
		readOnly:         opts.ReadOnly,
	}
}

// FindByOktaUserID returns the user with the given Okta user id, deactivated or not.
func (d *UserDao) FindByOktaUserID(ctx context.Context, id string) (*model.User, error) {
	pu, err := d.findOktaUserByOktaUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	return d.toUser(ctx, pu, d.loadGroups)
}

// FindByEmail returns the first user with email. With includeDeactivated the
// original email of deactivated users is matched too.
func (d *UserDao) FindByEmail(ctx context.Context, email string, includeDeactivated bool) (*model.User, error) {
	if email == "" {
		return nil, model.ErrNotFound
	}

	search, err := ToFilter(query.Eq(query.AttrEmail, email), includeDeactivated)
	if err != nil {
		return nil, err
	}

	pu, err := d.firstOktaUser(ctx, search)
	if err != nil {
		return nil, err
	}
	return d.toUser(ctx, pu, d.loadGroups)
}

// FindByTheKeyGUID returns the user with the given TheKey GUID.
func (d *UserDao) FindByTheKeyGUID(ctx context.Context, guid string, includeDeactivated bool) (*model.User, error) {
	pu, err := d.findOktaUserByTheKeyGUID(ctx, guid)
	if err != nil {
		return nil, err
	}
	return d.activeOrIncluded(ctx, pu, includeDeactivated)
}

// FindByRelayGUID returns the user with the given Relay GUID.
func (d *UserDao) FindByRelayGUID(ctx context.Context, guid string, includeDeactivated bool) (*model.User, error) {
	if guid == "" {
		return nil, model.ErrNotFound
	}

	search, err := compareFilter(profileRelayGUID, query.EQ, guid)
	if err != nil {
		return nil, err
	}
	pu, err := d.firstOktaUser(ctx, search)
	if err != nil {
		return nil, err
	}
	return d.activeOrIncluded(ctx, pu, includeDeactivated)
}

func (d *UserDao) activeOrIncluded(ctx context.Context, pu *model.ProviderUser, includeDeactivated bool) (*model.User, error) {
	user, err := d.toUser(ctx, pu, d.loadGroups)
	if err != nil {
		return nil, err
	}
	if user.Deactivated && !includeDeactivated {
		return nil, model.ErrNotFound
	}
	return user, nil
}

// Save creates user in Okta and records the assigned Okta user id on it.
func (d *UserDao) Save(ctx context.Context, user *model.User) error {
	if err := d.assertWritable(); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}

	d.logger.Debug("UserDao: creating user",
		"the_key_guid", user.TheKeyGUID)

	pu, err := d.provider.CreateUser(ctx, model.CreateUserRequest{
		Profile:  createProfile(user),
		Password: user.Password,
		GroupIDs: d.initialGroups,
	})
	if err != nil {
		d.logger.Error("UserDao: failed to create user",
			"the_key_guid", user.TheKeyGUID,
			"error", err.Error())
		return toDomainError(err, true)
	}
	user.OktaUserID = pu.ID

	d.logger.Info("UserDao: user created",
		"the_key_guid", user.TheKeyGUID,
		"okta_user_id", pu.ID)

	for _, l := range d.listeners {
		if err := l.OnUserCreated(ctx, user); err != nil {
			return fmt.Errorf("failed to notify user created listener: %w", err)
		}
	}
	return nil
}

// Update writes the attribute groups attrs of user, defaulting to
// model.DefaultAttrs. Okta is only contacted when at least one group has a
// provider side representation.
func (d *UserDao) Update(ctx context.Context, user *model.User, attrs ...model.Attr) error {
	return d.update(ctx, user, nil, attrs...)
}

func (d *UserDao) update(ctx context.Context, user *model.User, pu *model.ProviderUser, attrs ...model.Attr) error {
	if err := d.assertWritable(); err != nil {
		return err
	}
	if err := user.Validate(); err != nil {
		return err
	}

	attrs = model.NormalizeAttrs(attrs...)

	if providerAttrs(attrs) {
		if pu == nil {
			var err error
			pu, err = d.findOktaUser(ctx, user)
			if err != nil {
				return err
			}
		}

		patch := buildPatch(user, attrs)
		if !patch.Empty() {
			d.logger.Debug("UserDao: updating user",
				"the_key_guid", user.TheKeyGUID,
				"okta_user_id", pu.ID,
				"attrs", model.AttrStrings(attrs))

			if err := d.provider.UpdateUser(ctx, pu.ID, patch); err != nil {
				d.logger.Error("UserDao: failed to update user",
					"the_key_guid", user.TheKeyGUID,
					"okta_user_id", pu.ID,
					"error", err.Error())
				return toDomainError(err, slices.Contains(attrs, model.AttrPassword))
			}
		}
	}

	for _, l := range d.listeners {
		if err := l.OnUserUpdated(ctx, user, attrs...); err != nil {
			return fmt.Errorf("failed to notify user updated listener: %w", err)
		}
	}
	return nil
}

func (d *UserDao) assertWritable() error {
	if d.readOnly {
		return model.ErrReadOnly
	}
	return nil
}

// findOktaUser looks the user up by Okta user id, falling back to the stable GUID.
func (d *UserDao) findOktaUser(ctx context.Context, user *model.User) (*model.ProviderUser, error) {
	pu, err := d.findOktaUserByOktaUserID(ctx, user.OktaUserID)
	if err == nil {
		return pu, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	return d.findOktaUserByTheKeyGUID(ctx, user.TheKeyGUID)
}

func (d *UserDao) findOktaUserByOktaUserID(ctx context.Context, id string) (*model.ProviderUser, error) {
	if id == "" {
		return nil, model.ErrNotFound
	}
	pu, err := d.provider.GetUser(ctx, id)
	if err != nil {
		return nil, toDomainError(err, false)
	}
	return pu, nil
}

func (d *UserDao) findOktaUserByTheKeyGUID(ctx context.Context, guid string) (*model.ProviderUser, error) {
	if guid == "" {
		return nil, model.ErrNotFound
	}
	search, err := compareFilter(profileTheKeyGUID, query.EQ, guid)
	if err != nil {
		return nil, err
	}
	return d.firstOktaUser(ctx, search)
}

func (d *UserDao) firstOktaUser(ctx context.Context, search string) (*model.ProviderUser, error) {
	for pu, err := range d.provider.ListUsers(ctx, search) {
		if err != nil {
			return nil, toDomainError(err, false)
		}
		return pu, nil
	}
	return nil, model.ErrNotFound
}

// toUser maps pu and notifies the load listeners. Listener failures are
// logged and the provider data is still returned.
func (d *UserDao) toUser(ctx context.Context, pu *model.ProviderUser, loadGroups bool) (*model.User, error) {
	user := mapUser(pu)

	if loadGroups {
		groups, err := d.provider.ListUserGroups(ctx, pu.ID)
		if err != nil {
			return nil, toDomainError(err, false)
		}
		user.Groups = make([]model.Group, len(groups))
		for i, g := range groups {
			user.Groups[i] = toGroup(g)
		}
	}

	for _, l := range d.listeners {
		if err := l.OnUserLoaded(ctx, user); err != nil {
			d.logger.Warn("UserDao: user loaded listener failed",
				"the_key_guid", user.TheKeyGUID,
				"okta_user_id", user.OktaUserID,
				"error", err.Error())
		}
	}
	return user, nil
}

// Legacy lookups below have no Okta equivalent.

func (d *UserDao) EnqueueAll(_ context.Context, _ chan<- *model.User, _ bool) error {
	return model.ErrUnsupportedOperation
}

func (d *UserDao) FindAllByGroup(_ context.Context, _ model.Group, _ bool) ([]*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}

func (d *UserDao) FindAllByQuery(_ context.Context, _ string) ([]*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}

// FindByGUID is not supported, legacy guids are not stored in Okta. Use FindByTheKeyGUID.
func (d *UserDao) FindByGUID(_ context.Context, _ string, _ bool) (*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}

func (d *UserDao) FindByDesignation(_ context.Context, _ string, _ bool) (*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}

func (d *UserDao) FindByEmployeeID(_ context.Context, _ string, _ bool) (*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}

func (d *UserDao) FindByFacebookID(_ context.Context, _ string, _ bool) (*model.User, error) {
	return nil, model.ErrUnsupportedOperation
}
