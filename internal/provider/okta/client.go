package okta

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"

	oktasdk "github.com/okta/okta-sdk-golang/v2/okta"
	"github.com/okta/okta-sdk-golang/v2/okta/query"

	"github.com/dtroode/idm-okta/internal/model"
)

// codeResourceNotFound is reported by Okta for unknown users and groups.
const codeResourceNotFound = "E0000007"

var _ model.IdentityProvider = (*Client)(nil)

// Client implements model.IdentityProvider on top of the Okta management API.
type Client struct {
	api      oktaAPI
	pageSize int
}

// NewClient creates an Okta client for the org at orgURL authenticated with an
// API token. pageSize bounds the number of users and groups per list request;
// zero leaves it to Okta.
func NewClient(ctx context.Context, orgURL, token string, pageSize int) (*Client, error) {
	_, client, err := oktasdk.NewClient(ctx,
		oktasdk.WithOrgUrl(orgURL),
		oktasdk.WithToken(token),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create okta client: %w", err)
	}
	return NewClientWithAPI(sdkClient{c: client}, pageSize), nil
}

// NewClientWithAPI allows injecting a fake API (used in tests).
func NewClientWithAPI(api oktaAPI, pageSize int) *Client {
	return &Client{
		api:      api,
		pageSize: pageSize,
	}
}

func (c *Client) GetUser(ctx context.Context, id string) (*model.ProviderUser, error) {
	u, resp, err := c.api.GetUser(ctx, id)
	if err != nil {
		return nil, toProviderError(err, resp, model.ErrNotFound)
	}
	return toProviderUser(u), nil
}

// ListUsers pages through the users matching search. Pages are requested as the
// sequence is consumed.
func (c *Client) ListUsers(ctx context.Context, search string) iter.Seq2[*model.ProviderUser, error] {
	qp := &query.Params{Search: search, Limit: int64(c.pageSize)}
	return c.pageUsers(ctx, func() ([]*oktasdk.User, *oktasdk.Response, error) {
		return c.api.ListUsers(ctx, qp)
	}, model.ErrNotFound)
}

func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.ProviderUser, error) {
	profile := oktasdk.UserProfile(req.Profile)
	body := oktasdk.CreateUserRequest{
		Profile:  &profile,
		GroupIds: req.GroupIDs,
	}
	if req.Password != "" {
		body.Credentials = passwordCredentials(req.Password)
	}

	u, resp, err := c.api.CreateUser(ctx, body)
	if err != nil {
		return nil, toProviderError(err, resp, model.ErrGroupNotFound)
	}
	return toProviderUser(u), nil
}

// UpdateUser sends patch as a partial update; profile keys missing from the
// patch are left untouched.
func (c *Client) UpdateUser(ctx context.Context, id string, patch model.UserPatch) error {
	var body oktasdk.User
	if len(patch.Profile) > 0 {
		profile := oktasdk.UserProfile(patch.Profile)
		body.Profile = &profile
	}
	if patch.Password != nil {
		body.Credentials = passwordCredentials(*patch.Password)
	}

	_, resp, err := c.api.PartialUpdateUser(ctx, id, body)
	if err != nil {
		return toProviderError(err, resp, model.ErrNotFound)
	}
	return nil
}

func (c *Client) SuspendUser(ctx context.Context, id string) error {
	resp, err := c.api.SuspendUser(ctx, id)
	return toProviderError(err, resp, model.ErrNotFound)
}

func (c *Client) UnsuspendUser(ctx context.Context, id string) error {
	resp, err := c.api.UnsuspendUser(ctx, id)
	return toProviderError(err, resp, model.ErrNotFound)
}

func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	resp, err := c.api.DeactivateUser(ctx, id)
	return toProviderError(err, resp, model.ErrNotFound)
}

func (c *Client) GetGroup(ctx context.Context, id string) (*model.ProviderGroup, error) {
	g, resp, err := c.api.GetGroup(ctx, id)
	if err != nil {
		return nil, toProviderError(err, resp, model.ErrGroupNotFound)
	}
	pg := toProviderGroup(g)
	return &pg, nil
}

// ListGroups returns every group whose name starts with q.
func (c *Client) ListGroups(ctx context.Context, q string) ([]model.ProviderGroup, error) {
	qp := &query.Params{Q: q, Limit: int64(c.pageSize)}
	groups, resp, err := c.api.ListGroups(ctx, qp)
	return c.collectGroups(ctx, groups, resp, err)
}

func (c *Client) ListGroupUsers(ctx context.Context, groupID string) iter.Seq2[*model.ProviderUser, error] {
	qp := &query.Params{Limit: int64(c.pageSize)}
	return c.pageUsers(ctx, func() ([]*oktasdk.User, *oktasdk.Response, error) {
		return c.api.ListGroupUsers(ctx, groupID, qp)
	}, model.ErrGroupNotFound)
}

func (c *Client) ListUserGroups(ctx context.Context, userID string) ([]model.ProviderGroup, error) {
	groups, resp, err := c.api.ListUserGroups(ctx, userID)
	if err != nil {
		return nil, toProviderError(err, resp, model.ErrNotFound)
	}
	return c.collectGroups(ctx, groups, resp, nil)
}

func (c *Client) AddUserToGroup(ctx context.Context, groupID, userID string) error {
	resp, err := c.api.AddUserToGroup(ctx, groupID, userID)
	return toProviderError(err, resp, model.ErrGroupNotFound)
}

func (c *Client) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	resp, err := c.api.RemoveUserFromGroup(ctx, groupID, userID)
	return toProviderError(err, resp, model.ErrGroupNotFound)
}

func (c *Client) pageUsers(
	ctx context.Context,
	first func() ([]*oktasdk.User, *oktasdk.Response, error),
	notFound error,
) iter.Seq2[*model.ProviderUser, error] {
	return func(yield func(*model.ProviderUser, error) bool) {
		users, resp, err := first()
		for {
			if err != nil {
				yield(nil, toProviderError(err, resp, notFound))
				return
			}
			for _, u := range users {
				if !yield(toProviderUser(u), nil) {
					return
				}
			}
			if resp == nil {
				return
			}
			users, resp, err = c.api.NextUsers(ctx, resp)
		}
	}
}

func (c *Client) collectGroups(
	ctx context.Context,
	groups []*oktasdk.Group,
	resp *oktasdk.Response,
	err error,
) ([]model.ProviderGroup, error) {
	var out []model.ProviderGroup
	for {
		if err != nil {
			return nil, toProviderError(err, resp, model.ErrGroupNotFound)
		}
		for _, g := range groups {
			out = append(out, toProviderGroup(g))
		}
		if resp == nil {
			return out, nil
		}
		groups, resp, err = c.api.NextGroups(ctx, resp)
	}
}

func passwordCredentials(password string) *oktasdk.UserCredentials {
	return &oktasdk.UserCredentials{
		Password: &oktasdk.PasswordCredential{Value: password},
	}
}

func toProviderUser(u *oktasdk.User) *model.ProviderUser {
	pu := &model.ProviderUser{
		ID:        u.Id,
		Status:    model.ProviderUserStatus(u.Status),
		LastLogin: u.LastLogin,
	}
	if u.Profile != nil {
		pu.Profile = *u.Profile
	}
	return pu
}

func toProviderGroup(g *oktasdk.Group) model.ProviderGroup {
	pg := model.ProviderGroup{ID: g.Id, Type: g.Type}
	if g.Profile != nil {
		pg.Name = g.Profile.Name
	}
	return pg
}

// toProviderError translates an Okta failure. notFound is returned for 404
// responses, as the resource that is missing depends on the call.
func toProviderError(err error, resp *oktasdk.Response, notFound error) error {
	if err == nil {
		return nil
	}
	if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
		return notFound
	}

	var oerr *oktasdk.Error
	if errors.As(err, &oerr) {
		if oerr.ErrorCode == codeResourceNotFound {
			return notFound
		}
		return &model.ProviderError{
			Code:    oerr.ErrorCode,
			Summary: oerr.ErrorSummary,
			Causes:  errorCauses(oerr.ErrorCauses),
		}
	}
	return fmt.Errorf("okta request failed: %w", err)
}

func errorCauses(causes []map[string]interface{}) []string {
	out := make([]string, 0, len(causes))
	for _, cause := range causes {
		if summary, ok := cause["errorSummary"].(string); ok {
			out = append(out, summary)
		}
	}
	return out
}
