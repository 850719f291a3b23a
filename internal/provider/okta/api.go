package okta

import (
	"context"

	oktasdk "github.com/okta/okta-sdk-golang/v2/okta"
	"github.com/okta/okta-sdk-golang/v2/okta/query"
)

// oktaAPI is the subset of the Okta management API the provider uses. It
// exists so the client can be tested without an Okta org.
type oktaAPI interface {
	GetUser(ctx context.Context, id string) (*oktasdk.User, *oktasdk.Response, error)
	ListUsers(ctx context.Context, qp *query.Params) ([]*oktasdk.User, *oktasdk.Response, error)
	CreateUser(ctx context.Context, body oktasdk.CreateUserRequest) (*oktasdk.User, *oktasdk.Response, error)
	PartialUpdateUser(ctx context.Context, id string, body oktasdk.User) (*oktasdk.User, *oktasdk.Response, error)
	SuspendUser(ctx context.Context, id string) (*oktasdk.Response, error)
	UnsuspendUser(ctx context.Context, id string) (*oktasdk.Response, error)
	DeactivateUser(ctx context.Context, id string) (*oktasdk.Response, error)
	ListUserGroups(ctx context.Context, id string) ([]*oktasdk.Group, *oktasdk.Response, error)

	GetGroup(ctx context.Context, id string) (*oktasdk.Group, *oktasdk.Response, error)
	ListGroups(ctx context.Context, qp *query.Params) ([]*oktasdk.Group, *oktasdk.Response, error)
	ListGroupUsers(ctx context.Context, groupID string, qp *query.Params) ([]*oktasdk.User, *oktasdk.Response, error)
	AddUserToGroup(ctx context.Context, groupID, userID string) (*oktasdk.Response, error)
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) (*oktasdk.Response, error)

	// NextUsers and NextGroups fetch the page after resp. They return a nil
	// response when resp was the last page.
	NextUsers(ctx context.Context, resp *oktasdk.Response) ([]*oktasdk.User, *oktasdk.Response, error)
	NextGroups(ctx context.Context, resp *oktasdk.Response) ([]*oktasdk.Group, *oktasdk.Response, error)
}

// sdkClient adapts *oktasdk.Client to oktaAPI.
type sdkClient struct{ c *oktasdk.Client }

func (w sdkClient) GetUser(ctx context.Context, id string) (*oktasdk.User, *oktasdk.Response, error) {
	return w.c.User.GetUser(ctx, id)
}
func (w sdkClient) ListUsers(ctx context.Context, qp *query.Params) ([]*oktasdk.User, *oktasdk.Response, error) {
	return w.c.User.ListUsers(ctx, qp)
}
func (w sdkClient) CreateUser(ctx context.Context, body oktasdk.CreateUserRequest) (*oktasdk.User, *oktasdk.Response, error) {
	return w.c.User.CreateUser(ctx, body, nil)
}
func (w sdkClient) PartialUpdateUser(ctx context.Context, id string, body oktasdk.User) (*oktasdk.User, *oktasdk.Response, error) {
	return w.c.User.PartialUpdateUser(ctx, id, body, nil)
}
func (w sdkClient) SuspendUser(ctx context.Context, id string) (*oktasdk.Response, error) {
	return w.c.User.SuspendUser(ctx, id)
}
func (w sdkClient) UnsuspendUser(ctx context.Context, id string) (*oktasdk.Response, error) {
	return w.c.User.UnsuspendUser(ctx, id)
}
func (w sdkClient) DeactivateUser(ctx context.Context, id string) (*oktasdk.Response, error) {
	return w.c.User.DeactivateUser(ctx, id, nil)
}
func (w sdkClient) ListUserGroups(ctx context.Context, id string) ([]*oktasdk.Group, *oktasdk.Response, error) {
	return w.c.User.ListUserGroups(ctx, id)
}
func (w sdkClient) GetGroup(ctx context.Context, id string) (*oktasdk.Group, *oktasdk.Response, error) {
	return w.c.Group.GetGroup(ctx, id)
}
func (w sdkClient) ListGroups(ctx context.Context, qp *query.Params) ([]*oktasdk.Group, *oktasdk.Response, error) {
	return w.c.Group.ListGroups(ctx, qp)
}
func (w sdkClient) ListGroupUsers(ctx context.Context, groupID string, qp *query.Params) ([]*oktasdk.User, *oktasdk.Response, error) {
	return w.c.Group.ListGroupUsers(ctx, groupID, qp)
}
func (w sdkClient) AddUserToGroup(ctx context.Context, groupID, userID string) (*oktasdk.Response, error) {
	return w.c.Group.AddUserToGroup(ctx, groupID, userID)
}
func (w sdkClient) RemoveUserFromGroup(ctx context.Context, groupID, userID string) (*oktasdk.Response, error) {
	return w.c.Group.RemoveUserFromGroup(ctx, groupID, userID)
}

func (w sdkClient) NextUsers(ctx context.Context, resp *oktasdk.Response) ([]*oktasdk.User, *oktasdk.Response, error) {
	if resp == nil || !resp.HasNextPage() {
		return nil, nil, nil
	}
	var users []*oktasdk.User
	next, err := resp.Next(ctx, &users)
	return users, next, err
}

func (w sdkClient) NextGroups(ctx context.Context, resp *oktasdk.Response) ([]*oktasdk.Group, *oktasdk.Response, error) {
	if resp == nil || !resp.HasNextPage() {
		return nil, nil, nil
	}
	var groups []*oktasdk.Group
	next, err := resp.Next(ctx, &groups)
	return groups, next, err
}
