package backend

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
	domuser "example.com/brewery-admin/internal/domain/user"
)

const usersPath = "/api/users"

type updateRolesBody struct {
	Roles []domuser.RoleCode `json:"roles"`
}

type UserRepository struct {
	client *Client
}

func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{client: c}
}

var _ domuser.Repository = (*UserRepository)(nil)

func (r *UserRepository) List(ctx context.Context, f domuser.ListUsersFilter) (page.Page[domuser.User], error) {
	req := f.Request.Normalize()
	params := activeListParams{Name: f.Name, IsActive: f.Estado.IsActive(), Page: req.Page, Size: req.Size}
	resp, err := Get[envelope[domuser.User]](ctx, r.client, usersPath, params)
	return listPage(resp, err)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	u, err := Get[domuser.User](ctx, r.client, PathID(usersPath, id), nil)
	return entity(u, err, domuser.ErrUserNotFound)
}

func (r *UserRepository) Create(ctx context.Context, in domuser.CreateInput) (*domuser.User, error) {
	return Post[domuser.User](ctx, r.client, usersPath, in)
}

func (r *UserRepository) Update(ctx context.Context, id int64, in domuser.UpdateInput) (*domuser.User, error) {
	u, err := Patch[domuser.User](ctx, r.client, PathID(usersPath, id), in)
	return entity(u, err, domuser.ErrUserNotFound)
}

func (r *UserRepository) UpdateRoles(ctx context.Context, id int64, roles []domuser.RoleCode) (*domuser.User, error) {
	u, err := Patch[domuser.User](ctx, r.client, PathID(usersPath, id, "roles"), updateRolesBody{Roles: roles})
	return entity(u, err, domuser.ErrUserNotFound)
}

func (r *UserRepository) ToggleActive(ctx context.Context, id int64) (*domuser.User, error) {
	u, err := Patch[domuser.User](ctx, r.client, PathID(usersPath, id, "toggle-active"), nil)
	return entity(u, err, domuser.ErrUserNotFound)
}
