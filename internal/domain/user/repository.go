package user

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter ListUsersFilter) (page.Page[User], error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, in CreateInput) (*User, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*User, error)
	UpdateRoles(ctx context.Context, id int64, roles []RoleCode) (*User, error)
	ToggleActive(ctx context.Context, id int64) (*User, error)
}
