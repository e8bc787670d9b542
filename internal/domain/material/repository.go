package material

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter Filter) (page.Page[Material], error)
	GetByID(ctx context.Context, id int64) (*Material, error)
	Create(ctx context.Context, in CreateInput) (*Material, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Material, error)
	ToggleActive(ctx context.Context, id int64) (*Material, error)
	IDNameList(ctx context.Context, q IDNameQuery) ([]IDName, error)
	WarehouseMap(ctx context.Context, q MapQuery) ([]Location, error)
}
