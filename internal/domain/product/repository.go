package product

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter Filter) (page.Page[Product], error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in CreateInput) (*Product, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Product, error)
	ToggleActive(ctx context.Context, id int64) (*Product, error)
	IDNameList(ctx context.Context, q IDNameQuery) ([]IDName, error)
}
