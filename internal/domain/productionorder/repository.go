package productionorder

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter Filter) (page.Page[Order], error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, in CreateInput) (*Order, error)
	Approve(ctx context.Context, id int64) (*Order, error)
	Reject(ctx context.Context, id int64) (*Order, error)
	Cancel(ctx context.Context, id int64) (*Order, error)
}
