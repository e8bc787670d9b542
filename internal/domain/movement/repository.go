package movement

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter Filter) (page.Page[Movement], error)
	GetByID(ctx context.Context, id int64) (*Movement, error)
	Create(ctx context.Context, in CreateInput) (*Movement, error)
	ToggleInProgress(ctx context.Context, id int64) (*Movement, error)
	Complete(ctx context.Context, id int64) (*Movement, error)
}
