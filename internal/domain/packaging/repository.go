package packaging

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
)

type Repository interface {
	List(ctx context.Context, filter Filter) (page.Page[Packaging], error)
	GetByID(ctx context.Context, id int64) (*Packaging, error)
	Create(ctx context.Context, in CreateInput) (*Packaging, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Packaging, error)
	ToggleActive(ctx context.Context, id int64) (*Packaging, error)
}
