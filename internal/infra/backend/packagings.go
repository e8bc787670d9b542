package backend

import (
	"context"

	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/page"
)

const packagingsPath = "/api/packagings"

type activeListParams struct {
	Name     string `url:"name,omitempty"`
	IsActive *bool  `url:"isActive,omitempty"`
	Page     int    `url:"page"`
	Size     int    `url:"size"`
}

type PackagingRepository struct {
	client *Client
}

func NewPackagingRepository(c *Client) *PackagingRepository {
	return &PackagingRepository{client: c}
}

var _ packaging.Repository = (*PackagingRepository)(nil)

func (r *PackagingRepository) List(ctx context.Context, f packaging.Filter) (page.Page[packaging.Packaging], error) {
	req := f.Request.Normalize()
	params := activeListParams{Name: f.Name, IsActive: f.Estado.IsActive(), Page: req.Page, Size: req.Size}
	resp, err := Get[envelope[packaging.Packaging]](ctx, r.client, packagingsPath, params)
	return listPage(resp, err)
}

func (r *PackagingRepository) GetByID(ctx context.Context, id int64) (*packaging.Packaging, error) {
	p, err := Get[packaging.Packaging](ctx, r.client, PathID(packagingsPath, id), nil)
	return entity(p, err, packaging.ErrPackagingNotFound)
}

func (r *PackagingRepository) Create(ctx context.Context, in packaging.CreateInput) (*packaging.Packaging, error) {
	return Post[packaging.Packaging](ctx, r.client, packagingsPath, in)
}

func (r *PackagingRepository) Update(ctx context.Context, id int64, in packaging.UpdateInput) (*packaging.Packaging, error) {
	p, err := Patch[packaging.Packaging](ctx, r.client, PathID(packagingsPath, id), in)
	return entity(p, err, packaging.ErrPackagingNotFound)
}

func (r *PackagingRepository) ToggleActive(ctx context.Context, id int64) (*packaging.Packaging, error) {
	p, err := Patch[packaging.Packaging](ctx, r.client, PathID(packagingsPath, id, "toggle-active"), nil)
	return entity(p, err, packaging.ErrPackagingNotFound)
}
