package backend

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/product"
)

const productsPath = "/api/products"

type productListParams struct {
	Name        string `url:"name,omitempty"`
	IsActive    *bool  `url:"isActive,omitempty"`
	IsAlcoholic *bool  `url:"isAlcoholic,omitempty"`
	Page        int    `url:"page"`
	Size        int    `url:"size"`
}

type productIDNameParams struct {
	Name    string `url:"name,omitempty"`
	Active  *bool  `url:"active,omitempty"`
	IsReady *bool  `url:"ready,omitempty"`
}

type ProductRepository struct {
	client *Client
}

func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{client: c}
}

var _ product.Repository = (*ProductRepository)(nil)

func (r *ProductRepository) List(ctx context.Context, f product.Filter) (page.Page[product.Product], error) {
	req := f.Request.Normalize()
	params := productListParams{
		Name:        f.Name,
		IsActive:    f.Estado.IsActive(),
		IsAlcoholic: alcoholicParam(f.Alcoholic),
		Page:        req.Page,
		Size:        req.Size,
	}
	resp, err := Get[envelope[product.Product]](ctx, r.client, productsPath, params)
	return listPage(resp, err)
}

func alcoholicParam(v string) *bool {
	var b bool
	switch v {
	case product.AlcoholicYes:
		b = true
	case product.AlcoholicNo:
		b = false
	default:
		return nil
	}
	return &b
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, err := Get[product.Product](ctx, r.client, PathID(productsPath, id), nil)
	return entity(p, err, product.ErrProductNotFound)
}

func (r *ProductRepository) Create(ctx context.Context, in product.CreateInput) (*product.Product, error) {
	return Post[product.Product](ctx, r.client, productsPath, in)
}

func (r *ProductRepository) Update(ctx context.Context, id int64, in product.UpdateInput) (*product.Product, error) {
	p, err := Patch[product.Product](ctx, r.client, PathID(productsPath, id), in)
	return entity(p, err, product.ErrProductNotFound)
}

func (r *ProductRepository) ToggleActive(ctx context.Context, id int64) (*product.Product, error) {
	p, err := Patch[product.Product](ctx, r.client, PathID(productsPath, id, "toggle-active"), nil)
	return entity(p, err, product.ErrProductNotFound)
}

func (r *ProductRepository) IDNameList(ctx context.Context, q product.IDNameQuery) ([]product.IDName, error) {
	params := productIDNameParams{Name: q.Name, Active: q.Active, IsReady: q.Ready}
	out, err := Get[[]product.IDName](ctx, r.client, productsPath+"/id-name-list", params)
	if err != nil || out == nil {
		return []product.IDName{}, err
	}
	return *out, nil
}
