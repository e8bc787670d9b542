package backend

import (
	"context"

	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/productionorder"
)

const productionOrdersPath = "/api/production-orders"

type productionOrderListParams struct {
	Status    string `url:"status,omitempty"`
	ProductID int64  `url:"productId,omitempty"`
	Page      int    `url:"page"`
	Size      int    `url:"size"`
}

type ProductionOrderRepository struct {
	client *Client
}

func NewProductionOrderRepository(c *Client) *ProductionOrderRepository {
	return &ProductionOrderRepository{client: c}
}

var _ productionorder.Repository = (*ProductionOrderRepository)(nil)

func (r *ProductionOrderRepository) List(ctx context.Context, f productionorder.Filter) (page.Page[productionorder.Order], error) {
	req := f.Request.Normalize()
	params := productionOrderListParams{Status: string(f.Status), ProductID: f.ProductID, Page: req.Page, Size: req.Size}
	resp, err := Get[envelope[productionorder.Order]](ctx, r.client, productionOrdersPath, params)
	return listPage(resp, err)
}

func (r *ProductionOrderRepository) GetByID(ctx context.Context, id int64) (*productionorder.Order, error) {
	o, err := Get[productionorder.Order](ctx, r.client, PathID(productionOrdersPath, id), nil)
	return entity(o, err, productionorder.ErrOrderNotFound)
}

func (r *ProductionOrderRepository) Create(ctx context.Context, in productionorder.CreateInput) (*productionorder.Order, error) {
	return Post[productionorder.Order](ctx, r.client, productionOrdersPath, in)
}

func (r *ProductionOrderRepository) Approve(ctx context.Context, id int64) (*productionorder.Order, error) {
	return r.transition(ctx, id, "approve")
}

func (r *ProductionOrderRepository) Reject(ctx context.Context, id int64) (*productionorder.Order, error) {
	return r.transition(ctx, id, "reject")
}

func (r *ProductionOrderRepository) Cancel(ctx context.Context, id int64) (*productionorder.Order, error) {
	return r.transition(ctx, id, "cancel")
}

func (r *ProductionOrderRepository) transition(ctx context.Context, id int64, action string) (*productionorder.Order, error) {
	o, err := Patch[productionorder.Order](ctx, r.client, PathID(productionOrdersPath, id, action), nil)
	return entity(o, err, productionorder.ErrOrderNotFound)
}
