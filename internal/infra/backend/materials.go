package backend

import (
	"context"

	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/page"
)

const materialsPath = "/api/materials"

type materialListParams struct {
	Name     string `url:"name,omitempty"`
	Supplier string `url:"supplier,omitempty"`
	Type     string `url:"type,omitempty"`
	IsActive *bool  `url:"isActive,omitempty"`
	Page     int    `url:"page"`
	Size     int    `url:"size"`
}

type materialIDNameParams struct {
	Name   string `url:"name,omitempty"`
	Active *bool  `url:"active,omitempty"`
	Phase  string `url:"phase,omitempty"`
	Type   string `url:"type,omitempty"`
}

type warehouseMapParams struct {
	Zone       string `url:"zone,omitempty"`
	ActiveOnly bool   `url:"activeOnly,omitempty"`
}

type MaterialRepository struct {
	client *Client
}

func NewMaterialRepository(c *Client) *MaterialRepository {
	return &MaterialRepository{client: c}
}

var _ material.Repository = (*MaterialRepository)(nil)

func (r *MaterialRepository) List(ctx context.Context, f material.Filter) (page.Page[material.Material], error) {
	req := f.Request.Normalize()
	params := materialListParams{
		Name:     f.Name,
		Supplier: f.Supplier,
		Type:     string(f.Type),
		IsActive: f.Estado.IsActive(),
		Page:     req.Page,
		Size:     req.Size,
	}
	resp, err := Get[envelope[material.Material]](ctx, r.client, materialsPath, params)
	return listPage(resp, err)
}

func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*material.Material, error) {
	m, err := Get[material.Material](ctx, r.client, PathID(materialsPath, id), nil)
	return entity(m, err, material.ErrMaterialNotFound)
}

func (r *MaterialRepository) Create(ctx context.Context, in material.CreateInput) (*material.Material, error) {
	return Post[material.Material](ctx, r.client, materialsPath, in)
}

func (r *MaterialRepository) Update(ctx context.Context, id int64, in material.UpdateInput) (*material.Material, error) {
	m, err := Patch[material.Material](ctx, r.client, PathID(materialsPath, id), in)
	return entity(m, err, material.ErrMaterialNotFound)
}

func (r *MaterialRepository) ToggleActive(ctx context.Context, id int64) (*material.Material, error) {
	m, err := Patch[material.Material](ctx, r.client, PathID(materialsPath, id, "toggle-active"), nil)
	return entity(m, err, material.ErrMaterialNotFound)
}

func (r *MaterialRepository) IDNameList(ctx context.Context, q material.IDNameQuery) ([]material.IDName, error) {
	params := materialIDNameParams{Name: q.Name, Active: q.Active, Phase: q.Phase, Type: string(q.Type)}
	out, err := Get[[]material.IDName](ctx, r.client, materialsPath+"/id-name-list", params)
	if err != nil || out == nil {
		return []material.IDName{}, err
	}
	return *out, nil
}

func (r *MaterialRepository) WarehouseMap(ctx context.Context, q material.MapQuery) ([]material.Location, error) {
	params := warehouseMapParams{Zone: q.Zone, ActiveOnly: q.ActiveOnly}
	out, err := Get[[]material.Location](ctx, r.client, materialsPath+"/warehouse-map", params)
	if err != nil || out == nil {
		return []material.Location{}, err
	}
	return *out, nil
}
