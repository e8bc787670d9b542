package packaging

import (
	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type Packaging struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitMeasurement string          `json:"unitMeasurement"`
	MaterialID      int64           `json:"materialId"`
	MaterialName    string          `json:"materialName,omitempty"`
	IsActive        bool            `json:"isActive"`
}

func (p Packaging) RowID() int64 { return p.ID }

type CreateInput struct {
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitMeasurement string          `json:"unitMeasurement"`
	MaterialID      int64           `json:"materialId"`
}

type UpdateInput struct {
	Name            *string          `json:"name,omitempty"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	UnitMeasurement *string          `json:"unitMeasurement,omitempty"`
	MaterialID      *int64           `json:"materialId,omitempty"`
}

type Filter struct {
	Name   string        `url:"name,omitempty"`
	Estado common.Estado `url:"estado,omitempty"`
	page.Request
}
