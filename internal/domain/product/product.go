package product

import (
	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	IsAlcoholic      bool            `json:"isAlcoholic"`
	AlcoholContent   decimal.Decimal `json:"alcoholContent"`
	StandardQuantity decimal.Decimal `json:"standardQuantity"`
	UnitMeasurement  string          `json:"unitMeasurement"`
	IsReady          bool            `json:"isReady"`
	IsActive         bool            `json:"isActive"`
}

func (p Product) RowID() int64 { return p.ID }

type IDName struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreateInput struct {
	Name             string          `json:"name"`
	IsAlcoholic      bool            `json:"isAlcoholic"`
	AlcoholContent   decimal.Decimal `json:"alcoholContent"`
	StandardQuantity decimal.Decimal `json:"standardQuantity"`
	UnitMeasurement  string          `json:"unitMeasurement"`
}

type UpdateInput struct {
	Name             *string          `json:"name,omitempty"`
	IsAlcoholic      *bool            `json:"isAlcoholic,omitempty"`
	AlcoholContent   *decimal.Decimal `json:"alcoholContent,omitempty"`
	StandardQuantity *decimal.Decimal `json:"standardQuantity,omitempty"`
	UnitMeasurement  *string          `json:"unitMeasurement,omitempty"`
}

// Alcoholic filter values as they appear in the URL.
const (
	AlcoholicAll = ""
	AlcoholicYes = "si"
	AlcoholicNo  = "no"
)

type Filter struct {
	Name      string        `url:"name,omitempty"`
	Estado    common.Estado `url:"estado,omitempty"`
	Alcoholic string        `url:"alcoholico,omitempty"`
	page.Request
}

type IDNameQuery struct {
	Name   string
	Active *bool
	Ready  *bool
}
