package material

import (
	"strings"

	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type Type string

const (
	TypeMalta    Type = "MALTA"
	TypeLupulo   Type = "LUPULO"
	TypeLevadura Type = "LEVADURA"
	TypeAgua     Type = "AGUA"
	TypeEnvase   Type = "ENVASE"
	TypeEtiqueta Type = "ETIQUETA"
	TypeOtros    Type = "OTROS"
)

var types = []Type{TypeMalta, TypeLupulo, TypeLevadura, TypeAgua, TypeEnvase, TypeEtiqueta, TypeOtros}

// Types lists the material types in display order.
func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

func (t Type) IsValid() bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// ParseType normalizes user input; an unknown value yields ErrInvalidType.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Material struct {
	ID               int64            `json:"id"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	Type             Type             `json:"type"`
	Supplier         string           `json:"supplier"`
	Value            decimal.Decimal  `json:"value"`
	Stock            decimal.Decimal  `json:"stock"`
	ReservedStock    decimal.Decimal  `json:"reservedStock"`
	UnitMeasurement  string           `json:"unitMeasurement"`
	Threshold        decimal.Decimal  `json:"threshold"`
	IsActive         bool             `json:"isActive"`
	WarehouseZone    string           `json:"warehouseZone,omitempty"`
	WarehouseSection string           `json:"warehouseSection,omitempty"`
	WarehouseLevel   int              `json:"warehouseLevel,omitempty"`
	CreationDate     common.Timestamp `json:"creationDate"`
}

func (m Material) RowID() int64 { return m.ID }

// Available is the stock not held by reservations.
func (m Material) Available() decimal.Decimal {
	return m.Stock.Sub(m.ReservedStock)
}

// BelowThreshold reports whether the on-hand stock reached the alert level.
func (m Material) BelowThreshold() bool {
	return m.Threshold.IsPositive() && m.Stock.LessThanOrEqual(m.Threshold)
}

// IDName is the lightweight payload used by search pickers.
type IDName struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Location is one material pinned on the warehouse map.
type Location struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      Type            `json:"type"`
	Zone      string          `json:"warehouseZone"`
	Section   string          `json:"warehouseSection"`
	Level     int             `json:"warehouseLevel"`
	Stock     decimal.Decimal `json:"stock"`
	Threshold decimal.Decimal `json:"threshold"`
	Unit      string          `json:"unitMeasurement"`
	IsActive  bool            `json:"isActive"`
}

func (l Location) LowStock() bool {
	return l.Threshold.IsPositive() && l.Stock.LessThanOrEqual(l.Threshold)
}

type CreateInput struct {
	Name             string          `json:"name"`
	Type             Type            `json:"type"`
	Supplier         string          `json:"supplier,omitempty"`
	Value            decimal.Decimal `json:"value"`
	Stock            decimal.Decimal `json:"stock"`
	UnitMeasurement  string          `json:"unitMeasurement"`
	Threshold        decimal.Decimal `json:"threshold"`
	WarehouseZone    string          `json:"warehouseZone,omitempty"`
	WarehouseSection string          `json:"warehouseSection,omitempty"`
	WarehouseLevel   int             `json:"warehouseLevel,omitempty"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name             *string          `json:"name,omitempty"`
	Type             *Type            `json:"type,omitempty"`
	Supplier         *string          `json:"supplier,omitempty"`
	Value            *decimal.Decimal `json:"value,omitempty"`
	UnitMeasurement  *string          `json:"unitMeasurement,omitempty"`
	Threshold        *decimal.Decimal `json:"threshold,omitempty"`
	WarehouseZone    *string          `json:"warehouseZone,omitempty"`
	WarehouseSection *string          `json:"warehouseSection,omitempty"`
	WarehouseLevel   *int             `json:"warehouseLevel,omitempty"`
}

// Filter is the materials page filter as it appears in the URL.
type Filter struct {
	Name     string        `url:"name,omitempty"`
	Supplier string        `url:"supplier,omitempty"`
	Type     Type          `url:"type,omitempty"`
	Estado   common.Estado `url:"estado,omitempty"`
	page.Request
}

// IDNameQuery narrows the picker list.
type IDNameQuery struct {
	Name   string
	Active *bool
	Phase  string
	Type   Type
}

// MapQuery narrows the warehouse overlay.
type MapQuery struct {
	Zone       string
	ActiveOnly bool
}
