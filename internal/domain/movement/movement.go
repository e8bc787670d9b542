package movement

import (
	"strings"

	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type Type string

const (
	TypeIngreso  Type = "INGRESO"
	TypeEgreso   Type = "EGRESO"
	TypeReserva  Type = "RESERVA"
	TypeDevuelto Type = "DEVUELTO"
)

func Types() []Type {
	return []Type{TypeIngreso, TypeEgreso, TypeReserva, TypeDevuelto}
}

func (t Type) IsValid() bool {
	switch t {
	case TypeIngreso, TypeEgreso, TypeReserva, TypeDevuelto:
		return true
	default:
		return false
	}
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Status is owned by the backend; the dashboard only reads it to decide
// which actions to offer.
type Status string

const (
	StatusPendiente  Status = "PENDIENTE"
	StatusEnProceso  Status = "EN_PROCESO"
	StatusCompletado Status = "COMPLETADO"
)

func (s Status) Label() string {
	switch s {
	case StatusPendiente:
		return "Pendiente"
	case StatusEnProceso:
		return "En proceso"
	case StatusCompletado:
		return "Completado"
	default:
		return string(s)
	}
}

// Open reports whether the movement can still be started, paused or completed.
func (s Status) Open() bool {
	return s == StatusPendiente || s == StatusEnProceso
}

type Movement struct {
	ID              int64             `json:"id"`
	MaterialID      int64             `json:"materialId"`
	MaterialCode    string            `json:"materialCode"`
	MaterialName    string            `json:"materialName"`
	Type            Type              `json:"type"`
	Status          Status            `json:"status"`
	Stock           decimal.Decimal   `json:"stock"`
	UnitMeasurement string            `json:"unitMeasurement"`
	Reason          string            `json:"reason"`
	Location        string            `json:"location,omitempty"`
	CreatedBy       string            `json:"createdByName,omitempty"`
	CompletedBy     string            `json:"completedByName,omitempty"`
	CreationDate    common.Timestamp  `json:"creationDate"`
	RealizationDate *common.Timestamp `json:"realizationDate,omitempty"`
}

func (m Movement) RowID() int64 { return m.ID }

type CreateInput struct {
	MaterialID int64           `json:"materialId"`
	Type       Type            `json:"type"`
	Stock      decimal.Decimal `json:"stock"`
	Reason     string          `json:"reason"`
	Location   string          `json:"location,omitempty"`
}

// Filter is the movements page filter. Dates are UI-level YYYY-MM-DD.
type Filter struct {
	Type       Type   `url:"type,omitempty"`
	MaterialID int64  `url:"materialId,omitempty"`
	StartDate  string `url:"startDate,omitempty"`
	EndDate    string `url:"endDate,omitempty"`
	page.Request
}
