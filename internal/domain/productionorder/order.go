package productionorder

import (
	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
)

type Status string

const (
	StatusPendiente  Status = "PENDIENTE"
	StatusAprobada   Status = "APROBADA"
	StatusRechazada  Status = "RECHAZADA"
	StatusCancelada  Status = "CANCELADA"
	StatusCompletada Status = "COMPLETADA"
)

func Statuses() []Status {
	return []Status{StatusPendiente, StatusAprobada, StatusRechazada, StatusCancelada, StatusCompletada}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendiente, StatusAprobada, StatusRechazada, StatusCancelada, StatusCompletada:
		return true
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusPendiente:
		return "Pendiente"
	case StatusAprobada:
		return "Aprobada"
	case StatusRechazada:
		return "Rechazada"
	case StatusCancelada:
		return "Cancelada"
	case StatusCompletada:
		return "Completada"
	default:
		return string(s)
	}
}

// Actionable reports whether approve/reject/cancel are offered. The backend
// still decides whether the transition is valid.
func (s Status) Actionable() bool {
	return s == StatusPendiente
}

type Order struct {
	ID              int64             `json:"id"`
	ProductID       int64             `json:"productId"`
	ProductName     string            `json:"productName"`
	PackagingID     int64             `json:"packagingId,omitempty"`
	PackagingName   string            `json:"packagingName,omitempty"`
	Quantity        decimal.Decimal   `json:"quantity"`
	UnitMeasurement string            `json:"unitMeasurement"`
	Status          Status            `json:"status"`
	BatchCode       string            `json:"batchCode,omitempty"`
	PlannedDate     *common.Timestamp `json:"plannedDate,omitempty"`
	CreatedBy       string            `json:"createdByName,omitempty"`
	ApprovedBy      string            `json:"approvedByName,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CreationDate    common.Timestamp  `json:"creationDate"`
}

func (o Order) RowID() int64 { return o.ID }

type CreateInput struct {
	ProductID   int64           `json:"productId"`
	PackagingID int64           `json:"packagingId,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	PlannedDate string          `json:"plannedDate,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

type Filter struct {
	Status    Status `url:"status,omitempty"`
	ProductID int64  `url:"productId,omitempty"`
	page.Request
}
