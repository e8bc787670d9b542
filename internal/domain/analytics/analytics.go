package analytics

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Report string

const (
	ReportMaterialConsumption Report = "monthly-material-consumption"
	ReportMaterialIngress     Report = "monthly-material-ingress"
	ReportProductProduction   Report = "monthly-production"
)

func Reports() []Report {
	return []Report{ReportMaterialConsumption, ReportMaterialIngress, ReportProductProduction}
}

func (r Report) IsValid() bool {
	for _, known := range Reports() {
		if r == known {
			return true
		}
	}
	return false
}

func (r Report) Label() string {
	switch r {
	case ReportMaterialConsumption:
		return "Consumo mensual de materiales"
	case ReportMaterialIngress:
		return "Ingresos mensuales de materiales"
	case ReportProductProduction:
		return "Producción mensual"
	default:
		return string(r)
	}
}

type Point struct {
	Period string          `json:"month"`
	Value  decimal.Decimal `json:"total"`
}

type Query struct {
	MaterialID int64
	ProductID  int64
	StartDate  string
	EndDate    string
}

var (
	ErrUnknownReport    = errors.New("unknown analytics report")
	ErrInvalidDateRange = errors.New("start date after end date")
)

// Optional filters a report page can enable.
const (
	FilterMaterial = "material"
	FilterProduct  = "product"
	FilterDates    = "dates"
)

// Filters lists the optional filters offered by the report page.
func (r Report) Filters() []string {
	if r == ReportProductProduction {
		return []string{FilterProduct, FilterDates}
	}
	return []string{FilterMaterial, FilterDates}
}

// Validate rejects a range whose start falls after its end. Dates are
// YYYY-MM-DD, so they compare as strings.
func (q Query) Validate() error {
	if q.StartDate != "" && q.EndDate != "" && q.StartDate > q.EndDate {
		return ErrInvalidDateRange
	}
	return nil
}

type Repository interface {
	Series(ctx context.Context, report Report, q Query) ([]Point, error)
}
