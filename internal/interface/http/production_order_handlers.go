package http

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/productionorder"
	"example.com/brewery-admin/internal/usecase/filter"
)

type productionOrderForm struct {
	ProductID   string `form:"productId" label:"Producto" validate:"required,numeric"`
	PackagingID string `form:"packagingId" label:"Envase" validate:"omitempty,numeric"`
	Quantity    string `form:"quantity" label:"Cantidad" validate:"required,positive"`
	PlannedDate string `form:"plannedDate" label:"Fecha planificada" validate:"omitempty,day"`
	Notes       string `form:"notes" label:"Notas" validate:"max=500"`
}

func (a *API) productionOrderRoutes(r chi.Router) {
	a.productionOrderResource().routes(r)
}

func (a *API) productionOrderResource() *resource[productionorder.Order] {
	pending := func(o productionorder.Order) bool { return o.Status.Actionable() }
	setStatus := func(s productionorder.Status) func(productionorder.Order) productionorder.Order {
		return func(o productionorder.Order) productionorder.Order {
			o.Status = s
			return o
		}
	}
	return &resource[productionorder.Order]{
		api:      a,
		base:     "/production-orders",
		title:    "Órdenes de producción",
		keys:     filter.ProductionOrderKeys,
		registry: a.orderCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.ProductionOrders(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[productionorder.Order], error) {
			f := filter.ProductionOrders(v)
			f.Request = a.sized(f.Request)
			return a.orders.List(ctx, f)
		},
		get:     a.orders.GetByID,
		columns: productionOrderColumns(),
		actions: Actions[productionorder.Order]{
			View: true,
			Custom: []CustomAction[productionorder.Order]{
				{Label: "Aprobar", Path: "approve", Style: "success", Confirm: "¿Aprobar la orden de producción?", Show: pending},
				{Label: "Rechazar", Path: "reject", Style: "danger", Confirm: "¿Rechazar la orden de producción?", Show: pending},
				{Label: "Cancelar", Path: "cancel", Style: "secondary", Confirm: "¿Cancelar la orden de producción?", Show: pending},
			},
		},
		filters:     a.productionOrderFilters,
		detail:      productionOrderDetail,
		form:        a.productionOrderFields,
		save:        a.saveProductionOrder,
		createLabel: "Nueva orden",
		created:     "Orden de producción creada",
		saveFailed:  "Error al crear la orden de producción",
		rowActions: []rowAction[productionorder.Order]{
			{path: "approve", apply: setStatus(productionorder.StatusAprobada), call: a.orders.Approve, done: "Orden aprobada", failure: "Error al aprobar la orden"},
			{path: "reject", apply: setStatus(productionorder.StatusRechazada), call: a.orders.Reject, done: "Orden rechazada", failure: "Error al rechazar la orden"},
			{path: "cancel", apply: setStatus(productionorder.StatusCancelada), call: a.orders.Cancel, done: "Orden cancelada", failure: "Error al cancelar la orden"},
		},
	}
}

func productionOrderColumns() []Column[productionorder.Order] {
	return []Column[productionorder.Order]{
		{Key: "batchCode", Label: "Lote", Value: func(o productionorder.Order) any { return o.BatchCode }},
		{Key: "product", Label: "Producto", Value: func(o productionorder.Order) any { return o.ProductName }},
		{Key: "quantity", Label: "Cantidad", Value: func(o productionorder.Order) any { return o.Quantity.String() + " " + o.UnitMeasurement }},
		{
			Key:   "status",
			Label: "Estado",
			Value: func(o productionorder.Order) any { return o.Status },
			Render: func(_ any, o productionorder.Order) template.HTML {
				return badge(o.Status.Label(), orderStatusStyle(o.Status))
			},
		},
		{Key: "plannedDate", Label: "Fecha planificada", Value: func(o productionorder.Order) any { return o.PlannedDate }},
		{Key: "createdBy", Label: "Creada por", Value: func(o productionorder.Order) any { return o.CreatedBy }},
	}
}

func orderStatusStyle(s productionorder.Status) string {
	switch s {
	case productionorder.StatusAprobada, productionorder.StatusCompletada:
		return "success"
	case productionorder.StatusRechazada:
		return "danger"
	case productionorder.StatusCancelada:
		return "muted"
	default:
		return "warning"
	}
}

func (a *API) productionOrderFilters(r *http.Request, v url.Values) []formField {
	f := filter.ProductionOrders(v)
	statuses := productionorder.Statuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	labels := func(s string) string { return productionorder.Status(s).Label() }
	return []formField{
		{Name: "status", Label: "Estado", Type: "select", Options: selectOptions(values, labels, string(f.Status), "Todos")},
		a.productPickerField(r, "productId", "Producto", f.ProductID),
	}
}

func productionOrderDetail(o productionorder.Order) []detailRow {
	planned := "-"
	if o.PlannedDate != nil {
		planned = o.PlannedDate.Display()
	}
	return []detailRow{
		textRow("Lote", o.BatchCode),
		textRow("Producto", o.ProductName),
		textRow("Envase", o.PackagingName),
		textRow("Cantidad", o.Quantity.String()+" "+o.UnitMeasurement),
		{Label: "Estado", Value: badge(o.Status.Label(), orderStatusStyle(o.Status))},
		textRow("Fecha planificada", planned),
		textRow("Creada por", o.CreatedBy),
		textRow("Aprobada por", o.ApprovedBy),
		textRow("Notas", o.Notes),
		textRow("Creada", o.CreationDate.Display()),
	}
}

func (a *API) productionOrderFields(r *http.Request, _ *productionorder.Order, submitted url.Values) []formField {
	var productID int64
	if submitted != nil {
		productID = parseInt64(submitted.Get("productId"))
	}
	product := a.productPickerField(r, "productId", "Producto", productID)
	product.Required = true
	return []formField{
		product,
		{Name: "packagingId", Label: "Envase", Type: "select", Options: a.packagingOptions(r, pick(submitted, "packagingId", ""))},
		{Name: "quantity", Label: "Cantidad", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "quantity", "")},
		{Name: "plannedDate", Label: "Fecha planificada", Type: "date", Value: pick(submitted, "plannedDate", "")},
		{Name: "notes", Label: "Notas", Type: "textarea", Value: pick(submitted, "notes", "")},
	}
}

// packagingOptions lists the active packagings; a failed lookup leaves only
// the blank choice.
func (a *API) packagingOptions(r *http.Request, selected string) []option {
	opts := []option{{Value: "", Label: "Sin envase", Selected: selected == ""}}
	p, err := a.packagings.List(r.Context(), packaging.Filter{
		Estado:  common.EstadoActivo,
		Request: page.Request{Size: 100},
	})
	if err != nil {
		a.logger.WarnContext(r.Context(), "list packagings for order form", "err", err)
		return opts
	}
	for _, pk := range p.Items {
		id := strconv.FormatInt(pk.ID, 10)
		opts = append(opts, option{Value: id, Label: pk.Name, Selected: id == selected})
	}
	return opts
}

func (a *API) saveProductionOrder(ctx context.Context, _ *http.Request, _ int64, v url.Values) (fieldErrors, error) {
	var f productionOrderForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	if errs := a.validator.Check(&f); len(errs) > 0 {
		return errs, nil
	}
	_, err := a.orders.Create(ctx, productionorder.CreateInput{
		ProductID:   parseInt64(f.ProductID),
		PackagingID: parseInt64(f.PackagingID),
		Quantity:    parseDecimal(f.Quantity),
		PlannedDate: f.PlannedDate,
		Notes:       f.Notes,
	})
	return nil, err
}
