package http

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/usecase/filter"
)

type movementForm struct {
	MaterialID string `form:"materialId" label:"Material" validate:"required,numeric"`
	Type       string `form:"type" label:"Tipo" validate:"required,oneof=INGRESO EGRESO RESERVA DEVUELTO"`
	Stock      string `form:"stock" label:"Cantidad" validate:"required,positive"`
	Reason     string `form:"reason" label:"Motivo" validate:"required,max=255"`
	Location   string `form:"location" label:"Ubicación" validate:"max=120"`
}

func (a *API) movementRoutes(r chi.Router) {
	a.movementResource().routes(r)
}

func (a *API) movementResource() *resource[movement.Movement] {
	return &resource[movement.Movement]{
		api:      a,
		base:     "/movements",
		title:    "Movimientos",
		keys:     filter.MovementKeys,
		registry: a.movementCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.Movements(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[movement.Movement], error) {
			f := filter.Movements(v)
			f.Request = a.sized(f.Request)
			return a.movements.List(ctx, f)
		},
		get:     a.movements.GetByID,
		columns: movementColumns(),
		actions: Actions[movement.Movement]{
			View: true,
			Custom: []CustomAction[movement.Movement]{
				{
					Label: "Iniciar",
					Path:  "toggle-in-progress",
					Style: "primary",
					Show:  func(m movement.Movement) bool { return m.Status == movement.StatusPendiente },
				},
				{
					Label: "Pausar",
					Path:  "toggle-in-progress",
					Style: "secondary",
					Show:  func(m movement.Movement) bool { return m.Status == movement.StatusEnProceso },
				},
				{
					Label:   "Completar",
					Path:    "complete",
					Style:   "success",
					Confirm: "¿Confirma completar el movimiento?",
					Show:    func(m movement.Movement) bool { return m.Status.Open() },
				},
			},
		},
		filters:     a.movementFilters,
		detail:      movementDetail,
		form:        a.movementFields,
		save:        a.saveMovement,
		createLabel: "Nuevo movimiento",
		created:     "Movimiento creado",
		saveFailed:  "Error al registrar el movimiento",
		rowActions: []rowAction[movement.Movement]{
			{
				path: "toggle-in-progress",
				apply: func(m movement.Movement) movement.Movement {
					switch m.Status {
					case movement.StatusPendiente:
						m.Status = movement.StatusEnProceso
					case movement.StatusEnProceso:
						m.Status = movement.StatusPendiente
					}
					return m
				},
				call:    a.movements.ToggleInProgress,
				done:    "Movimiento actualizado",
				failure: "Error al cambiar el estado del movimiento",
			},
			{
				path: "complete",
				apply: func(m movement.Movement) movement.Movement {
					m.Status = movement.StatusCompletado
					return m
				},
				call:    a.movements.Complete,
				done:    "Movimiento completado",
				failure: "Error al completar el movimiento",
			},
		},
	}
}

func movementColumns() []Column[movement.Movement] {
	return []Column[movement.Movement]{
		{Key: "creationDate", Label: "Fecha", Value: func(m movement.Movement) any { return m.CreationDate }},
		{Key: "material", Label: "Material", Value: func(m movement.Movement) any { return labelOf(m.MaterialCode, m.MaterialName) }},
		{Key: "type", Label: "Tipo", Value: func(m movement.Movement) any { return string(m.Type) }},
		{Key: "stock", Label: "Cantidad", Value: func(m movement.Movement) any { return m.Stock.String() + " " + m.UnitMeasurement }},
		{
			Key:   "status",
			Label: "Estado",
			Value: func(m movement.Movement) any { return m.Status },
			Render: func(_ any, m movement.Movement) template.HTML {
				return badge(m.Status.Label(), movementStatusStyle(m.Status))
			},
		},
		{Key: "createdBy", Label: "Creado por", Value: func(m movement.Movement) any { return m.CreatedBy }},
	}
}

func movementStatusStyle(s movement.Status) string {
	switch s {
	case movement.StatusEnProceso:
		return "info"
	case movement.StatusCompletado:
		return "success"
	default:
		return "warning"
	}
}

func (a *API) movementFilters(r *http.Request, v url.Values) []formField {
	f := filter.Movements(v)
	return []formField{
		{Name: "type", Label: "Tipo", Type: "select", Options: movementTypeOptions(string(f.Type), "Todos")},
		a.materialPickerField(r, "materialId", "Material", f.MaterialID),
		{Name: "startDate", Label: "Desde", Type: "date", Value: f.StartDate},
		{Name: "endDate", Label: "Hasta", Type: "date", Value: f.EndDate},
	}
}

func movementDetail(m movement.Movement) []detailRow {
	rows := []detailRow{
		textRow("Material", labelOf(m.MaterialCode, m.MaterialName)),
		textRow("Tipo", string(m.Type)),
		{Label: "Estado", Value: badge(m.Status.Label(), movementStatusStyle(m.Status))},
		textRow("Cantidad", m.Stock.String()+" "+m.UnitMeasurement),
		textRow("Motivo", m.Reason),
		textRow("Ubicación", m.Location),
		textRow("Creado por", m.CreatedBy),
		textRow("Fecha", m.CreationDate.Display()),
	}
	if m.RealizationDate != nil {
		rows = append(rows,
			textRow("Completado por", m.CompletedBy),
			textRow("Fecha de realización", m.RealizationDate.Display()),
		)
	}
	return rows
}

// movementFields defaults the material to the one used for the previous
// movement of the session.
func (a *API) movementFields(r *http.Request, _ *movement.Movement, submitted url.Values) []formField {
	var materialID int64
	if submitted != nil {
		materialID = parseInt64(submitted.Get("materialId"))
	} else if id, ok, err := a.memory.RelatedMaterial(r.Context(), sessionID(r)); err == nil && ok {
		materialID = id
	}
	material := a.materialPickerField(r, "materialId", "Material", materialID)
	material.Required = true
	return []formField{
		material,
		{Name: "type", Label: "Tipo", Type: "select", Required: true, Options: movementTypeOptions(pick(submitted, "type", ""), "Seleccione")},
		{Name: "stock", Label: "Cantidad", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "stock", "")},
		{Name: "reason", Label: "Motivo", Type: "textarea", Required: true, Value: pick(submitted, "reason", "")},
		{Name: "location", Label: "Ubicación", Type: "text", Value: pick(submitted, "location", "")},
	}
}

func (a *API) saveMovement(ctx context.Context, r *http.Request, _ int64, v url.Values) (fieldErrors, error) {
	var f movementForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	if errs := a.validator.Check(&f); len(errs) > 0 {
		return errs, nil
	}
	materialID := parseInt64(f.MaterialID)
	_, err := a.movements.Create(ctx, movement.CreateInput{
		MaterialID: materialID,
		Type:       movement.Type(f.Type),
		Stock:      parseDecimal(f.Stock),
		Reason:     f.Reason,
		Location:   f.Location,
	})
	if err != nil {
		return nil, err
	}
	if err := a.memory.RememberRelatedMaterial(ctx, sessionID(r), materialID); err != nil {
		a.logger.WarnContext(ctx, "remember related material", "err", err)
	}
	return nil, nil
}

func movementTypeOptions(selected, blank string) []option {
	types := movement.Types()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return selectOptions(values, nil, selected, blank)
}

func labelOf(code, name string) string {
	switch {
	case code == "":
		return name
	case name == "":
		return code
	default:
		return code + " - " + name
	}
}
