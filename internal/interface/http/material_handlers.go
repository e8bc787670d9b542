package http

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/warehouse"
	"example.com/brewery-admin/internal/usecase/filter"
)

type materialForm struct {
	Name             string `form:"name" label:"Nombre" validate:"required,max=120"`
	Type             string `form:"type" label:"Tipo" validate:"required,oneof=MALTA LUPULO LEVADURA AGUA ENVASE ETIQUETA OTROS"`
	Supplier         string `form:"supplier" label:"Proveedor" validate:"max=120"`
	Value            string `form:"value" label:"Valor" validate:"required,decimal"`
	Stock            string `form:"stock" label:"Stock" validate:"omitempty,decimal"`
	UnitMeasurement  string `form:"unitMeasurement" label:"Unidad" validate:"required,max=20"`
	Threshold        string `form:"threshold" label:"Umbral" validate:"required,decimal"`
	WarehouseZone    string `form:"warehouseZone" label:"Zona"`
	WarehouseSection string `form:"warehouseSection" label:"Sección" validate:"max=20"`
	WarehouseLevel   string `form:"warehouseLevel" label:"Nivel" validate:"omitempty,numeric"`
}

func (a *API) materialRoutes(r chi.Router) {
	a.materialResource().routes(r)
}

func (a *API) materialResource() *resource[material.Material] {
	return &resource[material.Material]{
		api:      a,
		base:     "/materials",
		title:    "Materiales",
		keys:     filter.MaterialKeys,
		registry: a.materialCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.Materials(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[material.Material], error) {
			f := filter.Materials(v)
			f.Request = a.sized(f.Request)
			return a.materials.List(ctx, f)
		},
		get:     a.materials.GetByID,
		columns: materialColumns(),
		actions: Actions[material.Material]{
			View:         true,
			Edit:         true,
			ToggleStatus: func(m material.Material) bool { return m.IsActive },
		},
		filters:      materialFilters,
		detail:       materialDetail,
		form:         materialFields,
		save:         a.saveMaterial,
		createLabel:  "Nuevo material",
		created:      "Material creado",
		updated:      "Material actualizado",
		saveFailed:   "Error al guardar el material",
		toggle:       a.materials.ToggleActive,
		flip:         func(m material.Material) material.Material { m.IsActive = !m.IsActive; return m },
		toggleFailed: "Error al cambiar estado del material",
	}
}

func materialColumns() []Column[material.Material] {
	return []Column[material.Material]{
		{Key: "code", Label: "Código", Value: func(m material.Material) any { return m.Code }},
		{Key: "name", Label: "Nombre", Value: func(m material.Material) any { return m.Name }},
		{Key: "type", Label: "Tipo", Value: func(m material.Material) any { return string(m.Type) }},
		{Key: "supplier", Label: "Proveedor", Value: func(m material.Material) any { return m.Supplier }},
		{
			Key:   "stock",
			Label: "Stock",
			Value: func(m material.Material) any { return m.Stock },
			Render: func(_ any, m material.Material) template.HTML {
				out := template.HTMLEscapeString(m.Stock.String() + " " + m.UnitMeasurement)
				if m.BelowThreshold() {
					return template.HTML(out) + " " + badge("Stock bajo", "warning")
				}
				return template.HTML(out)
			},
		},
		{Key: "available", Label: "Disponible", Value: func(m material.Material) any { return m.Available() }},
		activeColumn(func(m material.Material) bool { return m.IsActive }),
	}
}

func materialFilters(_ *http.Request, v url.Values) []formField {
	f := filter.Materials(v)
	return []formField{
		{Name: "name", Label: "Nombre", Type: "text", Value: f.Name, Placeholder: "Buscar por nombre"},
		{Name: "supplier", Label: "Proveedor", Type: "text", Value: f.Supplier},
		{Name: "type", Label: "Tipo", Type: "select", Options: materialTypeOptions(string(f.Type), "Todos")},
		{Name: "estado", Label: "Estado", Type: "select", Options: estadoOptions(f.Estado)},
	}
}

func materialDetail(m material.Material) []detailRow {
	rows := []detailRow{
		textRow("Código", m.Code),
		textRow("Nombre", m.Name),
		textRow("Tipo", string(m.Type)),
		textRow("Proveedor", m.Supplier),
		textRow("Valor", m.Value.String()),
		textRow("Stock", m.Stock.String()+" "+m.UnitMeasurement),
		textRow("Stock reservado", m.ReservedStock.String()+" "+m.UnitMeasurement),
		textRow("Disponible", m.Available().String()+" "+m.UnitMeasurement),
		textRow("Umbral", m.Threshold.String()),
		{Label: "Estado", Value: badge(common.ActiveLabel(m.IsActive), activeStyle(m.IsActive))},
		textRow("Creado", m.CreationDate.Display()),
	}
	if m.WarehouseZone != "" {
		loc := m.WarehouseZone
		if m.WarehouseSection != "" {
			loc += " / " + m.WarehouseSection
		}
		if m.WarehouseLevel > 0 {
			loc += " / nivel " + strconv.Itoa(m.WarehouseLevel)
		}
		rows = append(rows, textRow("Ubicación", loc))
	}
	return rows
}

func materialFields(_ *http.Request, m *material.Material, submitted url.Values) []formField {
	var cur material.Material
	if m != nil {
		cur = *m
	}
	level := ""
	if cur.WarehouseLevel > 0 {
		level = strconv.Itoa(cur.WarehouseLevel)
	}
	fields := []formField{
		{Name: "name", Label: "Nombre", Type: "text", Required: true, Value: pick(submitted, "name", cur.Name)},
		{Name: "type", Label: "Tipo", Type: "select", Required: true, Options: materialTypeOptions(pick(submitted, "type", string(cur.Type)), "Seleccione")},
		{Name: "supplier", Label: "Proveedor", Type: "text", Value: pick(submitted, "supplier", cur.Supplier)},
		{Name: "value", Label: "Valor", Type: "number", Step: "0.01", Required: true, Value: pick(submitted, "value", decimalValue(m, cur.Value.String()))},
	}
	if m == nil {
		fields = append(fields, formField{Name: "stock", Label: "Stock", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "stock", "")})
	}
	fields = append(fields,
		formField{Name: "unitMeasurement", Label: "Unidad", Type: "text", Required: true, Value: pick(submitted, "unitMeasurement", cur.UnitMeasurement)},
		formField{Name: "threshold", Label: "Umbral", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "threshold", decimalValue(m, cur.Threshold.String()))},
		formField{Name: "warehouseZone", Label: "Zona", Type: "select", Options: zoneOptions(pick(submitted, "warehouseZone", cur.WarehouseZone), "Sin ubicación")},
		formField{Name: "warehouseSection", Label: "Sección", Type: "text", Value: pick(submitted, "warehouseSection", cur.WarehouseSection)},
		formField{Name: "warehouseLevel", Label: "Nivel", Type: "number", Step: "1", Value: pick(submitted, "warehouseLevel", level)},
	)
	return fields
}

func (a *API) saveMaterial(ctx context.Context, _ *http.Request, id int64, v url.Values) (fieldErrors, error) {
	var f materialForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	errs := a.validator.Check(&f)
	if id == 0 && f.Stock == "" {
		if errs == nil {
			errs = fieldErrors{}
		}
		errs["stock"] = "Stock es un campo requerido"
	}
	if len(errs) > 0 {
		return errs, nil
	}

	typ := material.Type(f.Type)
	value := parseDecimal(f.Value)
	threshold := parseDecimal(f.Threshold)
	level := parseInt(f.WarehouseLevel)
	if id == 0 {
		_, err := a.materials.Create(ctx, material.CreateInput{
			Name:             f.Name,
			Type:             typ,
			Supplier:         f.Supplier,
			Value:            value,
			Stock:            parseDecimal(f.Stock),
			UnitMeasurement:  f.UnitMeasurement,
			Threshold:        threshold,
			WarehouseZone:    f.WarehouseZone,
			WarehouseSection: f.WarehouseSection,
			WarehouseLevel:   level,
		})
		return nil, err
	}
	_, err := a.materials.Update(ctx, id, material.UpdateInput{
		Name:             &f.Name,
		Type:             &typ,
		Supplier:         &f.Supplier,
		Value:            &value,
		UnitMeasurement:  &f.UnitMeasurement,
		Threshold:        &threshold,
		WarehouseZone:    &f.WarehouseZone,
		WarehouseSection: &f.WarehouseSection,
		WarehouseLevel:   &level,
	})
	return nil, err
}

func materialTypeOptions(selected, blank string) []option {
	types := material.Types()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return selectOptions(values, nil, selected, blank)
}

func zoneOptions(selected, blank string) []option {
	zones := warehouse.Zones()
	values := make([]string, len(zones))
	for i, z := range zones {
		values[i] = string(z)
	}
	return selectOptions(values, nil, selected, blank)
}

func estadoOptions(selected common.Estado) []option {
	opts := common.EstadoOptions()
	values := make([]string, len(opts))
	for i, e := range opts {
		values[i] = string(e)
	}
	return selectOptions(values, nil, string(selected), "")
}

func textRow(label, value string) detailRow {
	return detailRow{Label: label, Value: template.HTML(template.HTMLEscapeString(formatCell(value)))}
}

func activeStyle(active bool) string {
	if active {
		return "success"
	}
	return "muted"
}

// decimalValue leaves numeric inputs blank on create instead of showing 0.
func decimalValue[T any](row *T, s string) string {
	if row == nil {
		return ""
	}
	return s
}
