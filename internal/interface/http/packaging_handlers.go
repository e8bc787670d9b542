package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/usecase/filter"
)

type packagingForm struct {
	Name            string `form:"name" label:"Nombre" validate:"required,max=120"`
	Quantity        string `form:"quantity" label:"Cantidad" validate:"required,positive"`
	UnitMeasurement string `form:"unitMeasurement" label:"Unidad" validate:"required,max=20"`
	MaterialID      string `form:"materialId" label:"Material" validate:"required,numeric"`
}

func (a *API) packagingRoutes(r chi.Router) {
	a.packagingResource().routes(r)
}

func (a *API) packagingResource() *resource[packaging.Packaging] {
	return &resource[packaging.Packaging]{
		api:      a,
		base:     "/packagings",
		title:    "Envases",
		keys:     filter.PackagingKeys,
		registry: a.packagingCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.Packagings(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[packaging.Packaging], error) {
			f := filter.Packagings(v)
			f.Request = a.sized(f.Request)
			return a.packagings.List(ctx, f)
		},
		get: a.packagings.GetByID,
		columns: []Column[packaging.Packaging]{
			{Key: "name", Label: "Nombre", Value: func(p packaging.Packaging) any { return p.Name }},
			{Key: "quantity", Label: "Cantidad", Value: func(p packaging.Packaging) any { return p.Quantity.String() + " " + p.UnitMeasurement }},
			{Key: "material", Label: "Material", Value: func(p packaging.Packaging) any { return p.MaterialName }},
			activeColumn(func(p packaging.Packaging) bool { return p.IsActive }),
		},
		actions: Actions[packaging.Packaging]{
			View:         true,
			Edit:         true,
			ToggleStatus: func(p packaging.Packaging) bool { return p.IsActive },
		},
		filters: func(_ *http.Request, v url.Values) []formField {
			f := filter.Packagings(v)
			return []formField{
				{Name: "name", Label: "Nombre", Type: "text", Value: f.Name, Placeholder: "Buscar por nombre"},
				{Name: "estado", Label: "Estado", Type: "select", Options: estadoOptions(f.Estado)},
			}
		},
		detail: func(p packaging.Packaging) []detailRow {
			return []detailRow{
				textRow("Nombre", p.Name),
				textRow("Cantidad", p.Quantity.String()+" "+p.UnitMeasurement),
				textRow("Material", p.MaterialName),
				{Label: "Estado", Value: badge(common.ActiveLabel(p.IsActive), activeStyle(p.IsActive))},
			}
		},
		form:         a.packagingFields,
		save:         a.savePackaging,
		createLabel:  "Nuevo envase",
		created:      "Envase creado",
		updated:      "Envase actualizado",
		saveFailed:   "Error al guardar el envase",
		toggle:       a.packagings.ToggleActive,
		flip:         func(p packaging.Packaging) packaging.Packaging { p.IsActive = !p.IsActive; return p },
		toggleFailed: "Error al cambiar estado del envase",
	}
}

func (a *API) packagingFields(r *http.Request, p *packaging.Packaging, submitted url.Values) []formField {
	var cur packaging.Packaging
	if p != nil {
		cur = *p
	}
	materialID := cur.MaterialID
	if submitted != nil {
		materialID = parseInt64(submitted.Get("materialId"))
	}
	material := a.materialPickerField(r, "materialId", "Material", materialID)
	material.Required = true
	return []formField{
		{Name: "name", Label: "Nombre", Type: "text", Required: true, Value: pick(submitted, "name", cur.Name)},
		{Name: "quantity", Label: "Cantidad", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "quantity", decimalValue(p, cur.Quantity.String()))},
		{Name: "unitMeasurement", Label: "Unidad", Type: "text", Required: true, Value: pick(submitted, "unitMeasurement", cur.UnitMeasurement)},
		material,
	}
}

func (a *API) savePackaging(ctx context.Context, _ *http.Request, id int64, v url.Values) (fieldErrors, error) {
	var f packagingForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	if errs := a.validator.Check(&f); len(errs) > 0 {
		return errs, nil
	}
	quantity := parseDecimal(f.Quantity)
	materialID := parseInt64(f.MaterialID)
	if id == 0 {
		_, err := a.packagings.Create(ctx, packaging.CreateInput{
			Name:            f.Name,
			Quantity:        quantity,
			UnitMeasurement: f.UnitMeasurement,
			MaterialID:      materialID,
		})
		return nil, err
	}
	_, err := a.packagings.Update(ctx, id, packaging.UpdateInput{
		Name:            &f.Name,
		Quantity:        &quantity,
		UnitMeasurement: &f.UnitMeasurement,
		MaterialID:      &materialID,
	})
	return nil, err
}
