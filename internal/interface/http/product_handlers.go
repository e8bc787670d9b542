package http

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/product"
	"example.com/brewery-admin/internal/usecase/filter"
)

type productForm struct {
	Name             string `form:"name" label:"Nombre" validate:"required,max=120"`
	IsAlcoholic      bool   `form:"isAlcoholic" label:"Alcohólico"`
	AlcoholContent   string `form:"alcoholContent" label:"Graduación" validate:"omitempty,decimal"`
	StandardQuantity string `form:"standardQuantity" label:"Cantidad estándar" validate:"required,positive"`
	UnitMeasurement  string `form:"unitMeasurement" label:"Unidad" validate:"required,max=20"`
}

func (a *API) productRoutes(r chi.Router) {
	a.productResource().routes(r)
}

func (a *API) productResource() *resource[product.Product] {
	return &resource[product.Product]{
		api:      a,
		base:     "/products",
		title:    "Productos",
		keys:     filter.ProductKeys,
		registry: a.productCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.Products(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[product.Product], error) {
			f := filter.Products(v)
			f.Request = a.sized(f.Request)
			return a.products.List(ctx, f)
		},
		get: a.products.GetByID,
		columns: []Column[product.Product]{
			{Key: "name", Label: "Nombre", Value: func(p product.Product) any { return p.Name }},
			{Key: "isAlcoholic", Label: "Alcohólico", Value: func(p product.Product) any { return p.IsAlcoholic }},
			{Key: "alcoholContent", Label: "Graduación", Value: func(p product.Product) any { return p.AlcoholContent.String() + " %" }},
			{Key: "standardQuantity", Label: "Cantidad estándar", Value: func(p product.Product) any { return p.StandardQuantity.String() + " " + p.UnitMeasurement }},
			{
				Key:   "isReady",
				Label: "Fase",
				Value: func(p product.Product) any { return p.IsReady },
				Render: func(_ any, p product.Product) template.HTML {
					if p.IsReady {
						return badge("Listo", "success")
					}
					return badge("En desarrollo", "info")
				},
			},
			activeColumn(func(p product.Product) bool { return p.IsActive }),
		},
		actions: Actions[product.Product]{
			View:         true,
			Edit:         true,
			ToggleStatus: func(p product.Product) bool { return p.IsActive },
		},
		filters: func(_ *http.Request, v url.Values) []formField {
			f := filter.Products(v)
			return []formField{
				{Name: "name", Label: "Nombre", Type: "text", Value: f.Name, Placeholder: "Buscar por nombre"},
				{Name: "estado", Label: "Estado", Type: "select", Options: estadoOptions(f.Estado)},
				{Name: "alcoholico", Label: "Alcohólico", Type: "select", Options: []option{
					{Value: product.AlcoholicAll, Label: "Todos", Selected: f.Alcoholic == product.AlcoholicAll},
					{Value: product.AlcoholicYes, Label: "Sí", Selected: f.Alcoholic == product.AlcoholicYes},
					{Value: product.AlcoholicNo, Label: "No", Selected: f.Alcoholic == product.AlcoholicNo},
				}},
			}
		},
		detail: func(p product.Product) []detailRow {
			return []detailRow{
				textRow("Nombre", p.Name),
				textRow("Alcohólico", formatCell(p.IsAlcoholic)),
				textRow("Graduación", p.AlcoholContent.String()+" %"),
				textRow("Cantidad estándar", p.StandardQuantity.String()+" "+p.UnitMeasurement),
				textRow("Listo para producción", formatCell(p.IsReady)),
				{Label: "Estado", Value: badge(common.ActiveLabel(p.IsActive), activeStyle(p.IsActive))},
			}
		},
		form:         productFields,
		save:         a.saveProduct,
		createLabel:  "Nuevo producto",
		created:      "Producto creado",
		updated:      "Producto actualizado",
		saveFailed:   "Error al guardar el producto",
		toggle:       a.products.ToggleActive,
		flip:         func(p product.Product) product.Product { p.IsActive = !p.IsActive; return p },
		toggleFailed: "Error al cambiar estado del producto",
	}
}

func productFields(_ *http.Request, p *product.Product, submitted url.Values) []formField {
	var cur product.Product
	if p != nil {
		cur = *p
	}
	return []formField{
		{Name: "name", Label: "Nombre", Type: "text", Required: true, Value: pick(submitted, "name", cur.Name)},
		{Name: "isAlcoholic", Label: "Alcohólico", Type: "checkbox", Checked: pickChecked(submitted, "isAlcoholic", cur.IsAlcoholic)},
		{Name: "alcoholContent", Label: "Graduación", Type: "number", Step: "0.1", Value: pick(submitted, "alcoholContent", decimalValue(p, cur.AlcoholContent.String()))},
		{Name: "standardQuantity", Label: "Cantidad estándar", Type: "number", Step: "0.001", Required: true, Value: pick(submitted, "standardQuantity", decimalValue(p, cur.StandardQuantity.String()))},
		{Name: "unitMeasurement", Label: "Unidad", Type: "text", Required: true, Value: pick(submitted, "unitMeasurement", cur.UnitMeasurement)},
	}
}

func (a *API) saveProduct(ctx context.Context, _ *http.Request, id int64, v url.Values) (fieldErrors, error) {
	var f productForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	errs := a.validator.Check(&f)
	if f.IsAlcoholic && f.AlcoholContent == "" {
		if errs == nil {
			errs = fieldErrors{}
		}
		errs["alcoholContent"] = "Graduación es un campo requerido"
	}
	if len(errs) > 0 {
		return errs, nil
	}
	content := parseDecimal(f.AlcoholContent)
	if !f.IsAlcoholic {
		content = parseDecimal("0")
	}
	quantity := parseDecimal(f.StandardQuantity)
	if id == 0 {
		_, err := a.products.Create(ctx, product.CreateInput{
			Name:             f.Name,
			IsAlcoholic:      f.IsAlcoholic,
			AlcoholContent:   content,
			StandardQuantity: quantity,
			UnitMeasurement:  f.UnitMeasurement,
		})
		return nil, err
	}
	_, err := a.products.Update(ctx, id, product.UpdateInput{
		Name:             &f.Name,
		IsAlcoholic:      &f.IsAlcoholic,
		AlcoholContent:   &content,
		StandardQuantity: &quantity,
		UnitMeasurement:  &f.UnitMeasurement,
	})
	return nil, err
}
