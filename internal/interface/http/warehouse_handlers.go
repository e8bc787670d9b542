package http

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/warehouse"
	"example.com/brewery-admin/internal/usecase/filter"
)

type warehouseView struct {
	Filter     filterView
	Layout     template.HTML
	MarkersURL string
	Zone       string
}

type markerResponse struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      material.Type   `json:"type"`
	Zone      string          `json:"zone"`
	Section   string          `json:"section"`
	Level     int             `json:"level"`
	Stock     decimal.Decimal `json:"stock"`
	Threshold decimal.Decimal `json:"threshold"`
	Unit      string          `json:"unit"`
	LowStock  bool            `json:"lowStock"`
	Active    bool            `json:"active"`
}

// GET /warehouse
//
// The layout SVG comes from the backend and is inlined as trusted markup;
// the material markers are loaded by the page from materials.json.
func (a *API) handleWarehouse(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	f := filter.Warehouse(v)
	if canon := warehouseCanon(f, v.Get("highlight")); canon.Encode() != v.Encode() {
		http.Redirect(w, r, currentURL("/warehouse", canon), http.StatusSeeOther)
		return
	}

	svg, err := a.layout.Layout(r.Context(), warehouse.LayoutParams{
		Zone:      f.Zone,
		Highlight: strings.TrimSpace(v.Get("highlight")),
	})
	if err != nil {
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		a.logger.WarnContext(r.Context(), "warehouse layout", "err", err)
		a.renderError(w, r, errorStatus(err), describeError(err, "Error al cargar el mapa del almacén"))
		return
	}

	view := warehouseView{
		Filter: filterView{
			Action: "/warehouse",
			Fields: []formField{
				{Name: "zone", Label: "Zona", Type: "select", Options: zoneOptions(string(f.Zone), "Todas")},
				{Name: "activeOnly", Label: "Solo activos", Type: "checkbox", Checked: f.ActiveOnly},
			},
			Active: filter.Active(v, filter.WarehouseKeys),
			Clear:  "/warehouse",
		},
		Layout:     template.HTML(svg),
		MarkersURL: currentURL("/warehouse/materials.json", filter.Encode(f)),
		Zone:       string(f.Zone),
	}
	a.render(w, r, http.StatusOK, "warehouse", "Almacén", "/warehouse", view, nil)
}

// GET /warehouse/materials.json
func (a *API) handleWarehouseMaterials(w http.ResponseWriter, r *http.Request) {
	f := filter.Warehouse(r.URL.Query())
	locations, err := a.materials.WarehouseMap(r.Context(), material.MapQuery{
		Zone:       string(f.Zone),
		ActiveOnly: f.ActiveOnly,
	})
	if err != nil {
		if isUnauthorized(err) {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}
		handleDomainError(w, err)
		return
	}
	out := make([]markerResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, markerResponse{
			ID:        l.ID,
			Code:      l.Code,
			Name:      l.Name,
			Type:      l.Type,
			Zone:      l.Zone,
			Section:   l.Section,
			Level:     l.Level,
			Stock:     l.Stock,
			Threshold: l.Threshold,
			Unit:      l.Unit,
			LowStock:  l.LowStock(),
			Active:    l.IsActive,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func warehouseCanon(f warehouse.Filter, highlight string) url.Values {
	v := filter.Encode(f)
	if h := strings.TrimSpace(highlight); h != "" {
		v.Set("highlight", h)
	}
	return v
}
