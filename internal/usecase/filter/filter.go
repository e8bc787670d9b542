package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/packaging"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/product"
	"example.com/brewery-admin/internal/domain/productionorder"
	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/domain/warehouse"
)

// Filter keys per page, as they appear in the URL. Page and size are not
// filter keys: Clear resets the page and keeps the size.
var (
	MaterialKeys        = []string{"name", "supplier", "type", "estado"}
	MovementKeys        = []string{"type", "materialId", "startDate", "endDate"}
	PackagingKeys       = []string{"name", "estado"}
	ProductKeys         = []string{"name", "estado", "alcoholico"}
	ProductionOrderKeys = []string{"status", "productId"}
	UserKeys            = []string{"name", "estado"}
	WarehouseKeys       = []string{"zone", "activeOnly"}
	AnalyticsKeys       = []string{"materialId", "productId", "startDate", "endDate"}
)

// Encode renders a filter as URL parameters. Default values are left out so
// an untouched filter yields a clean URL.
func Encode(f any) url.Values {
	v, err := query.Values(f)
	if err != nil {
		return url.Values{}
	}
	for k, vs := range v {
		if len(vs) == 1 && isDefault(k, vs[0]) {
			v.Del(k)
		}
	}
	return v
}

func isDefault(key, value string) bool {
	switch {
	case value == "":
		return true
	case key == "estado" && value == string(common.EstadoTodos):
		return true
	default:
		return false
	}
}

// Clear drops the given filter keys and the page index, keeping every other
// parameter.
func Clear(values url.Values, keys []string) url.Values {
	out := url.Values{}
	for k, vs := range values {
		out[k] = append([]string(nil), vs...)
	}
	for _, k := range keys {
		out.Del(k)
	}
	out.Del("page")
	return out
}

// Active reports whether any of keys carries a non-default value.
func Active(values url.Values, keys []string) bool {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" && !isDefault(k, v) {
			return true
		}
	}
	return false
}

func Materials(v url.Values) material.Filter {
	t, _ := material.ParseType(v.Get("type"))
	return material.Filter{
		Name:     text(v, "name"),
		Supplier: text(v, "supplier"),
		Type:     t,
		Estado:   common.ParseEstado(v.Get("estado")),
		Request:  pageRequest(v),
	}
}

func Movements(v url.Values) movement.Filter {
	t, _ := movement.ParseType(v.Get("type"))
	return movement.Filter{
		Type:       t,
		MaterialID: id(v, "materialId"),
		StartDate:  day(v, "startDate"),
		EndDate:    day(v, "endDate"),
		Request:    pageRequest(v),
	}
}

func Packagings(v url.Values) packaging.Filter {
	return packaging.Filter{
		Name:    text(v, "name"),
		Estado:  common.ParseEstado(v.Get("estado")),
		Request: pageRequest(v),
	}
}

func Products(v url.Values) product.Filter {
	alcoholic := strings.ToLower(text(v, "alcoholico"))
	if alcoholic != product.AlcoholicYes && alcoholic != product.AlcoholicNo {
		alcoholic = product.AlcoholicAll
	}
	return product.Filter{
		Name:      text(v, "name"),
		Estado:    common.ParseEstado(v.Get("estado")),
		Alcoholic: alcoholic,
		Request:   pageRequest(v),
	}
}

func ProductionOrders(v url.Values) productionorder.Filter {
	status := productionorder.Status(strings.ToUpper(text(v, "status")))
	if !status.IsValid() {
		status = ""
	}
	return productionorder.Filter{
		Status:    status,
		ProductID: id(v, "productId"),
		Request:   pageRequest(v),
	}
}

func Users(v url.Values) domuser.ListUsersFilter {
	return domuser.ListUsersFilter{
		Name:    text(v, "name"),
		Estado:  common.ParseEstado(v.Get("estado")),
		Request: pageRequest(v),
	}
}

func Warehouse(v url.Values) warehouse.Filter {
	active, _ := strconv.ParseBool(v.Get("activeOnly"))
	return warehouse.Filter{
		Zone:       warehouse.ParseZone(v.Get("zone")),
		ActiveOnly: active,
	}
}

func text(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func id(v url.Values, key string) int64 {
	n, err := strconv.ParseInt(text(v, key), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// day keeps only well-formed YYYY-MM-DD values.
func day(v url.Values, key string) string {
	s := text(v, key)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func pageRequest(v url.Values) page.Request {
	var r page.Request
	if n, err := strconv.Atoi(text(v, "page")); err == nil && n > 0 {
		r.Page = n
	}
	if n, err := strconv.Atoi(text(v, "size")); err == nil && n > 0 {
		r.Size = n
	}
	return r
}
