package http

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"example.com/brewery-admin/internal/domain/page"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

// formField is one input of a filter bar or modal form. Type is one of
// text, number, date, password, select, checkbox, checkboxes, textarea,
// hidden or picker.
type formField struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Checked     bool
	Options     []option
	Required    bool
	Placeholder string
	Step        string
	Error       string
	Picker      *pickerView
}

type pickerView struct {
	Endpoint      string
	SelectedID    int64
	SelectedLabel string
}

type detailRow struct {
	Label string
	Value template.HTML
}

type formView struct {
	Action string
	Submit string
	Fields []formField
	Return string
}

type modalView struct {
	Title  string
	Mode   string
	Detail []detailRow
	Form   *formView
	Extra  *formView
	Close  string
	Return string
}

type filterView struct {
	Action string
	Fields []formField
	Active bool
	Clear  string
}

type pageLink struct {
	Number  int
	Href    string
	Current bool
}

type pagerView struct {
	Prev    string
	Next    string
	Pages   []pageLink
	Summary string
}

type listPageView struct {
	Title       string
	Base        string
	CreateLabel string
	Filter      filterView
	List        listView
	Pager       pagerView
	Modal       *modalView
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

type layoutView struct {
	Title   string
	User    *authUser
	Nav     []navItem
	Toast   *Toast
	Error   *Toast
	Content any
}

func selectOptions(values []string, labels func(string) string, selected string, blank string) []option {
	out := make([]option, 0, len(values)+1)
	if blank != "" {
		out = append(out, option{Value: "", Label: blank, Selected: selected == ""})
	}
	for _, v := range values {
		label := v
		if labels != nil {
			label = labels(v)
		}
		out = append(out, option{Value: v, Label: label, Selected: v == selected})
	}
	return out
}

// withPage returns the list URL for page n, keeping every other parameter.
func withPage(base string, values url.Values, n int) string {
	v := url.Values{}
	for k, vs := range values {
		v[k] = append([]string(nil), vs...)
	}
	if n <= 0 {
		v.Del("page")
	} else {
		v.Set("page", strconv.Itoa(n))
	}
	if enc := v.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

func buildPager(base string, values url.Values, p page.Pagination) pagerView {
	pv := pagerView{}
	if p.Empty() {
		return pv
	}
	if p.HasPrev() {
		pv.Prev = withPage(base, values, p.CurrentPage-1)
	}
	if p.HasNext() {
		pv.Next = withPage(base, values, p.CurrentPage+1)
	}
	for _, n := range p.Window(5) {
		pv.Pages = append(pv.Pages, pageLink{Number: n + 1, Href: withPage(base, values, n), Current: n == p.CurrentPage})
	}
	pv.Summary = fmt.Sprintf("Página %d de %d · %d registros", p.CurrentPage+1, p.TotalPages, p.TotalElements)
	return pv
}

func currentURL(base string, values url.Values) string {
	if enc := values.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}

func navigation(user *authUser, active string) []navItem {
	items := []navItem{
		{Label: "Materiales", Href: "/materials"},
		{Label: "Movimientos", Href: "/movements"},
		{Label: "Envases", Href: "/packagings"},
		{Label: "Productos", Href: "/products"},
		{Label: "Órdenes de producción", Href: "/production-orders"},
		{Label: "Almacén", Href: "/warehouse"},
		{Label: "Reportes", Href: "/analytics"},
	}
	if user.IsAdmin() {
		items = append(items, navItem{Label: "Usuarios", Href: "/users"})
	}
	for i := range items {
		items[i].Active = items[i].Href == active
	}
	return items
}
