package http

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/usecase/crud"
)

// Column describes one list column. Value extracts the raw cell value;
// Render, when set, turns it into markup.
type Column[T any] struct {
	Key   string
	Label string
	Value  func(T) any
	Render func(v any, row T) template.HTML
}

// CustomAction is an entity-specific row action posted to {base}/{id}/{Path}.
type CustomAction[T any] struct {
	Label   string
	Path    string
	Style   string
	Confirm string
	Show    func(T) bool
}

// Actions are the row actions a list offers. ToggleStatus, when set, reports
// the row's current active flag and adds an activate/deactivate button.
type Actions[T any] struct {
	View bool
	Edit bool
	ToggleStatus func(T) bool
	Custom []CustomAction[T]
}

type cellView struct {
	Key   string
	Label string
	HTML  template.HTML
}

type buttonView struct {
	Label    string
	Href     string
	Action   string
	Style    string
	Confirm  string
	Disabled bool
}

// Post reports whether the button submits a form instead of following a link.
func (b buttonView) Post() bool { return b.Action != "" }

type rowView struct {
	ID      int64
	Cells   []cellView
	Buttons []buttonView
	Busy    bool
}

// listView is everything the list template needs to draw both the table and
// the card layout.
type listView struct {
	Headers   []string
	Rows      []rowView
	HasAction bool
	EmptyText string
	Return    string
}

func (l listView) Empty() bool { return len(l.Rows) == 0 }

// buildList lays out rows with cols and actions. pending marks rows whose
// mutation is still running; their buttons are disabled. ret is the list URL
// row action forms return to.
func buildList[T crud.Row](base string, rows []T, cols []Column[T], actions Actions[T], pending func(id int64) bool, ret string) listView {
	lv := listView{
		Headers:   make([]string, 0, len(cols)),
		Rows:      make([]rowView, 0, len(rows)),
		EmptyText: "No hay registros",
		Return:    ret,
	}
	for _, c := range cols {
		lv.Headers = append(lv.Headers, c.Label)
	}
	lv.HasAction = actions.View || actions.Edit || actions.ToggleStatus != nil || len(actions.Custom) > 0

	for _, row := range rows {
		id := row.RowID()
		rv := rowView{ID: id, Cells: make([]cellView, 0, len(cols))}
		if pending != nil {
			rv.Busy = pending(id)
		}
		for _, c := range cols {
			var v any
			if c.Value != nil {
				v = c.Value(row)
			}
			var html template.HTML
			if c.Render != nil {
				html = c.Render(v, row)
			} else {
				html = template.HTML(template.HTMLEscapeString(formatCell(v)))
			}
			rv.Cells = append(rv.Cells, cellView{Key: c.Key, Label: c.Label, HTML: html})
		}
		rv.Buttons = rowButtons(base, row, actions, rv.Busy)
		lv.Rows = append(lv.Rows, rv)
	}
	return lv
}

func rowButtons[T crud.Row](base string, row T, actions Actions[T], busy bool) []buttonView {
	id := strconv.FormatInt(row.RowID(), 10)
	var out []buttonView
	if actions.View {
		out = append(out, buttonView{Label: "Ver", Href: base + "/" + id, Style: "secondary", Disabled: busy})
	}
	if actions.Edit {
		out = append(out, buttonView{Label: "Editar", Href: base + "/" + id + "/edit", Style: "primary", Disabled: busy})
	}
	if actions.ToggleStatus != nil {
		b := buttonView{Action: base + "/" + id + "/toggle-active", Disabled: busy}
		if actions.ToggleStatus(row) {
			b.Label, b.Style = "Desactivar", "danger"
		} else {
			b.Label, b.Style = "Activar", "success"
		}
		out = append(out, b)
	}
	for _, c := range actions.Custom {
		if c.Show != nil && !c.Show(row) {
			continue
		}
		out = append(out, buttonView{
			Label:    c.Label,
			Action:   base + "/" + id + "/" + c.Path,
			Style:    c.Style,
			Confirm:  c.Confirm,
			Disabled: busy,
		})
	}
	return out
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		if x == "" {
			return "-"
		}
		return x
	case bool:
		if x {
			return "Sí"
		}
		return "No"
	case decimal.Decimal:
		return x.String()
	case common.Timestamp:
		return x.Display()
	case *common.Timestamp:
		if x == nil {
			return "-"
		}
		return x.Display()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// badge renders a status pill.
func badge(label, style string) template.HTML {
	return template.HTML(`<span class="badge badge-` + template.HTMLEscapeString(style) + `">` +
		template.HTMLEscapeString(label) + `</span>`)
}

// activeColumn is the Estado column shared by every toggleable entity.
func activeColumn[T any](get func(T) bool) Column[T] {
	return Column[T]{
		Key:   "isActive",
		Label: "Estado",
		Value: func(row T) any { return get(row) },
		Render: func(v any, _ T) template.HTML {
			active, _ := v.(bool)
			if active {
				return badge(common.ActiveLabel(true), "success")
			}
			return badge(common.ActiveLabel(false), "muted")
		},
	}
}
