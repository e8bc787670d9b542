package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/infra/backend"
	"example.com/brewery-admin/internal/usecase/crud"
	"example.com/brewery-admin/internal/usecase/filter"
)

// resource wires one entity's list page, modal forms and row actions onto
// the per-session controllers of its registry.
type resource[T crud.Row] struct {
	api      *API
	base     string
	title    string
	keys     []string
	registry *crud.Registry[T]

	// canon normalizes the query so equal filters always share one URL.
	canon func(url.Values) url.Values
	fetch func(ctx context.Context, v url.Values) (page.Page[T], error)
	get   func(ctx context.Context, id int64) (*T, error)

	columns []Column[T]
	actions Actions[T]
	filters func(r *http.Request, v url.Values) []formField
	detail  func(T) []detailRow
	// extra adds a second form under the detail of a viewed row.
	extra func(r *http.Request, row T, ret string) *formView

	// form returns the modal fields. row is nil when creating; submitted
	// holds the posted values when a submission is shown again.
	form        func(r *http.Request, row *T, submitted url.Values) []formField
	save        func(ctx context.Context, r *http.Request, id int64, v url.Values) (fieldErrors, error)
	createLabel string
	created     string
	updated     string
	saveFailed  string

	toggle       func(ctx context.Context, id int64) (*T, error)
	flip         func(T) T
	toggleFailed string
	rowActions   []rowAction[T]
}

// rowAction is a row-level mutation posted to {base}/{id}/{path}. apply is
// the optimistic change shown while call runs.
type rowAction[T any] struct {
	path string
	apply   func(T) T
	call    func(ctx context.Context, id int64) (*T, error)
	done    string
	failure string
}

// formState is a rejected submission shown again in its modal.
type formState struct {
	values url.Values
	errs   fieldErrors
	toast  *Toast
}

type actionResponse struct {
	Toast Toast `json:"toast"`
	Row   any   `json:"row,omitempty"`
}

func (res *resource[T]) routes(r chi.Router) {
	r.Get("/", res.list)
	r.Post("/modal/close", res.closeModal)
	if res.createLabel != "" {
		r.Get("/new", res.openCreate)
		r.Post("/", res.create)
	}
	r.Get("/{id}", res.openView)
	if res.actions.Edit {
		r.Get("/{id}/edit", res.openEdit)
		r.Post("/{id}", res.update)
	}
	if res.toggle != nil {
		r.Post("/{id}/toggle-active", res.toggleActive)
	}
	for _, act := range res.rowActions {
		r.Post("/{id}/"+act.path, res.rowActionHandler(act))
	}
}

func (res *resource[T]) controller(r *http.Request) *crud.Controller[T] {
	return res.registry.For(sessionID(r))
}

func (res *resource[T]) list(w http.ResponseWriter, r *http.Request) {
	res.controller(r).Close()
	res.serve(w, r, http.StatusOK, r.URL.Query(), nil)
}

func (res *resource[T]) openCreate(w http.ResponseWriter, r *http.Request) {
	res.controller(r).OpenCreate()
	res.serve(w, r, http.StatusOK, r.URL.Query(), nil)
}

func (res *resource[T]) openView(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		res.api.renderError(w, r, http.StatusBadRequest, describeError(errInvalidID, ""))
		return
	}
	res.controller(r).OpenView(id)
	res.serve(w, r, http.StatusOK, r.URL.Query(), nil)
}

func (res *resource[T]) openEdit(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		res.api.renderError(w, r, http.StatusBadRequest, describeError(errInvalidID, ""))
		return
	}
	res.controller(r).OpenEdit(id)
	res.serve(w, r, http.StatusOK, r.URL.Query(), nil)
}

func (res *resource[T]) closeModal(w http.ResponseWriter, r *http.Request) {
	res.controller(r).Close()
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, returnTo(r, res.base), http.StatusSeeOther)
}

// serve fetches the page selected by v and renders the list with whatever
// modal the controller slot holds.
func (res *resource[T]) serve(w http.ResponseWriter, r *http.Request, status int, v url.Values, fs *formState) {
	a := res.api
	ctx := r.Context()

	if r.Method == http.MethodGet {
		if canon := res.canon(v); canon.Encode() != v.Encode() {
			http.Redirect(w, r, currentURL(r.URL.Path, canon), http.StatusSeeOther)
			return
		}
	}

	p, err := res.fetch(ctx, v)
	if err != nil {
		res.loadFailed(w, r, err)
		return
	}
	if r.Method == http.MethodGet && p.Pagination.OutOfRange() {
		http.Redirect(w, r, withPage(r.URL.Path, v, p.Pagination.LastPage()), http.StatusSeeOther)
		return
	}

	ctl := res.controller(r)
	ctl.Load(p)
	ret := currentURL(res.base, v)

	lv := buildList(res.base, ctl.Rows(), res.columns, res.actions, ctl.Pending, ret)
	linkQuery(&lv, v.Encode())

	view := listPageView{
		Title:       res.title,
		Base:        res.base,
		CreateLabel: res.createLabel,
		Filter: filterView{
			Action: res.base,
			Fields: res.filterFields(r, v),
			Active: filter.Active(v, res.keys),
			Clear:  currentURL(res.base, filter.Clear(v, res.keys)),
		},
		List:  lv,
		Pager: buildPager(res.base, v, ctl.Pagination()),
	}

	modal, err := res.modal(r, ctl, ret, fs)
	if err != nil {
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		ctl.Close()
		a.flash(r, describeError(err, ""))
		status = errorStatus(err)
	}
	view.Modal = modal

	if fs != nil && fs.toast != nil {
		t := *fs.toast
		if len(fs.errs) > 0 && modal != nil && modal.Form != nil {
			t.Lines = fs.errs.Lines(fieldLabels(modal.Form.Fields))
			t.Message = strings.Join(t.Lines, "\n")
		}
		a.flash(r, t)
	}
	a.render(w, r, status, "list", res.title, res.base, view, nil)
}

func (res *resource[T]) filterFields(r *http.Request, v url.Values) []formField {
	var fields []formField
	if res.filters != nil {
		fields = res.filters(r, v)
	}
	for k, vs := range v {
		if k == "page" || contains(res.keys, k) || len(vs) == 0 {
			continue
		}
		fields = append(fields, formField{Name: k, Type: "hidden", Value: vs[0]})
	}
	return fields
}

func (res *resource[T]) modal(r *http.Request, ctl *crud.Controller[T], ret string, fs *formState) (*modalView, error) {
	m := ctl.Modal()
	if !m.Open() {
		return nil, nil
	}
	mv := &modalView{Mode: m.Mode.String(), Close: res.base + "/modal/close", Return: ret}
	var submitted url.Values
	var errs fieldErrors
	if fs != nil {
		submitted, errs = fs.values, fs.errs
	}

	switch m.Mode {
	case crud.ModeCreating:
		mv.Title = res.createLabel
		mv.Form = &formView{
			Action: res.base,
			Submit: "Crear",
			Fields: withErrors(res.form(r, nil, submitted), errs),
			Return: ret,
		}
		return mv, nil
	case crud.ModeViewing, crud.ModeEditing:
		row, err := res.modalRow(r.Context(), ctl, m)
		if err != nil {
			return nil, err
		}
		if m.Mode == crud.ModeViewing {
			mv.Title = "Detalle"
			mv.Detail = res.detail(*row)
			if res.extra != nil {
				mv.Extra = res.extra(r, *row, ret)
			}
			return mv, nil
		}
		mv.Title = "Editar"
		mv.Form = &formView{
			Action: res.base + "/" + strconv.FormatInt(m.ID, 10),
			Submit: "Guardar",
			Fields: withErrors(res.form(r, row, submitted), errs),
			Return: ret,
		}
		return mv, nil
	}
	return nil, nil
}

// modalRow is the row a modal shows. The detail view uses the copy held for
// the current page, in-flight changes included; edit forms and rows off the
// page are fetched.
func (res *resource[T]) modalRow(ctx context.Context, ctl *crud.Controller[T], m crud.Modal) (*T, error) {
	if m.Mode == crud.ModeViewing {
		if held, ok := ctl.Row(m.ID); ok {
			return &held, nil
		}
	}
	return res.get(ctx, m.ID)
}

func (res *resource[T]) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	if isUnauthorized(err) {
		res.api.expireSession(w, r)
		return
	}
	res.api.logger.WarnContext(r.Context(), "list fetch failed", "page", res.base, "err", err)
	res.api.renderError(w, r, errorStatus(err), describeError(err, "Error al cargar "+strings.ToLower(res.title)))
}

func (res *resource[T]) create(w http.ResponseWriter, r *http.Request) {
	res.submit(w, r, 0)
}

func (res *resource[T]) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		res.api.renderError(w, r, http.StatusBadRequest, describeError(errInvalidID, ""))
		return
	}
	res.submit(w, r, id)
}

// submit runs a create (id 0) or edit through the controller's busy guard.
// Validation failures never reach the backend.
func (res *resource[T]) submit(w http.ResponseWriter, r *http.Request, id int64) {
	a := res.api
	if err := r.ParseForm(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, describeError(errValidation, ""))
		return
	}
	ctl := res.controller(r)
	if id == 0 {
		ctl.OpenCreate()
	} else {
		ctl.OpenEdit(id)
	}

	var errs fieldErrors
	err := ctl.Submit(r.Context(), func(ctx context.Context) error {
		var err error
		errs, err = res.save(ctx, r, id, r.PostForm)
		if err == nil && len(errs) > 0 {
			err = errValidation
		}
		return err
	})

	ret := returnTo(r, res.base)
	if err == nil {
		title := res.created
		if id != 0 {
			title = res.updated
		}
		t := successToast(title, "")
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, actionResponse{Toast: t})
			return
		}
		a.flash(r, t)
		http.Redirect(w, r, ret, http.StatusSeeOther)
		return
	}
	if isUnauthorized(err) {
		a.expireSession(w, r)
		return
	}

	if apiErr, ok := backend.AsAPIError(err); ok && len(apiErr.Details) > 0 {
		if errs == nil {
			errs = fieldErrors{}
		}
		for field, msg := range apiErr.Details {
			errs[field] = msg
		}
	}
	title := res.saveFailed
	if errors.Is(err, errValidation) {
		title = ""
	}
	t := describeError(err, title)
	if wantsJSON(r) {
		handleDomainError(w, err)
		return
	}
	res.serve(w, r, errorStatus(err), queryOf(ret), &formState{values: r.PostForm, errs: errs, toast: &t})
}

func (res *resource[T]) toggleActive(w http.ResponseWriter, r *http.Request) {
	res.mutate(w, r, rowAction[T]{
		apply:   res.flip,
		call:    res.toggle,
		done:    "Estado actualizado",
		failure: res.toggleFailed,
	})
}

func (res *resource[T]) rowActionHandler(act rowAction[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res.mutate(w, r, act)
	}
}

// mutate applies act optimistically and reports the outcome as a flashed
// toast after the redirect, or as JSON to scripted callers.
func (res *resource[T]) mutate(w http.ResponseWriter, r *http.Request, act rowAction[T]) {
	a := res.api
	ret := returnTo(r, res.base)
	id, err := parseIDParam(r, "id")
	if err != nil {
		res.actionResult(w, r, ret, describeError(errInvalidID, act.failure), http.StatusBadRequest, nil)
		return
	}

	row, err := res.controller(r).Mutate(r.Context(), id, act.apply, func(ctx context.Context) (*T, error) {
		return act.call(ctx, id)
	})
	var held any
	if row.RowID() != 0 {
		held = row
	}
	if err != nil {
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		a.logger.InfoContext(r.Context(), "row action failed", "page", res.base, "id", id, "err", err)
		res.actionResult(w, r, ret, describeError(err, act.failure), errorStatus(err), held)
		return
	}
	res.actionResult(w, r, ret, successToast(act.done, ""), http.StatusOK, held)
}

func (res *resource[T]) actionResult(w http.ResponseWriter, r *http.Request, ret string, t Toast, status int, row any) {
	if wantsJSON(r) {
		writeJSON(w, status, actionResponse{Toast: t, Row: row})
		return
	}
	res.api.flash(r, t)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}

// linkQuery keeps the list query on row links so the modal opens over the
// same page.
func linkQuery(lv *listView, query string) {
	if query == "" {
		return
	}
	for i := range lv.Rows {
		for j := range lv.Rows[i].Buttons {
			if b := &lv.Rows[i].Buttons[j]; b.Href != "" {
				b.Href += "?" + query
			}
		}
	}
}

func withErrors(fields []formField, errs fieldErrors) []formField {
	for i := range fields {
		if msg, ok := errs[fields[i].Name]; ok {
			fields[i].Error = msg
		}
	}
	return fields
}

func fieldLabels(fields []formField) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Label
	}
	return out
}

func queryOf(target string) url.Values {
	u, err := url.Parse(target)
	if err != nil {
		return url.Values{}
	}
	return u.Query()
}

func contains(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

// pick returns the submitted value of name when the form is shown again,
// otherwise fallback.
func pick(submitted url.Values, name, fallback string) string {
	if submitted != nil {
		return strings.TrimSpace(submitted.Get(name))
	}
	return fallback
}

func pickChecked(submitted url.Values, name string, fallback bool) bool {
	if submitted != nil {
		return checked(submitted.Get(name))
	}
	return fallback
}

// sized fills the configured page size when the URL does not carry one.
func (a *API) sized(req page.Request) page.Request {
	if req.Size <= 0 {
		req.Size = a.pageSize
	}
	return req
}
