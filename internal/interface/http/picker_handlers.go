package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/product"
	"example.com/brewery-admin/internal/infra/session"
	"example.com/brewery-admin/internal/usecase/picker"
)

type pickerOption struct {
	ID    int64  `json:"id"`
	Code  string `json:"code,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type pickerResults struct {
	Endpoint string         `json:"-"`
	Target   string         `json:"-"`
	Term     string         `json:"term"`
	Options  []pickerOption `json:"options"`
}

func (a *API) handleMaterialPicker(w http.ResponseWriter, r *http.Request) {
	servePicker(a, w, r, "materials", a.materialSearch, func(m material.IDName) pickerOption {
		return pickerOption{ID: m.ID, Code: m.Code, Name: m.Name, Label: labelOf(m.Code, m.Name)}
	})
}

func (a *API) handleProductPicker(w http.ResponseWriter, r *http.Request) {
	servePicker(a, w, r, "products", a.productSearch, func(p product.IDName) pickerOption {
		return pickerOption{ID: p.ID, Name: p.Name, Label: p.Name}
	})
}

// servePicker answers one keystroke of a picker. A search superseded by a
// newer keystroke of the same session answers 204 so the browser keeps the
// results it is about to receive.
func servePicker[T any](a *API, w http.ResponseWriter, r *http.Request, kind string, s *picker.Searcher[T], conv func(T) pickerOption) {
	term := strings.TrimSpace(r.URL.Query().Get("term"))
	target := r.URL.Query().Get("target")
	key := sessionID(r) + ":" + kind + ":" + target

	found, err := s.Search(r.Context(), key, term)
	switch {
	case errors.Is(err, picker.ErrSuperseded), errors.Is(err, context.Canceled):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		a.logger.WarnContext(r.Context(), "picker search", "kind", kind, "err", err)
		if wantsJSON(r) {
			handleDomainError(w, err)
			return
		}
		_ = a.views.fragment(w, errorStatus(err), "picker-error", describeError(err, "Error al buscar"))
		return
	}

	res := pickerResults{
		Endpoint: "/ui/pickers/" + kind,
		Target:   target,
		Term:     term,
		Options:  make([]pickerOption, 0, len(found)),
	}
	for _, item := range found {
		res.Options = append(res.Options, conv(item))
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, res)
		return
	}
	if err := a.views.fragment(w, http.StatusOK, "picker-results", res); err != nil {
		a.logger.ErrorContext(r.Context(), "render picker", "err", err)
	}
}

func (a *API) handleMaterialPickerSelect(w http.ResponseWriter, r *http.Request) {
	a.rememberSelection(w, r, session.KeySelectedMaterial)
}

func (a *API) handleProductPickerSelect(w http.ResponseWriter, r *http.Request) {
	a.rememberSelection(w, r, session.KeySelectedProduct)
}

// rememberSelection stores the picked entity for the session. An id of zero
// clears the picker.
func (a *API) rememberSelection(w http.ResponseWriter, r *http.Request, key string) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	sid := sessionID(r)
	id := parseInt64(r.PostFormValue("id"))
	if id <= 0 {
		if err := a.memory.Forget(r.Context(), sid, key); err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sel := picker.Selection{
		ID:   id,
		Code: strings.TrimSpace(r.PostFormValue("code")),
		Name: strings.TrimSpace(r.PostFormValue("name")),
	}
	if err := a.memory.Remember(r.Context(), sid, key, sel); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pickerOption{ID: sel.ID, Code: sel.Code, Name: sel.Name, Label: sel.Label()})
}

func (a *API) materialPickerField(r *http.Request, name, label string, id int64) formField {
	return pickerField(a, r, name, label, id, "/ui/pickers/materials", session.KeySelectedMaterial,
		a.materials.GetByID,
		func(m material.Material) picker.Selection {
			return picker.Selection{ID: m.ID, Code: m.Code, Name: m.Name}
		})
}

func (a *API) productPickerField(r *http.Request, name, label string, id int64) formField {
	return pickerField(a, r, name, label, id, "/ui/pickers/products", session.KeySelectedProduct,
		a.products.GetByID,
		func(p product.Product) picker.Selection {
			return picker.Selection{ID: p.ID, Name: p.Name}
		})
}

// pickerField shows the selection remembered under key for id. Only a miss
// goes back to the backend through lookup, and its answer is remembered.
func pickerField[T any](
	a *API, r *http.Request, name, label string, id int64, endpoint, key string,
	lookup func(ctx context.Context, id int64) (*T, error),
	selection func(T) picker.Selection,
) formField {
	field := formField{Name: name, Label: label, Type: "picker", Picker: &pickerView{Endpoint: endpoint}}
	if id <= 0 {
		return field
	}
	field.Value = strconv.FormatInt(id, 10)
	field.Picker.SelectedID = id
	ctx, sid := r.Context(), sessionID(r)

	if sel, ok, err := a.memory.RecallID(ctx, sid, key, id); err == nil && ok {
		field.Picker.SelectedLabel = sel.Label()
		return field
	}
	row, err := lookup(ctx, id)
	if err != nil {
		field.Picker.SelectedLabel = "#" + field.Value
		return field
	}
	sel := selection(*row)
	if err := a.memory.Remember(ctx, sid, key, sel); err != nil {
		a.logger.WarnContext(ctx, "remember picker selection", "key", key, "err", err)
	}
	field.Picker.SelectedLabel = sel.Label()
	return field
}
