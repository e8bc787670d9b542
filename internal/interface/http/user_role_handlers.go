package http

import (
	"context"
	"net/http"
	"strconv"

	domuser "example.com/brewery-admin/internal/domain/user"
)

type rolesInput struct {
	Roles []string `form:"roles" label:"Roles" validate:"required,min=1"`
}

// rolesForm is the roles editor shown under a viewed user.
func rolesForm(_ *http.Request, u domuser.User, ret string) *formView {
	current := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		current[i] = string(r)
	}
	return &formView{
		Action: "/users/" + strconv.FormatInt(u.ID, 10) + "/roles",
		Submit: "Actualizar roles",
		Fields: []formField{{Name: "roles", Label: "Roles", Type: "checkboxes", Required: true, Options: roleOptions(current)}},
		Return: ret,
	}
}

// POST /users/{id}/roles
//
// The held row only changes after the backend accepted the new roles.
func (a *API) handleUpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	ret := returnTo(r, "/users")
	id, err := parseIDParam(r, "id")
	if err != nil {
		a.rolesResult(w, r, ret, describeError(errInvalidID, ""), http.StatusBadRequest, nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.rolesResult(w, r, ret, describeError(errValidation, ""), http.StatusBadRequest, nil)
		return
	}

	var f rolesInput
	if errs := decodeForm(r.PostForm, &f); errs != nil {
		t := describeError(errValidation, "")
		t.Lines = errs.Lines(map[string]string{"roles": "Roles"})
		a.rolesResult(w, r, ret, t, http.StatusUnprocessableEntity, nil)
		return
	}
	f.Roles = nonBlank(f.Roles)
	if len(f.Roles) == 0 {
		a.rolesResult(w, r, ret, describeError(domuser.ErrEmptyRoles, ""), http.StatusUnprocessableEntity, nil)
		return
	}
	if errs := a.validator.Check(&f); len(errs) > 0 {
		t := describeError(errValidation, "")
		t.Lines = errs.Lines(map[string]string{"roles": "Roles"})
		a.rolesResult(w, r, ret, t, http.StatusUnprocessableEntity, nil)
		return
	}
	roles, err := domuser.ParseRoleCodes(f.Roles)
	if err != nil {
		a.rolesResult(w, r, ret, describeError(err, ""), errorStatus(err), nil)
		return
	}

	ctl := a.userCtl.For(sessionID(r))
	updated, err := ctl.Confirm(r.Context(), id, func(ctx context.Context) (*domuser.User, error) {
		return a.users.UpdateRoles(ctx, id, roles)
	})
	if err != nil {
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		a.rolesResult(w, r, ret, describeError(err, "Error al actualizar roles"), errorStatus(err), nil)
		return
	}
	ctl.Close()
	var row any
	if updated != nil {
		row = updated
	}
	a.rolesResult(w, r, ret, successToast("Roles actualizados", ""), http.StatusOK, row)
}

func (a *API) rolesResult(w http.ResponseWriter, r *http.Request, ret string, t Toast, status int, row any) {
	if wantsJSON(r) {
		writeJSON(w, status, actionResponse{Toast: t, Row: row})
		return
	}
	a.flash(r, t)
	http.Redirect(w, r, ret, http.StatusSeeOther)
}
