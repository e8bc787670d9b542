package http

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/page"
	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/usecase/filter"
)

type userCreateForm struct {
	Username string   `form:"username" label:"Usuario" validate:"required,min=3,max=50"`
	Name     string   `form:"name" label:"Nombre" validate:"required,max=120"`
	Email    string   `form:"email" label:"Email" validate:"required,email"`
	Phone    string   `form:"phoneNumber" label:"Teléfono" validate:"max=30"`
	Password string   `form:"password" label:"Contraseña" validate:"required,min=6"`
	Roles    []string `form:"roles" label:"Roles" validate:"required,min=1"`
}

type userUpdateForm struct {
	Name     string `form:"name" label:"Nombre" validate:"required,max=120"`
	Email    string `form:"email" label:"Email" validate:"required,email"`
	Phone    string `form:"phoneNumber" label:"Teléfono" validate:"max=30"`
	Password string `form:"password" label:"Contraseña" validate:"omitempty,min=6"`
}

func (a *API) userRoutes(r chi.Router) {
	res := a.userResource()
	res.routes(r)
	r.Post("/{id}/roles", a.handleUpdateUserRoles)
}

func (a *API) userResource() *resource[domuser.User] {
	return &resource[domuser.User]{
		api:      a,
		base:     "/users",
		title:    "Usuarios",
		keys:     filter.UserKeys,
		registry: a.userCtl,
		canon: func(v url.Values) url.Values {
			return filter.Encode(filter.Users(v))
		},
		fetch: func(ctx context.Context, v url.Values) (page.Page[domuser.User], error) {
			f := filter.Users(v)
			f.Request = a.sized(f.Request)
			return a.users.List(ctx, f)
		},
		get: a.users.GetByID,
		columns: []Column[domuser.User]{
			{Key: "username", Label: "Usuario", Value: func(u domuser.User) any { return u.Username }},
			{Key: "name", Label: "Nombre", Value: func(u domuser.User) any { return u.Name }},
			{Key: "email", Label: "Email", Value: func(u domuser.User) any { return u.Email }},
			{
				Key:   "roles",
				Label: "Roles",
				Value: func(u domuser.User) any { return u.Roles },
				Render: func(_ any, u domuser.User) template.HTML {
					return template.HTML(template.HTMLEscapeString(formatCell(roleLabels(u.Roles))))
				},
			},
			{Key: "lastLogin", Label: "Último ingreso", Value: func(u domuser.User) any { return u.LastLogin }},
			activeColumn(func(u domuser.User) bool { return u.IsActive }),
		},
		actions: Actions[domuser.User]{
			View:         true,
			Edit:         true,
			ToggleStatus: func(u domuser.User) bool { return u.IsActive },
		},
		filters: func(_ *http.Request, v url.Values) []formField {
			f := filter.Users(v)
			return []formField{
				{Name: "name", Label: "Nombre", Type: "text", Value: f.Name, Placeholder: "Buscar por nombre"},
				{Name: "estado", Label: "Estado", Type: "select", Options: estadoOptions(f.Estado)},
			}
		},
		detail:       userDetail,
		extra:        rolesForm,
		form:         userFields,
		save:         a.saveUser,
		createLabel:  "Nuevo usuario",
		created:      "Usuario creado",
		updated:      "Usuario actualizado",
		saveFailed:   "Error al guardar el usuario",
		toggle:       a.users.ToggleActive,
		flip:         func(u domuser.User) domuser.User { u.IsActive = !u.IsActive; return u },
		toggleFailed: "Error al cambiar estado del usuario",
	}
}

func userDetail(u domuser.User) []detailRow {
	last := "-"
	if u.LastLogin != nil {
		last = u.LastLogin.Display()
	}
	return []detailRow{
		textRow("Usuario", u.Username),
		textRow("Nombre", u.Name),
		textRow("Email", u.Email),
		textRow("Teléfono", u.Phone),
		textRow("Roles", roleLabels(u.Roles)),
		{Label: "Estado", Value: badge(common.ActiveLabel(u.IsActive), activeStyle(u.IsActive))},
		textRow("Último ingreso", last),
	}
}

func userFields(_ *http.Request, u *domuser.User, submitted url.Values) []formField {
	if u == nil {
		var roles []string
		if submitted != nil {
			roles = submitted["roles"]
		}
		return []formField{
			{Name: "username", Label: "Usuario", Type: "text", Required: true, Value: pick(submitted, "username", "")},
			{Name: "name", Label: "Nombre", Type: "text", Required: true, Value: pick(submitted, "name", "")},
			{Name: "email", Label: "Email", Type: "text", Required: true, Value: pick(submitted, "email", "")},
			{Name: "phoneNumber", Label: "Teléfono", Type: "text", Value: pick(submitted, "phoneNumber", "")},
			{Name: "password", Label: "Contraseña", Type: "password", Required: true},
			{Name: "roles", Label: "Roles", Type: "checkboxes", Required: true, Options: roleOptions(roles)},
		}
	}
	return []formField{
		{Name: "name", Label: "Nombre", Type: "text", Required: true, Value: pick(submitted, "name", u.Name)},
		{Name: "email", Label: "Email", Type: "text", Required: true, Value: pick(submitted, "email", u.Email)},
		{Name: "phoneNumber", Label: "Teléfono", Type: "text", Value: pick(submitted, "phoneNumber", u.Phone)},
		{Name: "password", Label: "Nueva contraseña", Type: "password", Placeholder: "Dejar vacío para no cambiarla"},
	}
}

func (a *API) saveUser(ctx context.Context, _ *http.Request, id int64, v url.Values) (fieldErrors, error) {
	if id == 0 {
		var f userCreateForm
		if errs := decodeForm(v, &f); errs != nil {
			return errs, nil
		}
		f.Roles = nonBlank(f.Roles)
		if errs := a.validator.Check(&f); len(errs) > 0 {
			return errs, nil
		}
		roles, err := domuser.ParseRoleCodes(f.Roles)
		if err != nil {
			return fieldErrors{"roles": "Roles contiene un rol inválido"}, nil
		}
		_, err = a.users.Create(ctx, domuser.CreateInput{
			Username: f.Username,
			Name:     f.Name,
			Email:    f.Email,
			Phone:    f.Phone,
			Password: f.Password,
			Roles:    roles,
		})
		return nil, err
	}

	var f userUpdateForm
	if errs := decodeForm(v, &f); errs != nil {
		return errs, nil
	}
	if errs := a.validator.Check(&f); len(errs) > 0 {
		return errs, nil
	}
	in := domuser.UpdateInput{Name: &f.Name, Email: &f.Email, Phone: &f.Phone}
	if f.Password != "" {
		in.Password = &f.Password
	}
	_, err := a.users.Update(ctx, id, in)
	return nil, err
}

func roleLabels(roles []domuser.RoleCode) string {
	labels := make([]string, 0, len(roles))
	for _, r := range roles {
		labels = append(labels, r.Label())
	}
	return strings.Join(labels, ", ")
}

func roleOptions(selected []string) []option {
	known := domuser.KnownRoles()
	values := make([]string, len(known))
	for i, r := range known {
		values[i] = string(r)
	}
	opts := selectOptions(values, func(s string) string { return domuser.RoleCode(s).Label() }, "", "")
	for i := range opts {
		opts[i].Selected = contains(selected, opts[i].Value)
	}
	return opts
}
