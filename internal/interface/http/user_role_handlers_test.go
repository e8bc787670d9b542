package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	domuser "example.com/brewery-admin/internal/domain/user"
)

func seedUsers(env *testEnv) {
	env.users.users = []domuser.User{
		{ID: 1, Username: "ana", Name: "Ana Pérez", IsActive: true, Roles: []domuser.RoleCode{domuser.RoleAdmin}},
		{ID: 2, Username: "luis", Name: "Luis Gómez", IsActive: true, Roles: []domuser.RoleCode{domuser.RoleOperarioAlmacen}},
	}
}

func TestUpdateUserRoles_Success_UpdatesHeldRow(t *testing.T) {
	env := setupAPI(t)
	seedUsers(env)
	ck := env.login(t)
	claims, _, err := env.auth.Authenticate(context.Background(), ck.Value)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, env.get(ck, "/users").Code)

	rec := env.post(ck, "/users/2/roles", url.Values{
		"roles": {"SUPERVISOR_DE_ALMACEN", "operario_de_almacen", "SUPERVISOR_DE_ALMACEN"},
	}, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Toast Toast        `json:"toast"`
		Row   domuser.User `json:"row"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Roles actualizados", resp.Toast.Title)
	require.Equal(t, []domuser.RoleCode{domuser.RoleSupervisorAlmacen, domuser.RoleOperarioAlmacen}, resp.Row.Roles)

	held, ok := env.api.userCtl.For(claims.SessionID).Row(2)
	require.True(t, ok)
	require.Equal(t, resp.Row.Roles, held.Roles)
}

func TestUpdateUserRoles_EmptyRoles_Returns422(t *testing.T) {
	env := setupAPI(t)
	seedUsers(env)
	ck := env.login(t)

	rec := env.post(ck, "/users/2/roles", url.Values{"roles": {" "}}, "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "Seleccione al menos un rol.")
	require.Zero(t, env.users.rolesCalls)
}

func TestUpdateUserRoles_InvalidCode_Returns422(t *testing.T) {
	env := setupAPI(t)
	seedUsers(env)
	ck := env.login(t)

	rec := env.post(ck, "/users/2/roles", url.Values{"roles": {"no es un rol"}}, "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Zero(t, env.users.rolesCalls)
}

func TestUpdateUserRoles_BackendFailure_KeepsRow(t *testing.T) {
	env := setupAPI(t)
	seedUsers(env)
	env.users.rolesErr = domuser.ErrUserNotFound
	ck := env.login(t)
	claims, _, err := env.auth.Authenticate(context.Background(), ck.Value)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, env.get(ck, "/users").Code)

	rec := env.post(ck, "/users/2/roles", url.Values{"roles": {"ADMIN"}, "return": {"/users"}}, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/users", rec.Header().Get("Location"))

	held, ok := env.api.userCtl.For(claims.SessionID).Row(2)
	require.True(t, ok)
	require.Equal(t, []domuser.RoleCode{domuser.RoleOperarioAlmacen}, held.Roles)

	rec = env.get(ck, "/users")
	require.Contains(t, rec.Body.String(), "Error al actualizar roles")
}

func TestUserDetail_ShowsRolesEditor(t *testing.T) {
	env := setupAPI(t)
	seedUsers(env)
	ck := env.login(t)

	rec := env.get(ck, "/users/2")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `action="/users/2/roles"`)
	require.Contains(t, body, `value="OPERARIO_DE_ALMACEN" checked`)
}
