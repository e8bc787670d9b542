package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/brewery-admin/internal/domain/material"
)

const (
	activeBadge   = `<span class="badge badge-success">Activo</span>`
	inactiveBadge = `<span class="badge badge-muted">Inactivo</span>`
)

// tableRow returns the markup of the list row for id, from its opening tag
// to the closing one.
func tableRow(t *testing.T, body string, id int64) string {
	t.Helper()
	start := strings.Index(body, `<tr data-id="`+strconv.FormatInt(id, 10)+`"`)
	require.GreaterOrEqual(t, start, 0, "row %d not rendered", id)
	end := strings.Index(body[start:], "</tr>")
	require.Greater(t, end, 0)
	return body[start : start+end]
}

func TestListMaterials_Returns200(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true), sampleMaterial(2, "Lupulo Cascade", false)}
	env.materials.total = 2
	ck := env.login(t)

	rec := env.get(ck, "/materials?name=malta")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Malta Pilsen")
	require.Contains(t, body, "Lupulo Cascade")
	require.Contains(t, body, "Limpiar")
	require.Equal(t, "malta", env.materials.lastFilter.Name)
	require.Equal(t, 10, env.materials.lastFilter.Size, "page size is filled when the URL has none")
}

func TestListMaterials_NonCanonicalQuery_Redirects(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/materials?estado=Todos&name=+malta+")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/materials?name=malta", rec.Header().Get("Location"))
	require.Zero(t, env.materials.listCalls, "the non-canonical URL is never fetched")

	rec = env.get(ck, "/materials?page=0")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/materials", rec.Header().Get("Location"))
}

func TestListMaterials_PageOutOfRange_RedirectsToLastPage(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 15
	ck := env.login(t)

	rec := env.get(ck, "/materials?name=malta&page=5")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/materials?name=malta&page=1", rec.Header().Get("Location"))

	rec = env.get(ck, "/materials?name=malta&page=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Página 2 de 2 · 15 registros")
}

func TestListMaterials_BackendError_ShowsPanel(t *testing.T) {
	env := setupAPI(t)
	env.materials.listErr = errors.New("boom")
	ck := env.login(t)

	rec := env.get(ck, "/materials")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Error al cargar materiales")
}

func TestToggleMaterial_Success_FlashesToast(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 1
	ck := env.login(t)
	require.Equal(t, http.StatusOK, env.get(ck, "/materials").Code)

	rec := env.post(ck, "/materials/1/toggle-active", url.Values{"return": {"/materials"}}, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/materials", rec.Header().Get("Location"))

	rec = env.get(ck, "/materials")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, inactiveBadge)
	require.Contains(t, body, "Estado actualizado")

	// The toast is shown once.
	rec = env.get(ck, "/materials")
	require.NotContains(t, rec.Body.String(), "Estado actualizado")
}

func TestToggleMaterial_FailureRollsBack(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 1
	env.materials.toggleEntered = make(chan struct{})
	env.materials.toggleRelease = make(chan struct{})
	ck := env.login(t)
	require.Equal(t, http.StatusOK, env.get(ck, "/materials").Code)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- env.post(ck, "/materials/1/toggle-active", url.Values{"return": {"/materials"}}, "")
	}()
	<-env.materials.toggleEntered

	// While the call is in flight the row shows the optimistic state.
	rec := env.get(ck, "/materials")
	require.Equal(t, http.StatusOK, rec.Code)
	row := tableRow(t, rec.Body.String(), 1)
	require.True(t, strings.HasPrefix(row, `<tr data-id="1" aria-busy="true">`), row)
	require.Contains(t, row, inactiveBadge)
	require.NotContains(t, row, activeBadge)

	// A second toggle of the same row is refused.
	rec = env.post(ck, "/materials/1/toggle-active", nil, "application/json")
	require.Equal(t, http.StatusConflict, rec.Code)

	env.materials.mu.Lock()
	env.materials.toggleErr = errors.New("stock reservado")
	env.materials.mu.Unlock()
	close(env.materials.toggleRelease)

	rec = <-done
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = env.get(ck, "/materials")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	row = tableRow(t, body, 1)
	require.True(t, strings.HasPrefix(row, `<tr data-id="1">`), row)
	require.Contains(t, row, activeBadge)
	require.NotContains(t, row, inactiveBadge)
	require.Contains(t, body, "Error al cambiar estado del material")
}

func TestToggleMaterial_JSON_ReturnsRow(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 1
	ck := env.login(t)
	require.Equal(t, http.StatusOK, env.get(ck, "/materials").Code)

	rec := env.post(ck, "/materials/1/toggle-active", nil, "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Toast Toast             `json:"toast"`
		Row   material.Material `json:"row"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, toastSuccess, resp.Toast.Kind)
	require.Equal(t, int64(1), resp.Row.ID)
	require.False(t, resp.Row.IsActive)
}

func TestCreateMaterial_InvalidForm_Returns422WithoutBackendCall(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.post(ck, "/materials", url.Values{
		"return":          {"/materials"},
		"name":            {""},
		"type":            {"MALTA"},
		"value":           {"abc"},
		"unitMeasurement": {"KG"},
		"threshold":       {"5"},
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `role="dialog"`, "the modal stays open")
	require.Contains(t, body, "Stock es un campo requerido")
	require.Contains(t, body, "Datos inválidos")
	require.Empty(t, env.materials.created)
}

func TestCreateMaterial_Success_RedirectsWithToast(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.post(ck, "/materials", url.Values{
		"return":          {"/materials?name=malta"},
		"name":            {"Malta Munich"},
		"type":            {"MALTA"},
		"value":           {"10.50"},
		"stock":           {"20"},
		"unitMeasurement": {"KG"},
		"threshold":       {"5"},
	}, "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/materials?name=malta", rec.Header().Get("Location"))
	require.Len(t, env.materials.created, 1)
	require.Equal(t, material.TypeMalta, env.materials.created[0].Type)
	require.Equal(t, "20", env.materials.created[0].Stock.String())

	rec = env.get(ck, "/materials?name=malta")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Material creado")
	require.NotContains(t, rec.Body.String(), `role="dialog"`)
}

func TestOpenMaterial_DetailUsesHeldRow(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 1
	ck := env.login(t)

	rec := env.get(ck, "/materials/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "MAT-1")
	require.Zero(t, env.materials.getCalls, "the listed row is not fetched again")

	rec = env.get(ck, "/materials/1/edit")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, env.materials.getCalls, "edit forms load the backend copy")
}

func TestOpenMaterial_ShowsDetailModal(t *testing.T) {
	env := setupAPI(t)
	env.materials.materials = []material.Material{sampleMaterial(1, "Malta Pilsen", true)}
	env.materials.total = 1
	ck := env.login(t)

	rec := env.get(ck, "/materials/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `data-mode="viewing"`)

	// Returning to the list closes the modal.
	rec = env.get(ck, "/materials")
	require.NotContains(t, rec.Body.String(), `role="dialog"`)
}

func TestOpenMaterial_NotFound_ClosesModal(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/materials/99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	require.NotContains(t, body, `role="dialog"`)
	require.Contains(t, body, "El registro solicitado no existe.")
}
