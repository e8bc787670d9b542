package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/brewery-admin/internal/domain/analytics"
	"example.com/brewery-admin/internal/domain/common"
	"example.com/brewery-admin/internal/domain/material"
	"example.com/brewery-admin/internal/domain/movement"
	"example.com/brewery-admin/internal/domain/page"
	"example.com/brewery-admin/internal/domain/product"
	domuser "example.com/brewery-admin/internal/domain/user"
	"example.com/brewery-admin/internal/domain/warehouse"
)

const materialsPage = `{
	"content": [{"id": 1, "code": "MAL-001", "name": "Malta Pilsen", "type": "MALTA",
		"stock": 120.5, "threshold": 20, "isActive": true, "creationDate": "2024-05-01T08:00:00"}],
	"currentPage": 0, "totalPages": 3, "totalItems": 21, "size": 10,
	"isFirst": true, "isLast": false
}`

func TestMaterialRepository_List_TranslatesFilterAndEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "/api/materials", r.URL.Path)
		require.Equal(t, "false", q.Get("isActive"))
		require.Equal(t, "MALTA", q.Get("type"))
		require.False(t, q.Has("estado"))
		require.Equal(t, "0", q.Get("page"))
		require.Equal(t, "10", q.Get("size"))
		_, _ = w.Write([]byte(materialsPage))
	})
	repo := NewMaterialRepository(c)

	got, err := repo.List(context.Background(), material.Filter{Type: material.TypeMalta, Estado: common.EstadoInactivo})
	require.NoError(t, err)
	require.Equal(t, page.Pagination{CurrentPage: 0, TotalPages: 3, TotalElements: 21, Size: 10, First: true}, got.Pagination)
	require.Len(t, got.Items, 1)
	require.Equal(t, "MAL-001", got.Items[0].Code)
	require.True(t, decimal.RequireFromString("120.5").Equal(got.Items[0].Stock))
	require.Equal(t, 2024, got.Items[0].CreationDate.Year())
}

func TestMaterialRepository_List_TodosOmitsIsActive(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.False(t, r.URL.Query().Has("isActive"))
		_, _ = w.Write([]byte(`{"content":null,"currentPage":0,"totalPages":0,"totalItems":0,"size":10,"isFirst":true,"isLast":true}`))
	})

	got, err := NewMaterialRepository(c).List(context.Background(), material.Filter{Estado: common.EstadoTodos})
	require.NoError(t, err)
	require.NotNil(t, got.Items)
	require.Empty(t, got.Items)
	require.True(t, got.Pagination.Empty())
}

func TestMaterialRepository_ToggleActive_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/materials/7/toggle-active", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Material no encontrado"}`))
	})

	_, err := NewMaterialRepository(c).ToggleActive(context.Background(), 7)
	require.ErrorIs(t, err, material.ErrMaterialNotFound)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "Material no encontrado", apiErr.Message)
}

func TestMaterialRepository_IDNameList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/materials/id-name-list", r.URL.Path)
		require.Equal(t, "lup", r.URL.Query().Get("name"))
		require.Equal(t, "true", r.URL.Query().Get("active"))
		_, _ = w.Write([]byte(`[{"id":4,"code":"LUP-004","name":"Lupulo Cascade"}]`))
	})

	active := true
	got, err := NewMaterialRepository(c).IDNameList(context.Background(), material.IDNameQuery{Name: "lup", Active: &active})
	require.NoError(t, err)
	require.Equal(t, []material.IDName{{ID: 4, Code: "LUP-004", Name: "Lupulo Cascade"}}, got)
}

func TestExpandDateRange(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)

	start, end, err := ExpandDateRange("2024-03-01", "2024-03-31", loc)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T00:00:00.000-03:00", start)
	require.Equal(t, "2024-03-31T23:59:59.999-03:00", end)

	start, end, err = ExpandDateRange("", "2024-03-31", time.UTC)
	require.NoError(t, err)
	require.Empty(t, start)
	require.Equal(t, "2024-03-31T23:59:59.999Z", end)

	_, _, err = ExpandDateRange("2024-04-02", "2024-04-01", time.UTC)
	require.ErrorIs(t, err, movement.ErrInvalidDateRange)

	_, _, err = ExpandDateRange("01/04/2024", "", time.UTC)
	require.ErrorIs(t, err, movement.ErrInvalidDateRange)
}

func TestMovementRepository_List_SendsExpandedDates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2024-03-01T00:00:00.000Z", q.Get("startDate"))
		require.Equal(t, "2024-03-02T23:59:59.999Z", q.Get("endDate"))
		require.Equal(t, "12", q.Get("materialId"))
		require.Equal(t, "INGRESO", q.Get("type"))
		_, _ = w.Write([]byte(`{"content":[],"currentPage":0,"totalPages":0,"totalItems":0,"size":10,"isFirst":true,"isLast":true}`))
	})

	repo := NewMovementRepository(c, nil)
	_, err := repo.List(context.Background(), movement.Filter{
		Type:       movement.TypeIngreso,
		MaterialID: 12,
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-02",
	})
	require.NoError(t, err)
}

func TestProductRepository_List_AlcoholicParam(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("isAlcoholic"))
		require.Equal(t, "true", r.URL.Query().Get("isActive"))
		_, _ = w.Write([]byte(`{"content":[],"currentPage":0,"totalPages":0,"totalItems":0,"size":10,"isFirst":true,"isLast":true}`))
	})

	_, err := NewProductRepository(c).List(context.Background(), product.Filter{Alcoholic: product.AlcoholicYes, Estado: common.EstadoActivo})
	require.NoError(t, err)
}

func TestUserRepository_UpdateRoles_SendsRoles(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/5/roles", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"roles":["ADMIN","OPERARIO_DE_ALMACEN"]}`, string(raw))
		_, _ = w.Write([]byte(`{"id":5,"username":"ana","roles":["ADMIN","OPERARIO_DE_ALMACEN"]}`))
	})

	got, err := NewUserRepository(c).UpdateRoles(context.Background(), 5, []domuser.RoleCode{domuser.RoleAdmin, domuser.RoleOperarioAlmacen})
	require.NoError(t, err)
	require.Equal(t, []domuser.RoleCode{domuser.RoleAdmin, domuser.RoleOperarioAlmacen}, got.Roles)
}

func TestWarehouseLayout_CachesPerParams(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`<svg zone="` + r.URL.Query().Get("zone") + `"/>`))
	})
	layout := NewWarehouseLayout(c, time.Minute, nil)
	params := warehouse.LayoutParams{Zone: warehouse.ZoneMalta}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svg, err := layout.Layout(context.Background(), params)
			require.NoError(t, err)
			require.Equal(t, `<svg zone="MALTA"/>`, svg)
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), calls.Load())

	_, err := layout.Layout(context.Background(), warehouse.LayoutParams{Zone: warehouse.ZoneLupulo})
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())

	layout.Invalidate(params)
	_, err = layout.Layout(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
}

func TestAnalyticsRepository_Series(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analytics/monthly-material-consumption", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("materialId"))
		_, _ = w.Write([]byte(`[{"month":"2024-01","total":10.5},{"month":"2024-02","total":7}]`))
	})
	repo := NewAnalyticsRepository(c)

	got, err := repo.Series(context.Background(), analytics.ReportMaterialConsumption, analytics.Query{MaterialID: 3})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2024-01", got[0].Period)

	_, err = repo.Series(context.Background(), analytics.Report("bogus"), analytics.Query{})
	require.True(t, errors.Is(err, analytics.ErrUnknownReport))
}

func TestAuthService_Login(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"username":"ana","password":"pw"}`, string(raw))
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "xyz"})
		_, _ = w.Write([]byte(`{"id":2,"name":"Ana","roles":["ADMIN"]}`))
	})

	u, cookies, err := NewAuthService(c).Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	require.Equal(t, "ana", u.Username)
	require.Equal(t, []domuser.RoleCode{domuser.RoleAdmin}, u.Roles)
	require.Len(t, cookies, 1)
}
