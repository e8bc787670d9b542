package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	method  string
	status  int
	elapsed time.Duration
}

type fakeObserver struct {
	calls []recordedCall
}

func (f *fakeObserver) ObserveBackend(method string, status int, elapsed time.Duration) {
	f.calls = append(f.calls, recordedCall{method: method, status: status, elapsed: elapsed})
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *fakeObserver) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	obs := &fakeObserver{}
	return NewClient(srv.URL+"/", WithObserver(obs)), obs
}

type widget struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestGet_DecodesBodyAndEncodesParams(t *testing.T) {
	c, obs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/widgets", r.URL.Path)
		require.Equal(t, "malta", r.URL.Query().Get("name"))
		require.False(t, r.URL.Query().Has("supplier"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(widget{ID: 3, Name: "Malta"})
	})

	params := struct {
		Name     string `url:"name,omitempty"`
		Supplier string `url:"supplier,omitempty"`
	}{Name: "malta"}

	got, err := Get[widget](context.Background(), c, "api/widgets", params)
	require.NoError(t, err)
	require.Equal(t, &widget{ID: 3, Name: "Malta"}, got)
	require.Len(t, obs.calls, 1)
	require.Equal(t, http.StatusOK, obs.calls[0].status)
}

func TestPost_SendsJSONAndCredentials(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		ck, err := r.Cookie("JSESSIONID")
		require.NoError(t, err)
		require.Equal(t, "abc", ck.Value)

		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"id":0,"name":"Lupulo"}`, string(raw))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"name":"Lupulo"}`))
	})

	ctx := WithCredentials(context.Background(), []*http.Cookie{{Name: "JSESSIONID", Value: "abc"}})
	got, err := Post[widget](ctx, c, "/api/widgets", widget{Name: "Lupulo"})
	require.NoError(t, err)
	require.Equal(t, int64(9), got.ID)
}

func TestPatch_NoContentReturnsNil(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	got, err := Patch[widget](context.Background(), c, "/api/widgets/1", nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = Delete[widget](context.Background(), c, "/api/widgets/1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestDo_ErrorBodyParsed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Datos inválidos","details":{"name":"es obligatorio"}}`))
	})

	_, err := Post[widget](context.Background(), c, "/api/widgets", widget{})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Equal(t, "Datos inválidos", apiErr.Message)
	require.Equal(t, map[string]string{"name": "es obligatorio"}, apiErr.Details)
	require.Equal(t, []string{"name: es obligatorio"}, apiErr.DetailLines())
}

func TestDo_ErrorDetailsAsList(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Bad Request","details":[{"field":"stock","message":"debe ser positivo"}]}`))
	})

	_, err := Get[widget](context.Background(), c, "/api/widgets", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "Bad Request", apiErr.Message)
	require.Equal(t, map[string]string{"stock": "debe ser positivo"}, apiErr.Details)
}

func TestDo_NonJSONErrorUsesStatusText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream down</html>"))
	})

	_, err := Get[widget](context.Background(), c, "/api/widgets", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	require.Nil(t, apiErr.Details)
}

func TestDo_UnauthorizedFlagged(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := Get[widget](context.Background(), c, "/api/widgets", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsUnauthorized())
	require.False(t, apiErr.IsNetwork())
}

func TestDo_NetworkFailureIsStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	obs := &fakeObserver{}
	c := NewClient(base, WithObserver(obs))
	_, err := Get[widget](context.Background(), c, "/api/widgets", nil)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.True(t, apiErr.IsNetwork())
	require.Equal(t, 0, apiErr.Status)
	require.NotNil(t, errors.Unwrap(apiErr))
	require.Len(t, obs.calls, 1)
	require.Equal(t, 0, obs.calls[0].status)
}

func TestGetText_ReturnsRawBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "MALTA", r.URL.Query().Get("zone"))
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write([]byte(`<svg id="layout"></svg>`))
	})

	params := struct {
		Zone string `url:"zone"`
	}{Zone: "MALTA"}
	svg, err := c.GetText(context.Background(), "/api/warehouse/layout", params)
	require.NoError(t, err)
	require.Equal(t, `<svg id="layout"></svg>`, svg)
}

func TestPostForCookies_ReturnsSetCookies(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "s1", Path: "/"})
		_, _ = w.Write([]byte(`{"id":1,"name":"x"}`))
	})

	var out widget
	cookies, err := c.PostForCookies(context.Background(), "/api/auth/login", map[string]string{"username": "a"}, &out)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	require.Equal(t, "s1", cookies[0].Value)
	require.Equal(t, int64(1), out.ID)
}

func TestPathID(t *testing.T) {
	require.Equal(t, "/api/materials/12", PathID("/api/materials/", 12))
	require.Equal(t, "/api/materials/12/toggle-active", PathID("/api/materials", 12, "toggle-active"))
}
