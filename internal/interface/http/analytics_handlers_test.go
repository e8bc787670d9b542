package http

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"example.com/brewery-admin/internal/domain/analytics"
)

func TestAnalyticsIndex_ListsReports(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/analytics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Consumo mensual de materiales")
	require.Contains(t, body, `href="/analytics/monthly-production"`)
}

func TestAnalytics_UnknownReport_Returns404(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/analytics/weekly-sales")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalytics_DraftIsRestoredAndCleared(t *testing.T) {
	env := setupAPI(t)
	env.analytics.points = []analytics.Point{
		{Period: "2024-01", Value: decimal.NewFromInt(40)},
		{Period: "2024-02", Value: decimal.NewFromInt(20)},
	}
	ck := env.login(t)
	const base = "/analytics/monthly-production"

	rec := env.get(ck, base+"?startDate=2024-01-01")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "2024-01")
	require.Contains(t, body, "width: 50%")
	require.Equal(t, analytics.Query{StartDate: "2024-01-01"}, env.analytics.queries[0])

	rec = env.get(ck, base)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, base+"?startDate=2024-01-01", rec.Header().Get("Location"))

	// Another report keeps its own draft.
	rec = env.get(ck, "/analytics/monthly-material-consumption")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.get(ck, base+"?clear=1")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, base, rec.Header().Get("Location"))

	rec = env.get(ck, base)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, analytics.Query{}, env.analytics.queries[len(env.analytics.queries)-1])
}

func TestAnalytics_FilterNotOfferedIsDropped(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/analytics/monthly-production?materialId=3&startDate=2024-01-01")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/analytics/monthly-production?startDate=2024-01-01", rec.Header().Get("Location"))
	require.Empty(t, env.analytics.queries)
}

func TestAnalytics_InvalidRange_Returns400(t *testing.T) {
	env := setupAPI(t)
	ck := env.login(t)

	rec := env.get(ck, "/analytics/monthly-material-ingress?endDate=2024-01-01&startDate=2024-05-01")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "El rango de fechas no es válido.")
	require.Empty(t, env.analytics.queries)
}

func TestChartBars(t *testing.T) {
	bars, total := chartBars([]analytics.Point{
		{Period: "2024-01", Value: decimal.NewFromInt(30)},
		{Period: "2024-02", Value: decimal.RequireFromString("10")},
		{Period: "2024-03", Value: decimal.Zero},
	})
	require.Equal(t, "40", total)
	require.Len(t, bars, 3)
	require.Equal(t, "100", bars[0].Percent)
	require.Equal(t, "33.3", bars[1].Percent)
	require.Equal(t, "0", bars[2].Percent)

	bars, total = chartBars(nil)
	require.Empty(t, bars)
	require.Equal(t, "0", total)
}
