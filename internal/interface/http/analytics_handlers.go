package http

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"example.com/brewery-admin/internal/domain/analytics"
	"example.com/brewery-admin/internal/usecase/filter"
)

type reportLink struct {
	Label string
	Href  string
}

type barView struct {
	Period  string
	Value   string
	Percent string
}

type analyticsView struct {
	Reports []reportLink
	Report  string
	Label   string
	Filter  filterView
	Bars    []barView
	Total   string
}

// GET /analytics
func (a *API) handleAnalyticsIndex(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "analytics", "Reportes", "/analytics", analyticsView{Reports: reportLinks()}, nil)
}

// GET /analytics/{report}
//
// A request without filter parameters falls back to the draft the session
// stored for this report and filter set; a request with parameters becomes
// the new draft. clear=1 forgets the draft.
func (a *API) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	report := analytics.Report(chi.URLParam(r, "report"))
	if !report.IsValid() {
		a.renderError(w, r, http.StatusNotFound, describeError(analytics.ErrUnknownReport, ""))
		return
	}
	ctx, sid := r.Context(), sessionID(r)
	base := "/analytics/" + string(report)
	enabled := report.Filters()
	v := r.URL.Query()

	if v.Get("clear") != "" {
		if err := a.drafts.Clear(ctx, sid, string(report), enabled); err != nil {
			a.logger.WarnContext(ctx, "clear analytics draft", "report", report, "err", err)
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
		return
	}

	draft := restrictDraft(filter.Analytics(v), enabled)
	if filter.Active(v, filter.AnalyticsKeys) {
		if canon := filter.Encode(draft); canon.Encode() != v.Encode() {
			http.Redirect(w, r, currentURL(base, canon), http.StatusSeeOther)
			return
		}
		if err := a.drafts.Save(ctx, sid, string(report), enabled, draft); err != nil {
			a.logger.WarnContext(ctx, "save analytics draft", "report", report, "err", err)
		}
	} else if stored, ok, err := a.drafts.Load(ctx, sid, string(report), enabled); err == nil && ok && !stored.Empty() {
		http.Redirect(w, r, currentURL(base, filter.Encode(restrictDraft(stored, enabled))), http.StatusSeeOther)
		return
	}

	q := draft.Query()
	if err := q.Validate(); err != nil {
		a.renderError(w, r, http.StatusBadRequest, describeError(err, ""))
		return
	}
	points, err := a.analytics.Series(ctx, report, q)
	if err != nil {
		if isUnauthorized(err) {
			a.expireSession(w, r)
			return
		}
		a.logger.WarnContext(ctx, "analytics series", "report", report, "err", err)
		a.renderError(w, r, errorStatus(err), describeError(err, "Error al cargar el reporte"))
		return
	}

	bars, total := chartBars(points)
	view := analyticsView{
		Reports: reportLinks(),
		Report:  string(report),
		Label:   report.Label(),
		Filter: filterView{
			Action: base,
			Fields: a.analyticsFields(r, draft, enabled),
			Active: !draft.Empty(),
			Clear:  base + "?clear=1",
		},
		Bars:  bars,
		Total: total,
	}
	a.render(w, r, http.StatusOK, "analytics", report.Label(), "/analytics", view, nil)
}

func (a *API) analyticsFields(r *http.Request, d filter.AnalyticsDraft, enabled []string) []formField {
	var fields []formField
	for _, name := range enabled {
		switch name {
		case analytics.FilterMaterial:
			fields = append(fields, a.materialPickerField(r, "materialId", "Material", d.MaterialID))
		case analytics.FilterProduct:
			fields = append(fields, a.productPickerField(r, "productId", "Producto", d.ProductID))
		case analytics.FilterDates:
			fields = append(fields,
				formField{Name: "startDate", Label: "Desde", Type: "date", Value: d.StartDate},
				formField{Name: "endDate", Label: "Hasta", Type: "date", Value: d.EndDate},
			)
		}
	}
	return fields
}

// restrictDraft drops the values of filters the report does not offer.
func restrictDraft(d filter.AnalyticsDraft, enabled []string) filter.AnalyticsDraft {
	if !contains(enabled, analytics.FilterMaterial) {
		d.MaterialID = 0
	}
	if !contains(enabled, analytics.FilterProduct) {
		d.ProductID = 0
	}
	if !contains(enabled, analytics.FilterDates) {
		d.StartDate, d.EndDate = "", ""
	}
	return d
}

func chartBars(points []analytics.Point) ([]barView, string) {
	peak := decimal.Zero
	total := decimal.Zero
	for _, p := range points {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
		total = total.Add(p.Value)
	}
	bars := make([]barView, 0, len(points))
	hundred := decimal.NewFromInt(100)
	for _, p := range points {
		pct := decimal.Zero
		if peak.IsPositive() && p.Value.IsPositive() {
			pct = p.Value.Div(peak).Mul(hundred).Round(1)
		}
		bars = append(bars, barView{Period: p.Period, Value: p.Value.String(), Percent: pct.String()})
	}
	return bars, total.String()
}

func reportLinks() []reportLink {
	reports := analytics.Reports()
	out := make([]reportLink, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportLink{Label: rep.Label(), Href: "/analytics/" + url.PathEscape(string(rep))})
	}
	return out
}
