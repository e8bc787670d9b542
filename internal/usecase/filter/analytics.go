package filter

import (
	"context"
	"net/url"

	"example.com/brewery-admin/internal/domain/analytics"
	"example.com/brewery-admin/internal/infra/session"
)

// AnalyticsDraft is the filter of one analytics page.
type AnalyticsDraft struct {
	MaterialID int64  `url:"materialId,omitempty" json:"materialId,omitempty"`
	ProductID  int64  `url:"productId,omitempty" json:"productId,omitempty"`
	StartDate  string `url:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate    string `url:"endDate,omitempty" json:"endDate,omitempty"`
}

func (d AnalyticsDraft) Empty() bool {
	return d == AnalyticsDraft{}
}

func (d AnalyticsDraft) Query() analytics.Query {
	return analytics.Query{
		MaterialID: d.MaterialID,
		ProductID:  d.ProductID,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
	}
}

func Analytics(v url.Values) AnalyticsDraft {
	return AnalyticsDraft{
		MaterialID: id(v, "materialId"),
		ProductID:  id(v, "productId"),
		StartDate:  day(v, "startDate"),
		EndDate:    day(v, "endDate"),
	}
}

// Drafts persists analytics drafts per session. The key includes the set of
// optional filters the page enables, so pages with different filter sets
// never share a draft.
type Drafts struct {
	store session.Store
}

func NewDrafts(store session.Store) *Drafts {
	return &Drafts{store: store}
}

func (d *Drafts) Save(ctx context.Context, sid, pageName string, enabled []string, draft AnalyticsDraft) error {
	return session.Save(ctx, d.store, sid, session.AnalyticsKey(pageName, enabled), draft)
}

// Load returns the stored draft; a missing or unreadable one is a miss.
func (d *Drafts) Load(ctx context.Context, sid, pageName string, enabled []string) (AnalyticsDraft, bool, error) {
	return session.Load[AnalyticsDraft](ctx, d.store, sid, session.AnalyticsKey(pageName, enabled))
}

func (d *Drafts) Clear(ctx context.Context, sid, pageName string, enabled []string) error {
	return d.store.Delete(ctx, sid, session.AnalyticsKey(pageName, enabled))
}
