package session

import (
	"sort"
	"strings"
)

const (
	KeySelectedMaterial = "material-search-filter-selected"
	KeySelectedProduct  = "product-search-filter-selected"
	KeyRelatedMaterial  = "related-material-id"
	KeyBackendCookies   = "backend-credentials"
	KeyFlash            = "flash-toast"
)

// AnalyticsKey names the stored draft of an analytics page. The enabled
// optional filters are part of the key, so each combination keeps its own
// draft.
func AnalyticsKey(page string, enabled []string) string {
	parts := make([]string, 0, len(enabled))
	for _, e := range enabled {
		if e = strings.TrimSpace(e); e != "" {
			parts = append(parts, e)
		}
	}
	sort.Strings(parts)
	return "analytics-filters:" + page + ":" + strings.Join(parts, "+")
}
