package warehouse

import (
	"context"
	"strings"
)

type Zone string

const (
	ZoneMalta      Zone = "MALTA"
	ZoneLupulo     Zone = "LUPULO"
	ZoneEnvases    Zone = "ENVASES"
	ZoneEtiquetado Zone = "ETIQUETADO"
	ZoneOtros      Zone = "OTROS"
	ZoneAll        Zone = ""
)

func Zones() []Zone {
	return []Zone{ZoneMalta, ZoneLupulo, ZoneEnvases, ZoneEtiquetado, ZoneOtros}
}

func ParseZone(s string) Zone {
	z := Zone(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Zones() {
		if z == known {
			return z
		}
	}
	return ZoneAll
}

// LayoutParams are the parameters the layout SVG depends on; they also key
// the layout cache.
type LayoutParams struct {
	Zone      Zone   `url:"zone,omitempty"`
	Highlight string `url:"highlight,omitempty"`
}

// CacheKey is stable for equal params.
func (p LayoutParams) CacheKey() string {
	return "layout|" + string(p.Zone) + "|" + p.Highlight
}

type Filter struct {
	Zone       Zone `url:"zone,omitempty"`
	ActiveOnly bool `url:"activeOnly,omitempty"`
}

// LayoutSource returns raw SVG markup for the warehouse.
type LayoutSource interface {
	Layout(ctx context.Context, params LayoutParams) (string, error)
}
