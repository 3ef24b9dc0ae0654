package api

import (
	"database/sql"
	"errors"
	"net"
	"net/http"

	"github.com/eventcal/eventcal-go/internal/geoip"
	"github.com/eventcal/eventcal-go/internal/middleware"
	"github.com/eventcal/eventcal-go/internal/store"
)

// RegionAPIResponse represents a region in API responses.
type RegionAPIResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"isActive"`
}

// EventTypeAPIResponse represents an event type in API responses.
type EventTypeAPIResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func regionResponse(r store.Region) RegionAPIResponse {
	return RegionAPIResponse{
		ID:       r.ID,
		Name:     r.Name,
		Code:     r.Code,
		Timezone: r.Timezone,
		IsActive: r.IsActive,
	}
}

// ListRegions handles GET /api/regions. The region list is served from
// cache; a miss falls through to the store.
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	regions, err := h.regionCache.GetOrSet(ctx, "regions", func() (*[]store.Region, error) {
		rs, err := h.queries.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		return &rs, nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to list regions")
		return
	}

	responses := make([]RegionAPIResponse, 0, len(*regions))
	for _, reg := range *regions {
		responses = append(responses, regionResponse(reg))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// ListEventTypes handles GET /api/event-types.
func (h *Handler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	types, err := h.typeCache.GetOrSet(ctx, "event_types", func() (*[]store.EventType, error) {
		ts, err := h.queries.ListEventTypes(ctx)
		if err != nil {
			return nil, err
		}
		return &ts, nil
	})
	if err != nil {
		WriteInternalError(w, "Failed to list event types")
		return
	}

	responses := make([]EventTypeAPIResponse, 0, len(*types))
	for _, t := range *types {
		responses = append(responses, EventTypeAPIResponse{
			ID:    t.ID,
			Name:  t.Name,
			Color: t.Color,
			Icon:  t.Icon,
		})
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// DetectRegionResponse is the GeoIP suggestion for the caller's IP.
type DetectRegionResponse struct {
	Country string             `json:"country"`
	Region  *RegionAPIResponse `json:"region"`
}

// DetectRegion handles GET /api/regions/detect. When GeoIP is disabled
// or the country maps to no marketing region, region is null.
func (h *Handler) DetectRegion(w http.ResponseWriter, r *http.Request) {
	resp := DetectRegionResponse{}

	if h.geo != nil {
		ip := middleware.ClientIP(r)
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		resp.Country = h.geo.LookupCountry(ip)
	}

	if code := geoip.RegionCode(resp.Country); code != "" {
		region, err := h.queries.GetRegionByCode(r.Context(), code)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to resolve region")
			return
		}
		if err == nil {
			rr := regionResponse(region)
			resp.Region = &rr
		}
	}

	WriteSuccess(w, resp, nil)
}
