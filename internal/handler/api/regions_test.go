package api

import (
	"net/http"
	"testing"
)

func TestListRegions(t *testing.T) {
	db, h := testSetup(t)
	createTestRegion(t, db, "China", "CN")
	createTestRegion(t, db, "Brazil", "BR")

	req := newGetRequest(t, "/api/regions", nil)
	w := executeHandler(t, h.ListRegions, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	regions, meta := unmarshalList[RegionAPIResponse](t, w)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}
	if meta == nil || meta.Total != 2 {
		t.Errorf("expected meta total 2, got %+v", meta)
	}
}

func TestListRegionsServedFromCache(t *testing.T) {
	db, h := testSetup(t)
	createTestRegion(t, db, "China", "CN")

	// Prime the cache, then add a region the cached list predates.
	w := executeHandler(t, h.ListRegions, newGetRequest(t, "/api/regions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	createTestRegion(t, db, "Brazil", "BR")

	w = executeHandler(t, h.ListRegions, newGetRequest(t, "/api/regions", nil))
	regions, _ := unmarshalList[RegionAPIResponse](t, w)
	if len(regions) != 1 {
		t.Errorf("expected cached list of 1 region, got %d", len(regions))
	}
}

func TestListEventTypes(t *testing.T) {
	db, h := testSetup(t)
	if _, err := db.Exec(`INSERT INTO event_types (name, color, icon) VALUES ('Holiday', '#dc2626', 'flag'), ('Marketing', '#2563eb', 'megaphone')`); err != nil {
		t.Fatalf("failed to insert event types: %v", err)
	}

	req := newGetRequest(t, "/api/event-types", nil)
	w := executeHandler(t, h.ListEventTypes, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	types, _ := unmarshalList[EventTypeAPIResponse](t, w)
	if len(types) != 2 {
		t.Fatalf("expected 2 event types, got %d", len(types))
	}
	if types[0].Name != "Holiday" || types[0].Color != "#dc2626" {
		t.Errorf("unexpected first event type: %+v", types[0])
	}
}

func TestDetectRegionWithoutGeoIP(t *testing.T) {
	_, h := testSetup(t)

	req := newGetRequest(t, "/api/regions/detect", nil)
	w := executeHandler(t, h.DetectRegion, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := unmarshalData[DetectRegionResponse](t, w)
	if resp.Country != "" {
		t.Errorf("expected empty country without GeoIP, got %q", resp.Country)
	}
	if resp.Region != nil {
		t.Errorf("expected null region without GeoIP, got %+v", resp.Region)
	}
}

func TestStatus(t *testing.T) {
	_, h := testSetup(t)

	req := newGetRequest(t, "/api/status", nil)
	w := executeHandler(t, h.Status, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	status := unmarshalData[StatusResponse](t, w)
	if status.Status != "ok" || status.Database != "ok" {
		t.Errorf("unexpected status: %+v", status)
	}
}
