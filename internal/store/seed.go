package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// seedRegions is the fixed market list the product launches with.
var seedRegions = []CreateRegionParams{
	{Name: "China", Code: "CN", Timezone: "Asia/Shanghai", IsActive: true},
	{Name: "United States", Code: "US", Timezone: "America/New_York", IsActive: true},
	{Name: "Canada", Code: "CA", Timezone: "America/Toronto", IsActive: true},
	{Name: "Europe", Code: "EU", Timezone: "Europe/Berlin", IsActive: true},
	{Name: "Japan", Code: "JP", Timezone: "Asia/Tokyo", IsActive: true},
	{Name: "South Korea", Code: "KR", Timezone: "Asia/Seoul", IsActive: true},
	{Name: "Vietnam", Code: "VN", Timezone: "Asia/Ho_Chi_Minh", IsActive: true},
	{Name: "Indonesia", Code: "ID", Timezone: "Asia/Jakarta", IsActive: true},
	{Name: "Thailand", Code: "TH", Timezone: "Asia/Bangkok", IsActive: true},
	{Name: "Brazil", Code: "BR", Timezone: "America/Sao_Paulo", IsActive: true},
	{Name: "Argentina", Code: "AR", Timezone: "America/Argentina/Buenos_Aires", IsActive: true},
	{Name: "Mexico", Code: "MX", Timezone: "America/Mexico_City", IsActive: true},
}

// seedEventTypes defines the conventional category IDs:
// holiday=1, marketing=2, custom=3.
var seedEventTypes = []CreateEventTypeParams{
	{Name: "Holiday", Color: "#dc2626", Icon: "flag"},
	{Name: "Marketing", Color: "#2563eb", Icon: "megaphone"},
	{Name: "Custom", Color: "#16a34a", Icon: "star"},
}

// Seed creates reference data in the database. It is a no-op when regions
// already exist, so it is safe to run on every start.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	count, err := queries.CountRegions(ctx)
	if err != nil {
		return fmt.Errorf("counting regions: %w", err)
	}
	if count > 0 {
		slog.Info("regions already present, skipping seed")
		return nil
	}

	for _, r := range seedRegions {
		if _, err := queries.CreateRegion(ctx, r); err != nil {
			return fmt.Errorf("seeding region %s: %w", r.Code, err)
		}
	}

	for _, t := range seedEventTypes {
		if _, err := queries.CreateEventType(ctx, t); err != nil {
			return fmt.Errorf("seeding event type %s: %w", t.Name, err)
		}
	}

	if err := seedHolidays(ctx, queries); err != nil {
		return err
	}

	slog.Info("seeded reference data",
		"regions", len(seedRegions),
		"event_types", len(seedEventTypes),
	)
	return nil
}

// seedHolidays inserts a small set of well-known observances for the current
// year so a fresh calendar is not empty.
func seedHolidays(ctx context.Context, queries *Queries) error {
	year := time.Now().Year()
	now := time.Now()

	type holidaySeed struct {
		name       string
		month, day int
		regionCode string
		kind       string
		recurring  bool
	}

	holidaySeeds := []holidaySeed{
		{"New Year's Day", 1, 1, "US", "national", true},
		{"Spring Festival", 2, 1, "CN", "cultural", true},
		{"Independence Day", 7, 4, "US", "national", true},
		{"Mid-Autumn Festival", 9, 15, "CN", "cultural", true},
		{"Christmas Day", 12, 25, "EU", "religious", true},
	}

	for _, h := range holidaySeeds {
		region, err := queries.GetRegionByCode(ctx, h.regionCode)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return fmt.Errorf("looking up region %s: %w", h.regionCode, err)
		}

		date := fmt.Sprintf("%04d-%02d-%02d", year, h.month, h.day)
		if _, err := queries.CreateHoliday(ctx, CreateHolidayParams{
			Name:        h.name,
			Date:        date,
			RegionID:    sql.NullInt64{Int64: region.ID, Valid: true},
			Type:        h.kind,
			IsRecurring: h.recurring,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("seeding holiday %s: %w", h.name, err)
		}
	}

	return nil
}
