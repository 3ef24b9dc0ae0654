// Package scheduler runs the background jobs: materializing recurring
// holidays into the coming year and refreshing the GeoIP database.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/eventcal/eventcal-go/internal/geoip"
	"github.com/eventcal/eventcal-go/internal/store"
)

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	db     *sql.DB
	geo    *geoip.Lookup
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler. geo may be nil when GeoIP is not configured.
func New(db *sql.DB, geo *geoip.Lookup, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		geo:    geo,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the jobs and starts the cron loop. The recurring
// holiday job also runs once immediately so a fresh install has next
// year's holidays without waiting a day.
func (s *Scheduler) Start() error {
	// Daily at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", func() {
		if err := s.materializeRecurringHolidays(); err != nil {
			s.logger.Error("failed to materialize recurring holidays", "error", err)
		}
	}); err != nil {
		return err
	}

	if s.geo != nil {
		// Weekly, Sundays at 03:00
		if _, err := s.cron.AddFunc("0 3 * * 0", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Warn("geoip database reload failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	go func() {
		if err := s.materializeRecurringHolidays(); err != nil {
			s.logger.Error("initial recurring holiday run failed", "error", err)
		}
	}()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// materializeRecurringHolidays copies each recurring holiday onto the
// same month and day of the next calendar year, skipping dates that
// already exist.
func (s *Scheduler) materializeRecurringHolidays() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := store.New(s.db)
	nextYear := time.Now().Year() + 1

	recurring, err := queries.ListRecurringHolidays(ctx)
	if err != nil {
		return fmt.Errorf("listing recurring holidays: %w", err)
	}

	created := 0
	for _, h := range recurring {
		date, err := shiftToYear(h.Date, nextYear)
		if err != nil {
			s.logger.Warn("skipping recurring holiday with bad date",
				"holiday_id", h.ID, "date", h.Date, "error", err)
			continue
		}

		regionID := int64(0)
		if h.RegionID.Valid {
			regionID = h.RegionID.Int64
		}
		count, err := queries.CountHolidaysByNameAndDate(ctx, store.CountHolidaysByNameAndDateParams{
			Name:     h.Name,
			Date:     date,
			RegionID: regionID,
		})
		if err != nil {
			return fmt.Errorf("checking holiday %s: %w", h.Name, err)
		}
		if count > 0 {
			continue
		}

		if _, err := queries.CreateHoliday(ctx, store.CreateHolidayParams{
			Name:        h.Name,
			Description: h.Description,
			Date:        date,
			RegionID:    h.RegionID,
			Type:        h.Type,
			IsRecurring: true,
			CreatedAt:   time.Now(),
		}); err != nil {
			return fmt.Errorf("creating holiday %s: %w", h.Name, err)
		}
		created++
	}

	if created > 0 {
		s.logger.Info("materialized recurring holidays", "year", nextYear, "created", created)
	}
	return nil
}

// shiftToYear rewrites a YYYY-MM-DD date into the target year. Feb 29
// collapses to Feb 28 in non-leap years.
func shiftToYear(date string, year int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", err
	}
	shifted := time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if shifted.Month() != t.Month() {
		shifted = time.Date(year, t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return shifted.Format("2006-01-02"), nil
}
