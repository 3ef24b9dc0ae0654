// Package model holds the domain vocabulary shared by the store, the
// handlers, and the recommendation engine.
package model

import "fmt"

// Recommendation workflow statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusArchived = "archived"
)

// Event type category IDs as seeded, used when a recommendation or a
// generated event needs a category without a caller-supplied one.
const (
	CategoryHoliday   int64 = 1
	CategoryMarketing int64 = 2
	CategoryCustom    int64 = 3
)

// Holiday kinds stored in holidays.type.
const (
	HolidayNational  = "national"
	HolidayCultural  = "cultural"
	HolidayReligious = "religious"
)

// ValidStatus reports whether s is a known recommendation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// ValidHolidayType reports whether s is a known holiday kind.
func ValidHolidayType(s string) bool {
	switch s {
	case HolidayNational, HolidayCultural, HolidayReligious:
		return true
	}
	return false
}

// ValidTransition reports whether a recommendation may move from one
// status to another. Only pending recommendations can be resolved, and
// any resolved state may be archived.
func ValidTransition(from, to string) error {
	switch {
	case from == StatusPending && (to == StatusAccepted || to == StatusRejected):
		return nil
	case from != StatusArchived && to == StatusArchived:
		return nil
	}
	return fmt.Errorf("cannot change recommendation status from %q to %q", from, to)
}
