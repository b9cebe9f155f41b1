package model

import (
	"github.com/google/uuid"
)

// DayLayout is the calendar-day key format used for daily aggregates
// and week starts. Keeping the key as a plain date string sidesteps
// timezone drift between the database and Go when comparing days.
const DayLayout = "2006-01-02"

// DailyImpact accumulates environmental savings per user per calendar
// day. One row per (user, day); increments go through an atomic upsert
// so concurrent scans never lose updates. Rows must stay reproducible
// by replaying the day's ScanEvents against the impact factor table.
type DailyImpact struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_impact_user_day;not null" json:"user_id"`
	Day           string    `gorm:"size:10;uniqueIndex:uq_impact_user_day;not null" json:"day"`
	CO2SavedG     float64   `gorm:"default:0" json:"co2_saved_g"`
	WaterSavedL   float64   `gorm:"default:0" json:"water_saved_l"`
	EnergySavedWh float64   `gorm:"default:0" json:"energy_saved_wh"`
}
