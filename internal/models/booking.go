package models

import (
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AvailabilityID uint   `gorm:"not null;uniqueIndex:idx_bookings_scope,priority:1" json:"availability"`
	GuestName      string `gorm:"size:100;not null" json:"guest_name"`

	Date      clock.Date      `gorm:"type:date;not null;uniqueIndex:idx_bookings_scope,priority:2" json:"date"`
	StartTime clock.TimeOfDay `gorm:"type:varchar(8);not null;uniqueIndex:idx_bookings_scope,priority:3" json:"start_time"`
	EndTime   clock.TimeOfDay `gorm:"type:varchar(8);not null;uniqueIndex:idx_bookings_scope,priority:4" json:"end_time"`

	// Duration is in minutes and must equal EndTime - StartTime.
	Duration int `gorm:"not null;check:duration > 0" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
}
