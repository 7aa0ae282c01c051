package models

import (
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
)

// AvailabilityWindow is a recurring weekly range [StartTime, EndTime) in
// which the owner accepts bookings.
type AvailabilityWindow struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint          `gorm:"not null;uniqueIndex:idx_windows_scope,priority:1" json:"user"`
	Weekday clock.Weekday `gorm:"not null;uniqueIndex:idx_windows_scope,priority:2" json:"weekday"`

	StartTime clock.TimeOfDay `gorm:"type:varchar(8);not null;uniqueIndex:idx_windows_scope,priority:3" json:"start_time"`
	EndTime   clock.TimeOfDay `gorm:"type:varchar(8);not null;uniqueIndex:idx_windows_scope,priority:4" json:"end_time"`

	Bookings []Booking `gorm:"foreignKey:AvailabilityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}
