package models

import (
	"time"
)

// DisasterAlert is the 1:1 activation record of an approved report. The
// disaster counts as active for geofencing while DeactivatedAt is null.
type DisasterAlert struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	DisasterID    uint       `gorm:"not null;index" json:"disaster_id"`
	ActivatedAt   time.Time  `gorm:"not null" json:"activated_at"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

func (DisasterAlert) TableName() string {
	return "disaster_alerts"
}
