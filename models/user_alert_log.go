package models

import (
	"time"
)

// UserAlertLog is the dedup ledger for alert fan-out. The composite
// unique index on (disaster_id, user_id) is the correctness mechanism:
// concurrent fan-out triggers for the same pair race to insert, and the
// loser's conflict is treated as "already alerted".
type UserAlertLog struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DisasterID  uint      `gorm:"not null;uniqueIndex:uq_disaster_user" json:"disaster_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uq_disaster_user" json:"user_id"`
	FirstSentAt time.Time `gorm:"not null" json:"first_sent_at"`
}

func (UserAlertLog) TableName() string {
	return "user_alert_log"
}
