package models

import (
	"time"
)

type HelpStatus string

const (
	HelpOpen     HelpStatus = "open"
	HelpAck      HelpStatus = "ack"
	HelpResolved HelpStatus = "resolved"
)

// HelpRequest is created for every HELP-classified inbound message.
// Status progresses manually (open -> ack -> resolved); nothing in the
// core advances it automatically.
type HelpRequest struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	InboundID uint       `gorm:"not null" json:"inbound_id"`
	Phone     string     `gorm:"size:32;index;not null" json:"phone"`
	Status    HelpStatus `gorm:"size:16;not null;default:'open'" json:"status"`
	Notes     *string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

func (HelpRequest) TableName() string {
	return "help_requests"
}
