package models

import (
	"time"
)

type OutboundPurpose string

const (
	PurposeAlert       OutboundPurpose = "ALERT"
	PurposeAck         OutboundPurpose = "ACK"
	PurposeInfo        OutboundPurpose = "INFO"
	PurposeHelpConfirm OutboundPurpose = "HELP_CONFIRM"
)

// OutboundSMS is the durable notification queue drained by the external
// transport. Rows are append-only; the transport boundary is the only
// writer of SentAt and AttemptCount.
type OutboundSMS struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone        string          `gorm:"size:32;index;not null" json:"phone"`
	Body         string          `gorm:"type:text;not null" json:"body"`
	Purpose      OutboundPurpose `gorm:"size:16;not null" json:"purpose"`
	DisasterID   *uint           `json:"disaster_id"`
	CreatedAt    time.Time       `json:"created_at"`
	SentAt       *time.Time      `json:"sent_at"`
	AttemptCount int             `gorm:"not null;default:0" json:"attempt_count"`
}

func (OutboundSMS) TableName() string {
	return "outbound_sms"
}
