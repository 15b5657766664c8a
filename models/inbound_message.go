package models

import (
	"time"
)

type InboundKind string

const (
	InboundReport  InboundKind = "REPORT"
	InboundHelp    InboundKind = "HELP"
	InboundSafe    InboundKind = "SAFE"
	InboundGeneral InboundKind = "GENERAL"
)

// InboundMessage is the append-only log of every received text,
// whatever it classified as. DisasterID links REPORT messages to the
// report they produced.
type InboundMessage struct {
	ID         uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone      string      `gorm:"size:32;index;not null" json:"phone"`
	Body       string      `gorm:"type:text;not null" json:"body"`
	Kind       InboundKind `gorm:"size:16;not null" json:"kind"`
	DisasterID *uint       `json:"disaster_id"`
	CreatedAt  time.Time   `json:"created_at"`
}

func (InboundMessage) TableName() string {
	return "inbound_messages"
}
