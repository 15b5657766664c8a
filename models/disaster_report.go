package models

import (
	"time"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// DisasterReport is an unverified incident claim created from a
// REPORT-classified inbound message. Status moves pending -> approved or
// pending -> rejected exactly once; both outcomes are terminal.
type DisasterReport struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RawText       string         `gorm:"type:text;not null" json:"raw_text"`
	Type          string         `gorm:"size:64" json:"type"`
	LocationText  string         `gorm:"size:255" json:"location_text"`
	Lat           *float64       `json:"lat"`
	Lng           *float64       `json:"lng"`
	RadiusM       *int           `json:"radius_m"`
	Severity      *Severity      `gorm:"size:16" json:"severity"`
	Status        ReportStatus   `gorm:"size:16;not null;default:'pending'" json:"status"`
	ReporterPhone string         `gorm:"size:32" json:"reporter_phone"`
	CreatedAt     time.Time      `json:"created_at"`
	Alert         *DisasterAlert `gorm:"foreignKey:DisasterID" json:"alert,omitempty"`
}

func (DisasterReport) TableName() string {
	return "disaster_reports"
}

// Geofenced reports whether the disaster carries everything needed to
// evaluate containment: resolved coordinates and a radius.
func (d *DisasterReport) Geofenced() bool {
	return d.Lat != nil && d.Lng != nil && d.RadiusM != nil
}
