package models

import (
	"time"
)

// User is identified by phone number; rows are created lazily the first
// time a position report or inbound message references the phone.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone     string    `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	LastLat   *float64  `json:"last_lat"`
	LastLng   *float64  `json:"last_lng"`
	LastTower *string   `gorm:"size:64" json:"last_tower"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HasPosition reports whether a last known position exists. Lat and Lng
// are only ever set together.
func (u *User) HasPosition() bool {
	return u.LastLat != nil && u.LastLng != nil
}
