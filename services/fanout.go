package services

import (
	"fmt"
	"time"

	"github.com/relief-grid/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FanoutService decides which users receive an alert for an active
// geofenced disaster and queues exactly one outbound SMS per
// (disaster, user) pair. Both scan directions funnel into alertPair.
//
// Every method takes the caller's transaction handle: fan-out must
// commit or roll back together with the status change or position
// update that triggered it.
type FanoutService struct {
	Outbox *OutboxService
}

func NewFanoutService(outbox *OutboxService) *FanoutService {
	return &FanoutService{Outbox: outbox}
}

// ScanDisaster checks every user with a known position against one
// disaster, typically right after approval. Returns the number of
// newly queued alerts.
func (s *FanoutService) ScanDisaster(tx *gorm.DB, disaster *models.DisasterReport) (int, error) {
	if !disaster.Geofenced() {
		return 0, nil
	}

	var users []models.User
	if err := tx.Where("last_lat IS NOT NULL AND last_lng IS NOT NULL").Find(&users).Error; err != nil {
		return 0, err
	}

	queued := 0
	for i := range users {
		sent, err := s.alertPair(tx, disaster, &users[i])
		if err != nil {
			return queued, err
		}
		if sent {
			queued++
		}
	}
	return queued, nil
}

// ScanUser checks one user against every active disaster, typically
// right after a position update.
func (s *FanoutService) ScanUser(tx *gorm.DB, user *models.User) (int, error) {
	if !user.HasPosition() {
		return 0, nil
	}

	var active []models.DisasterReport
	err := tx.
		Joins("JOIN disaster_alerts ON disaster_alerts.disaster_id = disaster_reports.id").
		Where("disaster_reports.status = ? AND disaster_alerts.deactivated_at IS NULL", models.ReportApproved).
		Find(&active).Error
	if err != nil {
		return 0, err
	}

	queued := 0
	for i := range active {
		sent, err := s.alertPair(tx, &active[i], user)
		if err != nil {
			return queued, err
		}
		if sent {
			queued++
		}
	}
	return queued, nil
}

// alertPair runs the containment check and, if the user is inside the
// radius, records the pair in the alert log and queues the SMS. The
// insert uses ON CONFLICT DO NOTHING against the (disaster_id, user_id)
// unique index: a zero-row result means another trigger already alerted
// this pair, which is the expected race outcome, not an error.
func (s *FanoutService) alertPair(tx *gorm.DB, disaster *models.DisasterReport, user *models.User) (bool, error) {
	if !disaster.Geofenced() || !user.HasPosition() {
		return false, nil
	}
	if !InsideRadius(*disaster.Lat, *disaster.Lng, *user.LastLat, *user.LastLng, float64(*disaster.RadiusM)) {
		return false, nil
	}

	entry := models.UserAlertLog{
		DisasterID:  disaster.ID,
		UserID:      user.ID,
		FirstSentAt: time.Now().UTC(),
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "disaster_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&entry)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		// Already alerted for this pair.
		return false, nil
	}

	body := fmt.Sprintf("ALERT: %s near %s. Reply HELP if you need assistance.", disaster.Type, disaster.LocationText)
	disasterID := disaster.ID
	if _, err := s.Outbox.Enqueue(tx, user.Phone, body, models.PurposeAlert, &disasterID); err != nil {
		return false, err
	}
	return true, nil
}
