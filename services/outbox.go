package services

import (
	"time"

	"github.com/relief-grid/api-go/models"
	"gorm.io/gorm"
)

// OutboxService owns the durable outbound SMS queue. Producers append
// through Enqueue; the external transport drains with FetchUnsent and
// acknowledges with MarkSent. Rows are never deleted.
type OutboxService struct {
	DB *gorm.DB
}

func NewOutboxService(db *gorm.DB) *OutboxService {
	return &OutboxService{DB: db}
}

// Enqueue appends one unsent message. tx lets producers that run inside
// a transaction (the fan-out engine) enqueue atomically with their other
// writes; pass s.DB for standalone use.
func (s *OutboxService) Enqueue(tx *gorm.DB, phone, body string, purpose models.OutboundPurpose, disasterID *uint) (*models.OutboundSMS, error) {
	sms := models.OutboundSMS{
		Phone:      phone,
		Body:       body,
		Purpose:    purpose,
		DisasterID: disasterID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := tx.Create(&sms).Error; err != nil {
		return nil, err
	}
	return &sms, nil
}

// FetchUnsent returns up to limit unsent messages in insertion order.
// It is a pure read; repeated calls without an intervening MarkSent
// return the same rows. phone optionally restricts to one recipient.
func (s *OutboxService) FetchUnsent(limit int, phone string) ([]models.OutboundSMS, error) {
	if limit <= 0 {
		limit = 50
	}
	q := s.DB.Where("sent_at IS NULL").Order("id ASC").Limit(limit)
	if phone != "" {
		q = q.Where("phone = ?", phone)
	}
	var msgs []models.OutboundSMS
	if err := q.Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkSent stamps the given ids as sent and returns how many rows were
// actually updated. Unknown ids and ids already marked sent are skipped
// silently, so the transport can retry the same batch safely.
func (s *OutboxService) MarkSent(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.DB.Model(&models.OutboundSMS{}).
		Where("id IN ? AND sent_at IS NULL", ids).
		Updates(map[string]interface{}{
			"sent_at":       time.Now().UTC(),
			"attempt_count": gorm.Expr("attempt_count + 1"),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
