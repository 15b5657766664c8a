package services

import (
	"errors"
	"time"

	"github.com/relief-grid/api-go/models"
	"gorm.io/gorm"
)

// LifecycleService owns the disaster-report state machine: creation
// from inbound texts, human verification, and manual deactivation. It
// is the only writer of DisasterReport and DisasterAlert rows.
type LifecycleService struct {
	DB     *gorm.DB
	Fanout *FanoutService
	Outbox *OutboxService
}

func NewLifecycleService(db *gorm.DB, fanout *FanoutService, outbox *OutboxService) *LifecycleService {
	return &LifecycleService{DB: db, Fanout: fanout, Outbox: outbox}
}

// SubmitResult reports what one inbound message produced.
type SubmitResult struct {
	Intent  Intent
	Inbound models.InboundMessage
	Report  *models.DisasterReport
	Help    *models.HelpRequest
}

// SubmitReport classifies one inbound text and persists its effects:
// the inbound log row always, plus a pending DisasterReport for report
// intents or a HelpRequest (with confirmation SMS) for help intents.
func (s *LifecycleService) SubmitReport(rawText, reporterPhone string) (*SubmitResult, error) {
	intent := Classify(rawText)
	result := &SubmitResult{Intent: intent}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result.Inbound = models.InboundMessage{
			Phone:     reporterPhone,
			Body:      rawText,
			Kind:      intent.Kind,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&result.Inbound).Error; err != nil {
			return err
		}

		switch intent.Kind {
		case models.InboundReport:
			severity := intent.Report.Severity
			radiusM := intent.Report.RadiusM
			report := models.DisasterReport{
				RawText:       rawText,
				Type:          intent.Report.Type,
				LocationText:  intent.Report.LocationText,
				RadiusM:       &radiusM,
				Severity:      &severity,
				Status:        models.ReportPending,
				ReporterPhone: reporterPhone,
				CreatedAt:     time.Now().UTC(),
			}
			if err := tx.Create(&report).Error; err != nil {
				return err
			}
			if err := tx.Model(&result.Inbound).Update("disaster_id", report.ID).Error; err != nil {
				return err
			}
			result.Report = &report

		case models.InboundHelp:
			notes := intent.HelpText
			help := models.HelpRequest{
				InboundID: result.Inbound.ID,
				Phone:     reporterPhone,
				Status:    models.HelpOpen,
				Notes:     &notes,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&help).Error; err != nil {
				return err
			}
			if _, err := s.Outbox.Enqueue(tx, reporterPhone,
				"Help request received. Responders have been notified.",
				models.PurposeHelpConfirm, nil); err != nil {
				return err
			}
			result.Help = &help
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Verify applies the human verification decision to a pending report.
// Rejection is terminal with no side effects. Approval optionally
// overwrites the report coordinates (only when both are given),
// activates the alert, and runs fan-out against all known user
// positions — all in one transaction, so a failed fan-out leaves the
// report pending. Returns the updated report and the number of alerts
// queued.
func (s *LifecycleService) Verify(reportID uint, approve bool, lat, lng *float64) (*models.DisasterReport, int, error) {
	var report models.DisasterReport
	queued := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		target := models.ReportRejected
		if approve {
			target = models.ReportApproved
		}

		// Guarded update: whoever flips the row away from pending first
		// wins; everyone else sees zero rows and fails InvalidState.
		res := tx.Model(&models.DisasterReport{}).
			Where("id = ? AND status = ?", reportID, models.ReportPending).
			Update("status", target)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}
		report.Status = target

		if !approve {
			return nil
		}

		if lat != nil && lng != nil {
			report.Lat = lat
			report.Lng = lng
			if err := tx.Model(&report).Updates(map[string]interface{}{"lat": *lat, "lng": *lng}).Error; err != nil {
				return err
			}
		}

		alert := models.DisasterAlert{
			DisasterID:  report.ID,
			ActivatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&alert).Error; err != nil {
			return err
		}
		report.Alert = &alert

		n, err := s.Fanout.ScanDisaster(tx, &report)
		if err != nil {
			return err
		}
		queued = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &report, queued, nil
}

// Deactivate manually retires an approved disaster's alert. The report
// keeps its approved status but stops counting as active for fan-out.
func (s *LifecycleService) Deactivate(reportID uint) (*models.DisasterReport, error) {
	var report models.DisasterReport

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.DisasterAlert{}).
			Where("disaster_id = ? AND deactivated_at IS NULL", reportID).
			Update("deactivated_at", time.Now().UTC())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidState
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}
