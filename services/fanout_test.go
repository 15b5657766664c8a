package services

import (
	"sync"
	"testing"
	"time"

	"github.com/relief-grid/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestFanout(db *gorm.DB) *FanoutService {
	return NewFanoutService(NewOutboxService(db))
}

func makeActiveDisaster(t *testing.T, db *gorm.DB, lat, lng float64, radiusM int) *models.DisasterReport {
	t.Helper()
	report := models.DisasterReport{
		RawText:      "REPORT: FIRE at CITY CENTER radius 3km severity MEDIUM",
		Type:         "FIRE",
		LocationText: "CITY CENTER",
		Lat:          floatPtr(lat),
		Lng:          floatPtr(lng),
		RadiusM:      intPtr(radiusM),
		Status:       models.ReportApproved,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&report).Error)
	require.NoError(t, db.Create(&models.DisasterAlert{
		DisasterID:  report.ID,
		ActivatedAt: time.Now().UTC(),
	}).Error)
	return &report
}

func makeUser(t *testing.T, db *gorm.DB, phone string, lat, lng *float64) *models.User {
	t.Helper()
	user := models.User{Phone: phone, LastLat: lat, LastLng: lng, UpdatedAt: time.Now().UTC()}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestScanDisasterAlertsOnlyUsersInside(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	disaster := makeActiveDisaster(t, db, 10.0, 20.0, 3000)
	inside1 := makeUser(t, db, "+1", floatPtr(10.0), floatPtr(20.01))
	inside2 := makeUser(t, db, "+2", floatPtr(10.01), floatPtr(20.0))
	makeUser(t, db, "+3", floatPtr(11.0), floatPtr(21.0)) // far away
	makeUser(t, db, "+4", nil, nil)                       // no position

	queued, err := fanout.ScanDisaster(db, disaster)
	require.NoError(t, err)
	assert.Equal(t, 2, queued)

	var logs []models.UserAlertLog
	require.NoError(t, db.Find(&logs).Error)
	assert.Len(t, logs, 2)

	var msgs []models.OutboundSMS
	require.NoError(t, db.Find(&msgs).Error)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, models.PurposeAlert, m.Purpose)
		assert.Equal(t, "ALERT: FIRE near CITY CENTER. Reply HELP if you need assistance.", m.Body)
		require.NotNil(t, m.DisasterID)
		assert.Equal(t, disaster.ID, *m.DisasterID)
	}

	phones := []string{msgs[0].Phone, msgs[1].Phone}
	assert.ElementsMatch(t, []string{inside1.Phone, inside2.Phone}, phones)
}

func TestScanDisasterRerunIsDeduplicated(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	disaster := makeActiveDisaster(t, db, 10.0, 20.0, 3000)
	user := makeUser(t, db, "+1", floatPtr(10.0), floatPtr(20.01))

	queued, err := fanout.ScanDisaster(db, disaster)
	require.NoError(t, err)
	assert.Equal(t, 1, queued)

	// Re-trigger from both directions: no second alert for the pair.
	queued, err = fanout.ScanDisaster(db, disaster)
	require.NoError(t, err)
	assert.Equal(t, 0, queued)

	queued, err = fanout.ScanUser(db, user)
	require.NoError(t, err)
	assert.Equal(t, 0, queued)

	var logCount, smsCount int64
	require.NoError(t, db.Model(&models.UserAlertLog{}).Count(&logCount).Error)
	require.NoError(t, db.Model(&models.OutboundSMS{}).Count(&smsCount).Error)
	assert.EqualValues(t, 1, logCount)
	assert.EqualValues(t, 1, smsCount)
}

func TestConcurrentScansAlertSamePairOnce(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	disaster := makeActiveDisaster(t, db, 10.0, 20.0, 3000)
	user := makeUser(t, db, "+1", floatPtr(10.0), floatPtr(20.01))

	// Simultaneous disaster approval and user movement race to insert
	// the same (disaster, user) pair; the unique index, not the
	// existence check, decides the winner.
	var wg sync.WaitGroup
	counts := make([]int, 2)
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		counts[0], errs[0] = fanout.ScanDisaster(db, disaster)
	}()
	go func() {
		defer wg.Done()
		counts[1], errs[1] = fanout.ScanUser(db, user)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, counts[0]+counts[1])

	var logCount, smsCount int64
	require.NoError(t, db.Model(&models.UserAlertLog{}).Count(&logCount).Error)
	require.NoError(t, db.Model(&models.OutboundSMS{}).Count(&smsCount).Error)
	assert.EqualValues(t, 1, logCount)
	assert.EqualValues(t, 1, smsCount)
}

func TestScanDisasterWithoutGeofenceQueuesNothing(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	report := models.DisasterReport{
		RawText:      "REPORT: FIRE at SOMEWHERE radius 3km severity LOW",
		Type:         "FIRE",
		LocationText: "SOMEWHERE",
		RadiusM:      intPtr(3000),
		Status:       models.ReportApproved,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&report).Error)
	makeUser(t, db, "+1", floatPtr(10.0), floatPtr(20.0))

	queued, err := fanout.ScanDisaster(db, &report)
	require.NoError(t, err)
	assert.Equal(t, 0, queued)
}

func TestScanUserIgnoresDeactivatedDisasters(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	active := makeActiveDisaster(t, db, 10.0, 20.0, 3000)

	retired := makeActiveDisaster(t, db, 10.0, 20.0, 3000)
	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.DisasterAlert{}).
		Where("disaster_id = ?", retired.ID).
		Update("deactivated_at", now).Error)

	user := makeUser(t, db, "+1", floatPtr(10.0), floatPtr(20.01))

	queued, err := fanout.ScanUser(db, user)
	require.NoError(t, err)
	assert.Equal(t, 1, queued)

	var logs []models.UserAlertLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, active.ID, logs[0].DisasterID)
}

func TestScanUserWithoutPositionQueuesNothing(t *testing.T) {
	db := setupTestDB(t)
	fanout := newTestFanout(db)

	makeActiveDisaster(t, db, 10.0, 20.0, 3000)
	user := makeUser(t, db, "+1", nil, nil)

	queued, err := fanout.ScanUser(db, user)
	require.NoError(t, err)
	assert.Equal(t, 0, queued)
}
