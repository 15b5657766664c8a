package services

import (
	"testing"

	"github.com/relief-grid/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxFetchUnsentOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	outbox := NewOutboxService(db)

	first, err := outbox.Enqueue(db, "+100", "first", models.PurposeInfo, nil)
	require.NoError(t, err)
	second, err := outbox.Enqueue(db, "+200", "second", models.PurposeInfo, nil)
	require.NoError(t, err)
	_, err = outbox.Enqueue(db, "+300", "third", models.PurposeInfo, nil)
	require.NoError(t, err)

	msgs, err := outbox.FetchUnsent(2, "")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, second.ID, msgs[1].ID)

	// Fetch is a pure read: calling again returns the same rows.
	again, err := outbox.FetchUnsent(2, "")
	require.NoError(t, err)
	require.Len(t, again, 2)
	assert.Equal(t, first.ID, again[0].ID)
}

func TestOutboxFetchUnsentPhoneFilter(t *testing.T) {
	db := setupTestDB(t)
	outbox := NewOutboxService(db)

	_, err := outbox.Enqueue(db, "+100", "a", models.PurposeInfo, nil)
	require.NoError(t, err)
	mine, err := outbox.Enqueue(db, "+200", "b", models.PurposeInfo, nil)
	require.NoError(t, err)

	msgs, err := outbox.FetchUnsent(50, "+200")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, mine.ID, msgs[0].ID)
}

func TestOutboxMarkSentMixedIDsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	outbox := NewOutboxService(db)

	sent, err := outbox.Enqueue(db, "+100", "already sent", models.PurposeInfo, nil)
	require.NoError(t, err)
	unsent, err := outbox.Enqueue(db, "+200", "pending", models.PurposeAlert, nil)
	require.NoError(t, err)

	n, err := outbox.MarkSent([]uint{sent.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Mix of already-sent, valid-unsent and unknown ids: only the
	// valid-unsent row counts.
	n, err = outbox.MarkSent([]uint{sent.ID, unsent.ID, 99999})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Second identical call updates nothing.
	n, err = outbox.MarkSent([]uint{sent.ID, unsent.ID, 99999})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	var remaining []models.OutboundSMS
	require.NoError(t, db.Where("sent_at IS NULL").Find(&remaining).Error)
	assert.Empty(t, remaining)

	var row models.OutboundSMS
	require.NoError(t, db.First(&row, unsent.ID).Error)
	assert.Equal(t, 1, row.AttemptCount)
	require.NotNil(t, row.SentAt)
}

func TestOutboxMarkSentEmpty(t *testing.T) {
	db := setupTestDB(t)
	outbox := NewOutboxService(db)

	n, err := outbox.MarkSent(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
