package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent() OutboxEvent {
	return OutboxEvent{
		ID:            "0b54d0a2-9c71-4f25-a2de-64f6f9f7a001",
		RequestID:     "req-123",
		AggregateType: "tax_table",
		AggregateID:   "42",
		EventType:     "taxtable.uploaded",
		Topic:         "hr.taxtable.lifecycle.v1",
		Payload:       []byte(`{"taxTableId":42}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	event := pendingEvent()

	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateWithinTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	event := pendingEvent()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id",
		"event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		"0b54d0a2-9c71-4f25-a2de-64f6f9f7a001", "req-123", "tax_table", "42",
		"taxtable.uploaded", "hr.taxtable.lifecycle.v1", []byte(`{}`), OutboxStatusPending, 0, now,
	)

	mock.ExpectQuery(`FROM outbox_events`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "taxtable.uploaded", events[0].EventType)
	assert.Equal(t, "req-123", events[0].RequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateOutboxEvent(pendingEvent()))
	})

	t.Run("missing id", func(t *testing.T) {
		e := pendingEvent()
		e.ID = ""
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("missing topic", func(t *testing.T) {
		e := pendingEvent()
		e.Topic = ""
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("empty payload", func(t *testing.T) {
		e := pendingEvent()
		e.Payload = nil
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("unknown status", func(t *testing.T) {
		e := pendingEvent()
		e.Status = "queued"
		assert.Error(t, ValidateOutboxEvent(e))
	})
}
