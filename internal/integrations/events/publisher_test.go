package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func TestBuildMessage(t *testing.T) {
	occurred := time.Date(2024, time.July, 10, 9, 0, 0, 0, time.UTC)
	r := &domain.Reservation{
		ID:         42,
		BusinessID: 1,
		ServiceID:  10,
		UserID:     100,
		Date:       time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		Status:     domain.StatusPending,
	}

	event := NewReservationEvent(TypeReservationCreated, r, occurred)
	assert.NotEmpty(t, event.ID)

	msg, err := buildMessage(event)
	require.NoError(t, err)
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, occurred, msg.Time)

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "2024-07-15", decoded.Date)
	assert.Equal(t, "10:00", decoded.Time)
	assert.Equal(t, "pending", decoded.Status)
	assert.Equal(t, TypeReservationCreated, decoded.Type)
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeReservationConfirmed, TypeForStatus(domain.StatusConfirmed))
	assert.Equal(t, TypeReservationCancelled, TypeForStatus(domain.StatusCancelled))
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, SplitBrokers(" kafka-1:9092, ,kafka-2:9092 "))
	assert.Empty(t, SplitBrokers(""))
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
