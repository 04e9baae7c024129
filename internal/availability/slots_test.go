package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var day = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots_DefaultWindow(t *testing.T) {
	slots := GenerateSlots(day, domain.DefaultOperatingWindow())

	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("09:00"), slots[0].Time)
	assert.Equal(t, types.TimeString("09:30"), slots[1].Time)
	assert.Equal(t, types.TimeString("18:30"), slots[19].Time)

	for i, s := range slots {
		assert.True(t, s.Available)
		assert.Equal(t, day, s.Date)
		if i > 0 {
			assert.True(t, slots[i-1].Time.IsBefore(s.Time))
		}
	}
}

func TestGenerateSlots_WindowSizes(t *testing.T) {
	tests := []struct {
		name   string
		window domain.OperatingWindow
		want   int
	}{
		{name: "single hour", window: domain.OperatingWindow{StartHour: 12, EndHour: 13}, want: 2},
		{name: "whole day", window: domain.OperatingWindow{StartHour: 0, EndHour: 24}, want: 48},
		{name: "empty", window: domain.OperatingWindow{StartHour: 10, EndHour: 10}, want: 0},
		{name: "inverted", window: domain.OperatingWindow{StartHour: 18, EndHour: 9}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, GenerateSlots(day, tt.window), tt.want)
		})
	}
}

func TestGenerateSlots_TruncatesDate(t *testing.T) {
	slots := GenerateSlots(day.Add(15*time.Hour), domain.DefaultOperatingWindow())
	assert.Equal(t, day, slots[0].Date)
}

func TestIsGeneratedSlot(t *testing.T) {
	window := domain.DefaultOperatingWindow()

	assert.True(t, IsGeneratedSlot(window, "09:00"))
	assert.True(t, IsGeneratedSlot(window, "18:30"))
	assert.False(t, IsGeneratedSlot(window, "19:00"))
	assert.False(t, IsGeneratedSlot(window, "08:30"))
	assert.False(t, IsGeneratedSlot(window, "10:15"))
	assert.False(t, IsGeneratedSlot(window, "nope"))
}
