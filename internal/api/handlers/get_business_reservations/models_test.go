package get_business_reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest_SingleDay(t *testing.T) {
	req, err := ToServiceRequest(1, "confirmed", "2030-01-15", "2030-01-01", "2030-01-31", "")
	require.NoError(t, err)

	day := time.Date(2030, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, day, *req.StartDate)
	assert.Equal(t, day, *req.EndDate)
	assert.Equal(t, "confirmed", *req.Status)
	assert.False(t, req.IncludeInactive)
}

func TestToServiceRequest_Range(t *testing.T) {
	req, err := ToServiceRequest(1, "", "", "2030-01-01", "", "true")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Nil(t, req.EndDate)
	assert.Nil(t, req.Status)
	assert.True(t, req.IncludeInactive)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	_, err := ToServiceRequest(1, "", "15/01/2030", "", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(1, "", "", "", "2030-13-01", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(1, "", "", "", "", "maybe")
	assert.Error(t, err)
}
