package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		Window:     domain.OperatingWindow{StartHour: 9, EndHour: 10},
		Slots: []domain.TimeSlot{
			{Time: types.TimeString("09:00"), Available: true},
			{Time: types.TimeString("09:30"), Available: false},
		},
	}, nil
}

func get(uc *fakeUseCase, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{}
	rec := get(uc, "/api/v1/businesses/3/available-slots?date=2030-05-20")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(3), uc.got.BusinessID)
	assert.Equal(t, time.Date(2030, time.May, 20, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-05-20", resp.Date)
	assert.Equal(t, 9, resp.StartHour)
	assert.Equal(t, 10, resp.EndHour)
	assert.Equal(t, 1, resp.AvailableCount)
	assert.Equal(t, []AvailableSlot{{Time: "09:00", Available: true}, {Time: "09:30", Available: false}}, resp.Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad business id", "/api/v1/businesses/x/available-slots?date=2030-05-20", nil, http.StatusBadRequest},
		{"missing date", "/api/v1/businesses/3/available-slots", nil, http.StatusBadRequest},
		{"bad date", "/api/v1/businesses/3/available-slots?date=20-05-2030", nil, http.StatusBadRequest},
		{"invalid input", "/api/v1/businesses/3/available-slots?date=2030-05-20", getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{"not found", "/api/v1/businesses/3/available-slots?date=2030-05-20", getAvailableSlots.ErrBusinessNotFound, http.StatusNotFound},
		{"internal", "/api/v1/businesses/3/available-slots?date=2030-05-20", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(&fakeUseCase{err: tt.err}, tt.path).Code)
		})
	}
}
