package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeUseCase struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	return f.resp, f.err
}

const validBody = `{
	"businessId": 1,
	"serviceId": 10,
	"date": "2030-03-15",
	"time": "10:30",
	"customerName": "Jane Doe",
	"customerEmail": "jane@example.com"
}`

func serve(uc *fakeUseCase, body string, userHeader string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userHeader != "" {
		req.Header.Set(middleware.UserIDHeader, userHeader)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2030, time.March, 1, 12, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createReservation.Response{
		ID:            7,
		BusinessID:    1,
		ServiceID:     10,
		UserID:        42,
		Date:          time.Date(2030, time.March, 15, 0, 0, 0, 0, time.UTC),
		Time:          types.TimeString("10:30"),
		Status:        "pending",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		ServiceName:   "Massage",
		ServicePrice:  85,
		CreatedAt:     created,
		UpdatedAt:     created,
	}}

	rec := serve(uc, validBody, "42")
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.UserID)
	assert.Equal(t, "2030-03-15", uc.got.Date.Format("2006-01-02"))
	assert.Equal(t, "10:30", uc.got.Time.String())

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2030-03-15", resp.Date)
	assert.Equal(t, "10:30", resp.Time)
	assert.Equal(t, "2030-03-01T12:00:00Z", resp.CreatedAt)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		user   string
		status int
	}{
		{"missing user", validBody, "", http.StatusUnauthorized},
		{"malformed json", `{"businessId":`, "42", http.StatusBadRequest},
		{"unknown field", `{"foo": 1}`, "42", http.StatusBadRequest},
		{"bad date", strings.Replace(validBody, "2030-03-15", "15.03.2030", 1), "42", http.StatusBadRequest},
		{"bad time", strings.Replace(validBody, "10:30", "25:99", 1), "42", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tt.body, tt.user)
			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"slot conflict", createReservation.ErrSlotConflict, http.StatusConflict},
		{"business not found", createReservation.ErrBusinessNotFound, http.StatusNotFound},
		{"service not found", createReservation.ErrServiceNotFound, http.StatusNotFound},
		{"invalid slot", createReservation.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"invalid input", createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"internal", errors.New("db is down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, validBody, "42")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
