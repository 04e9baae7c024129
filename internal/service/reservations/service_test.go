package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var testDate = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func setup(t *testing.T) (*Service, *reservationRepo.MemoryRepository, *recordingPublisher) {
	t.Helper()
	repo := reservationRepo.NewMemoryRepository()
	pub := &recordingPublisher{}
	return NewService(repo, pub, metrics.New("test"), logger.NewNop()), repo, pub
}

func seed(t *testing.T, repo *reservationRepo.MemoryRepository, businessID, userID int64, date time.Time, slot string) *domain.Reservation {
	t.Helper()
	r, err := repo.Create(context.Background(), &domain.Reservation{
		BusinessID:    businessID,
		ServiceID:     10,
		UserID:        userID,
		Date:          date,
		Time:          types.TimeString(slot),
		Status:        domain.StatusPending,
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
	})
	require.NoError(t, err)
	return r
}

func TestService_TransitionConfirm(t *testing.T) {
	svc, repo, pub := setup(t)
	r := seed(t, repo, 1, 7, testDate, "10:00")

	resp, err := svc.Transition(context.Background(), r.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.NotNil(t, resp.StatusChangedAt)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeReservationConfirmed, pub.events[0].Type)
}

func TestService_TransitionTwiceIsInvalid(t *testing.T) {
	svc, repo, _ := setup(t)
	r := seed(t, repo, 1, 7, testDate, "10:00")
	ctx := context.Background()

	_, err := svc.Transition(ctx, r.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	_, err = svc.Transition(ctx, r.ID, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := svc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
}

func TestService_CancelFreesSlot(t *testing.T) {
	svc, repo, pub := setup(t)
	r := seed(t, repo, 1, 7, testDate, "10:00")
	ctx := context.Background()

	_, err := svc.Transition(ctx, r.ID, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, events.TypeReservationCancelled, pub.events[0].Type)

	// слот снова свободен
	seed(t, repo, 1, 8, testDate, "10:00")
}

func TestService_TransitionErrors(t *testing.T) {
	svc, repo, _ := setup(t)
	r := seed(t, repo, 1, 7, testDate, "10:00")
	ctx := context.Background()

	_, err := svc.Transition(ctx, r.ID, &models.UpdateStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Transition(ctx, r.ID, &models.UpdateStatusRequest{Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Transition(ctx, 999, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ConcurrentTransitionsOneWins(t *testing.T) {
	svc, repo, _ := setup(t)
	r := seed(t, repo, 1, 7, testDate, "10:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, status := range []string{"confirmed", "cancelled"} {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			_, errs[i] = svc.Transition(context.Background(), r.ID, &models.UpdateStatusRequest{Status: status})
		}(i, status)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestService_PublishFailureDoesNotFailTransition(t *testing.T) {
	svc, repo, pub := setup(t)
	pub.err = errors.New("broker down")
	r := seed(t, repo, 1, 7, testDate, "10:00")

	_, err := svc.Transition(context.Background(), r.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.NoError(t, err)
}

func TestService_ListByBusiness(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	seed(t, repo, 1, 7, testDate, "10:00")
	cancelled := seed(t, repo, 1, 7, testDate, "11:00")
	seed(t, repo, 1, 8, testDate.AddDate(0, 0, 1), "10:00")
	seed(t, repo, 2, 8, testDate, "10:00")
	_, err := repo.UpdateStatus(ctx, cancelled.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	all, err := svc.ListByBusiness(ctx, &models.GetBusinessReservationsRequest{BusinessID: 1})
	require.NoError(t, err)
	assert.Len(t, all.Reservations, 2)

	day, err := svc.ListByBusiness(ctx, &models.GetBusinessReservationsRequest{
		BusinessID:      1,
		StartDate:       &testDate,
		EndDate:         &testDate,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, day.Reservations, 2)
	assert.Equal(t, "10:00", day.Reservations[0].Time)
	assert.Equal(t, "11:00", day.Reservations[1].Time)

	onlyCancelled, err := svc.ListByBusiness(ctx, &models.GetBusinessReservationsRequest{BusinessID: 1, Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	require.Len(t, onlyCancelled.Reservations, 1)
	assert.Equal(t, cancelled.ID, onlyCancelled.Reservations[0].ID)

	_, err = svc.ListByBusiness(ctx, &models.GetBusinessReservationsRequest{BusinessID: 1, Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_ListByUser(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	seed(t, repo, 1, 7, testDate, "10:00")
	seed(t, repo, 2, 7, testDate, "10:00")
	seed(t, repo, 1, 8, testDate, "11:00")

	resp, err := svc.ListByUser(ctx, &models.GetUserReservationsRequest{UserID: 7})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	resp, err = svc.ListByUser(ctx, &models.GetUserReservationsRequest{UserID: 7, Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)
	assert.NotNil(t, resp.Reservations)
}
