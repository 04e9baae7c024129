// Package workflow drives a single customer's date -> time -> details -> submit flow.
// Nothing is written to the reservation store before Submit, so a controller
// can be dropped at any step.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrNotReady is returned by Submit when no slot is chosen or a submission is in flight
var ErrNotReady = errors.New("workflow: no slot selected for submission")

// SlotsFinder resolves the slots of one business day
type SlotsFinder interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// ReservationCreator persists a new pending reservation
type ReservationCreator interface {
	Execute(ctx context.Context, req *create_reservation.Request) (*create_reservation.Response, error)
}

// TimeProvider supplies "today" for past-date checks
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// CustomerDetails collected on the confirmation form
type CustomerDetails struct {
	ServiceID int64
	Name      string
	Email     string
}

// Controller holds one customer's booking flow for one business.
// Methods are safe for concurrent use; a create call runs without holding the lock
// so State stays readable while submitting.
type Controller struct {
	mu sync.Mutex

	businessID   int64
	userID       int64
	locale       string
	finder       SlotsFinder
	creator      ReservationCreator
	timeProvider TimeProvider

	month     time.Time
	selection Selection
}

// NewController starts a flow showing the current month with nothing selected
func NewController(businessID, userID int64, locale string, finder SlotsFinder, creator ReservationCreator) *Controller {
	return newController(businessID, userID, locale, finder, creator, realTimeProvider{})
}

func newController(businessID, userID int64, locale string, finder SlotsFinder, creator ReservationCreator, tp TimeProvider) *Controller {
	return &Controller{
		businessID:   businessID,
		userID:       userID,
		locale:       calendar.NormalizeLocale(locale),
		finder:       finder,
		creator:      creator,
		timeProvider: tp,
		month:        calendar.FirstOfMonth(tp.Now()),
		selection:    NoSelection{},
	}
}

// BusinessID of the business being booked
func (c *Controller) BusinessID() int64 {
	return c.businessID
}

// UserID of the customer owning the flow
func (c *Controller) UserID() int64 {
	return c.userID
}

// Selection returns the current selection value
func (c *Controller) Selection() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// State returns the current step
func (c *Controller) State() State {
	return c.Selection().State()
}

// Month returns the first day of the displayed month
func (c *Controller) Month() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.month
}

// Grid builds the displayed month
func (c *Controller) Grid() (*domain.MonthGrid, error) {
	c.mu.Lock()
	month := c.month
	c.mu.Unlock()
	return calendar.BuildMonthGrid(month, c.timeProvider.Now(), c.locale)
}

// NextMonth moves the displayed month forward; the selection is untouched
func (c *Controller) NextMonth() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = calendar.NextMonth(c.month)
	return c.month
}

// PrevMonth moves the displayed month back; the selection is untouched
func (c *Controller) PrevMonth() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.month = calendar.PrevMonth(c.month)
	return c.month
}

// SelectDate chooses a date and loads its slots, dropping any chosen time.
// Past dates, and calls made while submitting or after submission, are no-ops
// reported by a false result.
func (c *Controller) SelectDate(ctx context.Context, date time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.selection.(type) {
	case Submitting, Submitted:
		return false, nil
	}
	if date.IsZero() || domain.IsPastDay(date, c.timeProvider.Now()) {
		return false, nil
	}

	day := domain.DateOnly(date)
	slots, err := c.fetchSlots(ctx, day)
	if err != nil {
		return false, err
	}

	c.selection = DateChosen{Date: day, Slots: slots}
	return true, nil
}

// SelectTime chooses an available slot of the chosen date.
// Unknown or taken slots, or a missing date, leave the selection unchanged.
func (c *Controller) SelectTime(t types.TimeString) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		date  time.Time
		slots []domain.TimeSlot
	)
	switch sel := c.selection.(type) {
	case DateChosen:
		date, slots = sel.Date, sel.Slots
	case SlotChosen:
		date, slots = sel.Date, sel.Slots
	default:
		return false
	}

	if !availability.IsAvailable(slots, t) {
		return false
	}

	c.selection = SlotChosen{Date: date, Time: t, Slots: slots}
	return true
}

// Submit creates the reservation for the chosen slot.
// On a slot conflict the flow returns to time selection with refreshed slots;
// on any other failure the chosen slot is kept so the form can be resubmitted.
func (c *Controller) Submit(ctx context.Context, details CustomerDetails) (*domain.Reservation, error) {
	c.mu.Lock()
	chosen, ok := c.selection.(SlotChosen)
	if !ok {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	c.selection = Submitting{Date: chosen.Date, Time: chosen.Time}
	c.mu.Unlock()

	resp, err := c.creator.Execute(ctx, &create_reservation.Request{
		BusinessID:    c.businessID,
		ServiceID:     details.ServiceID,
		UserID:        c.userID,
		Date:          chosen.Date,
		Time:          chosen.Time,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		reservation := resp.ToDomain()
		c.selection = Submitted{Reservation: reservation}
		return reservation, nil
	}

	if !errors.Is(err, domain.ErrSlotConflict) {
		c.selection = chosen
		return nil, err
	}

	slots, fetchErr := c.fetchSlots(ctx, chosen.Date)
	if fetchErr != nil {
		slots = markTaken(chosen.Slots, chosen.Time)
	}
	c.selection = DateChosen{Date: chosen.Date, Slots: slots}
	return nil, err
}

func (c *Controller) fetchSlots(ctx context.Context, date time.Time) ([]domain.TimeSlot, error) {
	resp, err := c.finder.Execute(ctx, &get_available_slots.Request{BusinessID: c.businessID, Date: date})
	if err != nil {
		return nil, fmt.Errorf("workflow: load slots for %s: %w", date.Format(domain.DateFormat), err)
	}
	return resp.Slots, nil
}

// markTaken copies slots with t flagged unavailable
func markTaken(slots []domain.TimeSlot, t types.TimeString) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].Time == t {
			out[i].Available = false
		}
	}
	return out
}
