package domain

// Default operating window, used when a business has not configured its hours
const (
	DefaultStartHour = 9
	DefaultEndHour   = 19
)

// SlotGranularityMinutes width of one bookable slot
const SlotGranularityMinutes = 30

// Business validation constants
const (
	MinHour                = 0
	MaxHour                = 24
	MaxCustomerNameLength  = 200
	MaxCustomerEmailLength = 254
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// ActiveStatuses statuses that hold a slot
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
