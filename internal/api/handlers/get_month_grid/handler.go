package get_month_grid

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const msgInvalidMonth = "некорректный формат месяца, ожидается YYYY-MM"

type Handler struct {
	timeProvider  TimeProvider
	defaultLocale string
	logger        Logger
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

func NewHandler(defaultLocale string, logger Logger) *Handler {
	return &Handler{
		timeProvider:  realTimeProvider{},
		defaultLocale: calendar.NormalizeLocale(defaultLocale),
		logger:        logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: month (YYYY-MM, по умолчанию текущий), locale (en|fr, иначе Accept-Language)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.timeProvider.Now()

	month := now
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		parsed, err := calendar.ParseMonth(monthStr, now.Location())
		if err != nil {
			h.logger.Warn("GET /calendar - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
		month = parsed
	}

	locale := ResolveLocale(r, h.defaultLocale)

	grid, err := calendar.BuildMonthGrid(month, now, locale)
	if err != nil {
		h.logger.Error("GET /calendar - Failed to build grid: month=%s, error=%v", month.Format(domain.MonthFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendar - Grid built: month=%s, locale=%s, weeks=%d", month.Format(domain.MonthFormat), locale, len(grid.Weeks))
	handlers.RespondJSON(w, http.StatusOK, FromDomainGrid(grid))
}

// ResolveLocale берёт locale из query, затем первый язык Accept-Language, затем значение по умолчанию
func ResolveLocale(r *http.Request, fallback string) string {
	if locale := r.URL.Query().Get("locale"); locale != "" {
		return calendar.NormalizeLocale(locale)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return calendar.NormalizeLocale(firstLanguage(accept))
	}
	return fallback
}

func firstLanguage(accept string) string {
	for i, c := range accept {
		if c == ',' || c == ';' {
			return accept[:i]
		}
	}
	return accept
}
