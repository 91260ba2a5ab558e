package get_dates

import (
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// GetDatesResponse HTTP response model
type GetDatesResponse struct {
	Dates []string `json:"dates"` // "2025-10-15", в порядке возрастания
}

type Handler struct {
	dates  DatesProvider
	logger Logger
}

func NewHandler(dates DatesProvider, logger Logger) *Handler {
	return &Handler{
		dates:  dates,
		logger: logger,
	}
}

// Handle GET /api/v1/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	window := h.dates.Window(r.Context())

	dates := make([]string, len(window))
	for i, d := range window {
		dates[i] = d.Format(domain.DateFormat)
	}

	handlers.RespondJSON(w, http.StatusOK, GetDatesResponse{Dates: dates})
}
