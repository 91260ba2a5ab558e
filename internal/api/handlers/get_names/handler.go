package get_names

import (
	"net/http"

	"github.com/m04kA/SMC-TimeslotService/internal/api/handlers"
)

// GetNamesResponse HTTP response model
type GetNamesResponse struct {
	Names []string `json:"names"`
}

type Handler struct {
	names  NamesProvider
	logger Logger
}

func NewHandler(names NamesProvider, logger Logger) *Handler {
	return &Handler{
		names:  names,
		logger: logger,
	}
}

// Handle GET /api/v1/names
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	names := h.names.DisplayNames()
	if names == nil {
		names = []string{}
	}

	handlers.RespondJSON(w, http.StatusOK, GetNamesResponse{Names: names})
}
