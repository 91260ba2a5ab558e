package get_slots

import (
	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	getSlots "github.com/m04kA/SMC-TimeslotService/internal/usecase/get_slots"
)

// SlotResponse HTTP representation of a single slot
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "09:15"
	Section   string  `json:"section"`   // "morning" | "afternoon"
	Status    string  `json:"status"`    // "past" | "current" | "future"
	Bookable  bool    `json:"bookable"`
	Occupant  *string `json:"occupant,omitempty"`
	Mine      bool    `json:"mine"`
}

// GetSlotsResponse HTTP response model
type GetSlotsResponse struct {
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *GetSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: s.StartTime.String(),
			Section:   string(s.Section),
			Status:    string(s.Status),
			Bookable:  s.Bookable,
			Occupant:  s.Occupant,
			Mine:      s.Mine,
		}
	}

	return &GetSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
