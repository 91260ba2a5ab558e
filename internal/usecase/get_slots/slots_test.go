package get_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

func TestGenerateTimeSlots(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	slots := generateTimeSlots(day, now)

	// 12 утренних (09:00-12:00) + 16 дневных (14:00-18:00)
	require.Len(t, slots, 28)

	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:45"), slots[11].StartTime)
	assert.Equal(t, types.TimeString("14:00"), slots[12].StartTime)
	assert.Equal(t, types.TimeString("17:45"), slots[27].StartTime)

	for _, s := range slots {
		assert.False(t, s.StartTime == "12:00" || s.StartTime == "13:45",
			"lunch gap slot %s must not exist", s.StartTime)
	}

	assert.Equal(t, domain.SectionMorning, slots[11].Section)
	assert.Equal(t, domain.SectionAfternoon, slots[12].Section)
}

func TestGenerateTimeSlotsStatuses(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	// 10:05 - слот 09:45 закончился в 10:00, слот 10:00 идёт сейчас
	now := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)

	slots := generateTimeSlots(day, now)

	byStart := make(map[types.TimeString]domain.Slot, len(slots))
	for _, s := range slots {
		byStart[s.StartTime] = s
	}

	assert.Equal(t, domain.StatusPast, byStart["09:45"].Status)
	assert.Equal(t, domain.StatusCurrent, byStart["10:00"].Status)
	assert.Equal(t, domain.StatusFuture, byStart["10:15"].Status)
	assert.Equal(t, domain.StatusFuture, byStart["17:45"].Status)
}

func TestGenerateTimeSlotsAllPastForElapsedDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

	for _, s := range generateTimeSlots(day, now) {
		assert.Equal(t, domain.StatusPast, s.Status, "slot %s", s.StartTime)
	}
}
