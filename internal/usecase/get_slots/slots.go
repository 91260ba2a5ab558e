package get_slots

import (
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// generateTimeSlots генерирует канонический упорядоченный список слотов
// рабочего дня: 09:00-12:00 и 14:00-18:00 с шагом 15 минут, обеденный
// перерыв исключён. Вычисление чистое: результат полностью определяется
// парой (дата, текущий момент), побочных эффектов нет, пересчитывать
// можно на каждый запрос.
func generateTimeSlots(date time.Time, now time.Time) []domain.Slot {
	slots := make([]domain.Slot, 0, 28)

	// Утренняя секция: от начала дня до обеда
	slots = appendRange(slots, date, now,
		types.TimeString(domain.DayStart), types.TimeString(domain.LunchStart))

	// Дневная секция: от конца обеда до конца дня
	slots = appendRange(slots, date, now,
		types.TimeString(domain.LunchEnd), types.TimeString(domain.DayEnd))

	return slots
}

// appendRange добавляет слоты [from, to) с фиксированным шагом
func appendRange(slots []domain.Slot, date, now time.Time, from, to types.TimeString) []domain.Slot {
	current := from
	for current.IsBefore(to) {
		slots = append(slots, domain.Slot{
			Date:      date,
			StartTime: current,
			Section:   domain.SectionOf(current),
			Status:    domain.StatusAt(date, current, now),
		})

		next, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			// from/to - константы расписания, сюда попасть нельзя
			break
		}
		current = next
	}
	return slots
}
