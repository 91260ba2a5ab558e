package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

// header колонки журнала, совместимы с выгрузкой для администратора
var header = []string{"Date", "Time", "Booked By", "Device ID", "Booked At", "Updated At", "Reason", "Kiosk"}

// Writer ведёт поденный append-only CSV журнал событий бронирования
// (bookings_YYYY-MM-DD.csv). Журнал производный: его потеря или ошибка
// записи никогда не откатывает само бронирование.
type Writer struct {
	dir string

	mu sync.Mutex
}

// NewWriter создает журнал в указанной директории
func NewWriter(dir string) *Writer {
	if dir != "" && dir != "." {
		// Сам журнал не критичен, ошибка всплывёт при первом Append
		_ = os.MkdirAll(dir, 0o755)
	}
	return &Writer{dir: dir}
}

// Append дописывает событие по бронированию с указанной причиной
// (booked / cancelled / completed)
func (w *Writer) Append(booking *domain.Booking, reason string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	filename := filepath.Join(w.dir, fmt.Sprintf("bookings_%s.csv", booking.Date.Format(domain.DateFormat)))

	// Заголовок пишется только при создании файла
	_, statErr := os.Stat(filename)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrAppend, filename, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	if writeHeader {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("%w: write header: %v", ErrAppend, err)
		}
	}

	kiosk := "no"
	if booking.Kiosk {
		kiosk = "yes"
	}

	row := []string{
		booking.Date.Format(domain.DateFormat),
		booking.StartTime.String(),
		booking.Username,
		booking.DeviceID,
		booking.CreatedAt.Format(time.RFC3339),
		time.Now().Format(time.RFC3339),
		reason,
		kiosk,
	}

	if err := cw.Write(row); err != nil {
		return fmt.Errorf("%w: write row: %v", ErrAppend, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrAppend, err)
	}

	return nil
}
