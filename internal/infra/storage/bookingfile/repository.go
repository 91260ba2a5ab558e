package bookingfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// record формат записи бронирования в JSON файле
// Ключ карты - "YYYY-MM-DD_HH:MM"
type record struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	DeviceID string `json:"device_id"`
	BookedAt string `json:"booked_at"`
	Kiosk    bool   `json:"kiosk,omitempty"`
}

// Repository файловый репозиторий бронирований.
// Вся карта держится в памяти; каждая мутация атомарно переписывает
// JSON файл (temp + rename), чтобы сбой не оставил повреждённый файл.
type Repository struct {
	path string

	mu       sync.RWMutex
	bookings map[string]record
}

// NewRepository создает репозиторий и загружает существующие бронирования
func NewRepository(path string) (*Repository, error) {
	r := &Repository{
		path:     path,
		bookings: make(map[string]record),
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create dir: %v", ErrLoadFile, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFile, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &r.bookings); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFile, err)
		}
	}

	return r, nil
}

// Create сохраняет новое бронирование.
// Возвращает ErrDuplicateKey, если слот уже занят. Запись на диск
// выполняется до возврата; при ошибке записи изменение откатывается.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	key := booking.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[key]; exists {
		return ErrDuplicateKey
	}

	r.bookings[key] = record{
		ID:       booking.ID,
		Username: booking.Username,
		DeviceID: booking.DeviceID,
		BookedAt: booking.CreatedAt.Format(time.RFC3339),
		Kiosk:    booking.Kiosk,
	}

	if err := r.persistLocked(); err != nil {
		delete(r.bookings, key)
		return err
	}

	return nil
}

// Get возвращает бронирование по ключу слота
func (r *Repository) Get(ctx context.Context, key string) (*domain.Booking, error) {
	r.mu.RLock()
	rec, ok := r.bookings[key]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrBookingNotFound
	}

	return toDomain(key, rec)
}

// Delete удаляет бронирование по ключу слота.
// Запись на диск выполняется до возврата; при ошибке записи
// изменение откатывается.
func (r *Repository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.bookings[key]
	if !ok {
		return ErrBookingNotFound
	}

	delete(r.bookings, key)

	if err := r.persistLocked(); err != nil {
		r.bookings[key] = rec
		return err
	}

	return nil
}

// ListByDate возвращает все бронирования на указанную дату,
// отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	prefix := date.Format(domain.DateFormat) + "_"

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for key, rec := range r.bookings {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		booking, err := toDomain(key, rec)
		if err != nil {
			// Повреждённая запись не должна ломать всю выдачу
			continue
		}
		result = append(result, booking)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// persistLocked записывает карту бронирований на диск.
// Вызывается строго под мьютексом записи.
func (r *Repository) persistLocked() error {
	data, err := json.MarshalIndent(r.bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistFile, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".bookings-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", ErrPersistFile, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp: %v", ErrPersistFile, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync temp: %v", ErrPersistFile, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp: %v", ErrPersistFile, err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrPersistFile, err)
	}

	return nil
}

// toDomain восстанавливает доменную модель из ключа и записи файла
func toDomain(key string, rec record) (*domain.Booking, error) {
	dateStr, timeStr, ok := strings.Cut(key, "_")
	if !ok {
		return nil, fmt.Errorf("%w: malformed key %q", ErrLoadFile, key)
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed date in key %q: %v", ErrLoadFile, key, err)
	}

	start, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed time in key %q: %v", ErrLoadFile, key, err)
	}

	createdAt, err := time.Parse(time.RFC3339, rec.BookedAt)
	if err != nil {
		createdAt = time.Time{}
	}

	return &domain.Booking{
		ID:        rec.ID,
		Date:      date,
		StartTime: start,
		Username:  rec.Username,
		DeviceID:  rec.DeviceID,
		Kiosk:     rec.Kiosk,
		CreatedAt: createdAt,
	}, nil
}
