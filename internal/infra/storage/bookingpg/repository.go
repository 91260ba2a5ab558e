package bookingpg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Repository репозиторий бронирований на PostgreSQL.
// Первичный ключ (booking_date, start_time) гарантирует уникальность
// бронирования на слот на уровне базы.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// ON CONFLICT DO NOTHING превращает гонку за слот в ErrDuplicateKey:
// из двух конкурентных вставок одну база отбрасывает.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_date",
			"start_time",
			"username",
			"device_id",
			"kiosk",
			"created_at",
		).
		Values(
			booking.ID,
			booking.Date,
			booking.StartTime.String(),
			booking.Username,
			booking.DeviceID,
			booking.Kiosk,
			booking.CreatedAt,
		).
		Suffix("ON CONFLICT (booking_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Create - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrDuplicateKey
	}

	return nil
}

// Get получает бронирование по ключу слота "YYYY-MM-DD_HH:MM"
func (r *Repository) Get(ctx context.Context, key string) (*domain.Booking, error) {
	date, start, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_date",
		"start_time",
		"username",
		"device_id",
		"kiosk",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date, "start_time": start.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// Delete удаляет бронирование по ключу слота
func (r *Repository) Delete(ctx context.Context, key string) error {
	date, start, err := splitKey(key)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"booking_date": date, "start_time": start.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListByDate получает все бронирования на указанную дату,
// отсортированные по времени начала
func (r *Repository) ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_date",
		"start_time",
		"username",
		"device_id",
		"kiosk",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"booking_date": domain.Midnight(date)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDate - iterate rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking читает строку результата в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		startTime string
		createdAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&startTime,
		&booking.Username,
		&booking.DeviceID,
		&booking.Kiosk,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan booking: %v", ErrScanRow, err)
	}

	booking.StartTime = types.TimeString(startTime)
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}

// splitKey разбирает ключ "YYYY-MM-DD_HH:MM" на дату и время
func splitKey(key string) (time.Time, types.TimeString, error) {
	if len(key) < len(domain.DateFormat)+2 {
		return time.Time{}, "", fmt.Errorf("%w: malformed slot key %q", ErrBuildQuery, key)
	}

	dateStr := key[:len(domain.DateFormat)]
	timeStr := key[len(domain.DateFormat)+1:]

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed date in slot key %q: %v", ErrBuildQuery, key, err)
	}

	start, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: malformed time in slot key %q: %v", ErrBuildQuery, key, err)
	}

	return date, start, nil
}
