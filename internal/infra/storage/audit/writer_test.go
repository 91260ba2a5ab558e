package audit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
)

func TestAppendCreatesDailyFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	booking := &domain.Booking{
		ID:        "id-1",
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:15",
		Username:  "Алиса",
		DeviceID:  "dev-1",
		CreatedAt: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
	}

	require.NoError(t, w.Append(booking, domain.ReasonBooked))
	require.NoError(t, w.Append(booking, domain.ReasonCancelled))

	f, err := os.Open(filepath.Join(dir, "bookings_2025-03-10.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, header, rows[0])
	assert.Equal(t, "2025-03-10", rows[1][0])
	assert.Equal(t, "09:15", rows[1][1])
	assert.Equal(t, "Алиса", rows[1][2])
	assert.Equal(t, "booked", rows[1][6])
	assert.Equal(t, "no", rows[1][7])
	assert.Equal(t, "cancelled", rows[2][6])
}

func TestAppendSeparateFilePerDate(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	for _, day := range []int{10, 11} {
		booking := &domain.Booking{
			Date:      time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
			StartTime: "09:15",
			Username:  "Боб",
			Kiosk:     true,
			CreatedAt: time.Now(),
		}
		require.NoError(t, w.Append(booking, domain.ReasonBooked))
	}

	for _, name := range []string{"bookings_2025-03-10.csv", "bookings_2025-03-11.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestAppendKioskFlag(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	booking := &domain.Booking{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:15",
		Kiosk:     true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, w.Append(booking, domain.ReasonBooked))

	f, err := os.Open(filepath.Join(dir, "bookings_2025-03-10.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "yes", rows[1][7])
}
