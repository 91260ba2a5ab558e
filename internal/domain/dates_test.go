package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateWindow(t *testing.T) {
	// Понедельник
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)

	window := DateWindow(now, 3, false)
	require.Len(t, window, 3)
	assert.Equal(t, date(2025, 3, 10), window[0])
	assert.Equal(t, date(2025, 3, 11), window[1])
	assert.Equal(t, date(2025, 3, 12), window[2])
}

func TestDateWindowSkipWeekends(t *testing.T) {
	// Пятница: суббота и воскресенье выпадают, окно тянется до вторника
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	window := DateWindow(now, 3, true)
	require.Len(t, window, 3)
	assert.Equal(t, date(2025, 3, 14), window[0])
	assert.Equal(t, date(2025, 3, 17), window[1])
	assert.Equal(t, date(2025, 3, 18), window[2])
}

func TestDateWindowStartsOnWeekend(t *testing.T) {
	// Суббота всегда остаётся в окне как "сегодня"
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	window := DateWindow(now, 3, true)
	require.Len(t, window, 3)
	assert.Equal(t, date(2025, 3, 15), window[0])
	assert.Equal(t, date(2025, 3, 17), window[1])
	assert.Equal(t, date(2025, 3, 18), window[2])
}

func TestInWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)
	window := DateWindow(now, 3, false)

	assert.True(t, InWindow(date(2025, 3, 10), window))
	assert.True(t, InWindow(date(2025, 3, 12), window))
	assert.False(t, InWindow(date(2025, 3, 13), window))
	assert.False(t, InWindow(date(2025, 3, 9), window))

	// Время внутри дня не мешает попаданию в окно
	assert.True(t, InWindow(time.Date(2025, 3, 11, 17, 45, 0, 0, time.UTC), window))
}

func TestInWindowAcrossTimezones(t *testing.T) {
	// Часы сервера в UTC+3, дата запроса распарсена как полночь UTC.
	// Окно сравнивается по календарным дням, а не по моментам времени.
	msk := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 3, 10, 10, 5, 0, 0, msk)
	window := DateWindow(now, 3, false)

	assert.True(t, InWindow(date(2025, 3, 10), window))
	assert.True(t, InWindow(date(2025, 3, 12), window))
	assert.False(t, InWindow(date(2025, 3, 13), window))

	// И наоборот: окно в UTC, дата в отрицательном смещении
	nyc := time.FixedZone("UTC-5", -5*60*60)
	utcWindow := DateWindow(time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC), 3, false)
	assert.True(t, InWindow(time.Date(2025, 3, 11, 0, 0, 0, 0, nyc), utcWindow))
	assert.False(t, InWindow(time.Date(2025, 3, 9, 0, 0, 0, 0, nyc), utcWindow))
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2025, 3, 10, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, date(2025, 3, 10), Midnight(ts))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	c := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
