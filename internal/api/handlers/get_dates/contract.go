package get_dates

import (
	"context"
	"time"
)

type DatesProvider interface {
	Window(ctx context.Context) []time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
