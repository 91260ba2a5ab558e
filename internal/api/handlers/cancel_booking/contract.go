package cancel_booking

import (
	"context"

	cancelSlot "github.com/m04kA/SMC-TimeslotService/internal/usecase/cancel_slot"
)

type CancelSlotUseCase interface {
	Execute(ctx context.Context, req *cancelSlot.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
