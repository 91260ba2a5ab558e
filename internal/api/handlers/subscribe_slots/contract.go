package subscribe_slots

import (
	"github.com/m04kA/SMC-TimeslotService/internal/infra/broadcast"
)

type SlotEventHub interface {
	Subscribe(date string) *broadcast.Subscriber
	Unsubscribe(sub *broadcast.Subscriber)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
