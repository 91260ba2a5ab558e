package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TimeslotService/internal/domain"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/broadcast"
	"github.com/m04kA/SMC-TimeslotService/internal/infra/storage"
	"github.com/m04kA/SMC-TimeslotService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TimeslotService/internal/service/names"
	"github.com/m04kA/SMC-TimeslotService/pkg/keymutex"
	"github.com/m04kA/SMC-TimeslotService/pkg/metrics"
	"github.com/m04kA/SMC-TimeslotService/pkg/types"
)

// Service единственная точка изменения занятости слотов.
// Все мутации проходят через поключевую блокировку: проверка занятости
// и запись образуют одну атомарную секцию на ключ (дата, время), поэтому
// из N конкурентных попыток бронирования один и тот же слот получает
// ровно один победитель.
//
// Порядок успешной мутации фиксирован: запись в хранилище (write-then-ack),
// затем журнал (best effort), затем рассылка подписчикам. Рассылка никогда
// не выполняется до записи и никогда не блокирует путь мутации.
type Service struct {
	store        BookingStore
	audit        AuditLog
	hub          Broadcaster
	locker       SlotLocker
	sanitizer    NameSanitizer
	timeProvider TimeProvider
	logger       Logger
	metrics      *metrics.Metrics // может быть nil, если метрики выключены

	lockTimeout time.Duration
}

// NewService создает новый экземпляр сервиса синхронизации бронирований
func NewService(
	store BookingStore,
	audit AuditLog,
	hub Broadcaster,
	sanitizer NameSanitizer,
	lockTimeout time.Duration,
	logger Logger,
	m *metrics.Metrics,
) *Service {
	if lockTimeout <= 0 {
		lockTimeout = 5 * time.Second
	}
	return &Service{
		store:        store,
		audit:        audit,
		hub:          hub,
		locker:       keymutex.New(),
		sanitizer:    sanitizer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      m,
		lockTimeout:  lockTimeout,
	}
}

// Book бронирует слот.
// Возвращает ErrInvalidName, ErrSlotNotBookable, ErrSlotAlreadyBooked
// или ErrTimeout. Повторный вызов после невидимого клиенту успеха
// возвращает ErrSlotAlreadyBooked, а не второй успех.
func (s *Service) Book(ctx context.Context, req *models.BookRequest) (*models.BookingResponse, error) {
	s.logger.Info("Book: date=%s, time=%s, device=%s, kiosk=%v, admin=%v",
		req.Date.Format(domain.DateFormat), req.StartTime, req.DeviceID, req.Kiosk, req.IsAdmin)

	// 1. Санация имени - до любой записи и рассылки
	username, err := s.sanitizer.Sanitize(req.RawName)
	if err != nil {
		if errors.Is(err, names.ErrInvalidName) {
			s.logger.Warn("Book: rejected display name: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
		}
		s.logger.Error("Book: sanitizer failure: %v", err)
		return nil, fmt.Errorf("%w: sanitize: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	// 2. Временной статус: прошедший слот доступен только администратору
	status := domain.StatusAt(req.Date, req.StartTime, now)
	if status == domain.StatusPast && !req.IsAdmin {
		s.logger.Warn("Book: past slot %s %s rejected for non-admin",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotNotBookable
	}

	key := domain.SlotKey(req.Date, req.StartTime)

	// 3. Поключевая блокировка с ограниченным ожиданием
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	if err := s.locker.Lock(lockCtx, key); err != nil {
		s.logger.Warn("Book: lock timeout for key=%s", key)
		return nil, fmt.Errorf("%w: lock %s: %v", ErrTimeout, key, err)
	}
	defer s.locker.Unlock(key)

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		Date:      domain.Midnight(req.Date),
		StartTime: req.StartTime,
		Username:  username,
		DeviceID:  req.DeviceID,
		Kiosk:     req.Kiosk,
		CreatedAt: now,
	}

	// 4. Запись в хранилище до подтверждения клиенту
	if err := s.store.Create(ctx, booking); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Warn("Book: slot %s already booked", key)
			if s.metrics != nil {
				s.metrics.BookingConflictsTotal.Inc()
			}
			return nil, ErrSlotAlreadyBooked
		}
		s.logger.Error("Book: store error for key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: store create: %v", ErrInternal, err)
	}

	// 5. Журнал производный: его отказ не откатывает бронирование
	if err := s.audit.Append(booking, domain.ReasonBooked); err != nil {
		s.logger.Error("Book: audit append failed for key=%s: %v", key, err)
		if s.metrics != nil {
			s.metrics.AuditWriteFailures.Inc()
		}
	}

	// 6. Рассылка строго после записи
	s.publish(booking.Date, booking.StartTime, &booking.Username)

	if s.metrics != nil {
		s.metrics.BookingsCreatedTotal.Inc()
	}
	s.logger.Info("Book: committed booking id=%s key=%s user=%q", booking.ID, key, username)

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование.
// Возвращает ErrBookingNotFound, ErrNotOwner или ErrTimeout.
// Повторная отмена того же слота возвращает ErrBookingNotFound.
func (s *Service) Cancel(ctx context.Context, req *models.CancelRequest) error {
	key := domain.SlotKey(req.Date, req.StartTime)

	s.logger.Info("Cancel: key=%s, device=%s, admin=%v", key, req.DeviceID, req.IsAdmin)

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	if err := s.locker.Lock(lockCtx, key); err != nil {
		s.logger.Warn("Cancel: lock timeout for key=%s", key)
		return fmt.Errorf("%w: lock %s: %v", ErrTimeout, key, err)
	}
	defer s.locker.Unlock(key)

	booking, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("Cancel: no booking for key=%s", key)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: store error for key=%s: %v", key, err)
		return fmt.Errorf("%w: store get: %v", ErrInternal, err)
	}

	// Киосочные бронирования отменяет только администратор
	if booking.Kiosk && !req.IsAdmin {
		s.logger.Warn("Cancel: kiosk booking key=%s requires admin", key)
		return ErrNotOwner
	}

	if !booking.OwnedBy(req.DeviceID) && !req.IsAdmin {
		s.logger.Warn("Cancel: device=%s does not own key=%s", req.DeviceID, key)
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: store delete error for key=%s: %v", key, err)
		return fmt.Errorf("%w: store delete: %v", ErrInternal, err)
	}

	// Причину может выбирать только администратор ("completed" при
	// выгрузке завершённых слотов), для остальных она фиксирована
	reason := domain.ReasonCancelled
	if req.IsAdmin && req.Reason == domain.ReasonCompleted {
		reason = domain.ReasonCompleted
	}

	if err := s.audit.Append(booking, reason); err != nil {
		s.logger.Error("Cancel: audit append failed for key=%s: %v", key, err)
		if s.metrics != nil {
			s.metrics.AuditWriteFailures.Inc()
		}
	}

	s.publish(booking.Date, booking.StartTime, nil)

	if s.metrics != nil {
		s.metrics.BookingsCancelledTotal.Inc()
	}
	s.logger.Info("Cancel: removed booking id=%s key=%s reason=%s", booking.ID, key, reason)

	return nil
}

// ListBookings возвращает занятость всех слотов даты.
// Отсутствие бронирований - пустая карта, не ошибка.
func (s *Service) ListBookings(ctx context.Context, date time.Time) (models.Occupancy, error) {
	list, err := s.store.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListBookings: store error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: store list: %v", ErrInternal, err)
	}

	occupancy := make(models.Occupancy, len(list))
	for _, b := range list {
		occupancy[b.StartTime] = models.FromDomainBooking(b)
	}

	return occupancy, nil
}

// publish отправляет событие изменения слота подписчикам даты
func (s *Service) publish(date time.Time, start types.TimeString, occupant *string) {
	delivered := s.hub.Publish(broadcast.Event{
		Date:      date.Format(domain.DateFormat),
		StartTime: start.String(),
		Occupant:  occupant,
	})
	if s.metrics != nil && delivered > 0 {
		s.metrics.EventsBroadcastTotal.Add(float64(delivered))
	}
}
