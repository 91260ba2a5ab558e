package broadcast

import (
	"sync"
)

// Event уведомление об изменении занятости слота.
// Occupant == nil означает, что слот освободился.
// Для одного слота события упорядочены; получатель обязан трактовать
// повторные и устаревшие события как идемпотентные no-op.
type Event struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	Occupant  *string `json:"occupant"`
}

// subscriberBuffer ёмкость очереди подписчика. Отстающий подписчик
// теряет события и навёрстывает их периодической сверкой, а не
// блокировкой пути записи.
const subscriberBuffer = 16

// Subscriber подписка одного клиента на события конкретной даты
type Subscriber struct {
	date string
	ch   chan Event
}

// Events канал событий подписчика. Закрывается при Unsubscribe.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Hub рассылает события изменения слотов подписчикам по датам.
// Рассылка fire-and-forget: публикация никогда не блокируется
// на медленном подписчике.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscriber]struct{}
}

// NewHub создает пустой хаб
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe регистрирует подписчика на события указанной даты
func (h *Hub) Subscribe(date string) *Subscriber {
	sub := &Subscriber{
		date: date,
		ch:   make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	set, ok := h.subs[date]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[date] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Unsubscribe снимает подписку и закрывает канал подписчика
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	set, ok := h.subs[sub.date]
	if ok {
		if _, present := set[sub]; present {
			delete(set, sub)
			close(sub.ch)
		}
		if len(set) == 0 {
			delete(h.subs, sub.date)
		}
	}
	h.mu.Unlock()
}

// Publish доставляет событие всем подписчикам даты.
// Возвращает число подписчиков, получивших событие.
func (h *Hub) Publish(event Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for sub := range h.subs[event.Date] {
		select {
		case sub.ch <- event:
			delivered++
		default:
			// Очередь переполнена - событие для этого подписчика
			// теряется, его догонит периодическая сверка
		}
	}

	return delivered
}

// SubscriberCount возвращает текущее число подписчиков по всем датам
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := 0
	for _, set := range h.subs {
		total += len(set)
	}
	return total
}
