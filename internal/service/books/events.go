package books

import (
	"sync"

	svc "booktrackr/internal/service"
)

const subscriberBuffer = 16

// EventService управляет подписчиками на события изменения книг
type EventService struct {
	subscribers map[chan svc.Event]struct{}
	mu          sync.RWMutex
}

// NewEventService создает новый экземпляр EventService
func NewEventService() *EventService {
	return &EventService{
		subscribers: make(map[chan svc.Event]struct{}),
	}
}

// Subscribe добавляет подписчика и возвращает буферизованный канал событий
func (s *EventService) Subscribe() chan svc.Event {
	ch := make(chan svc.Event, subscriberBuffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал
func (s *EventService) Unsubscribe(ch chan svc.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Publish отправляет событие всем подписчикам.
// Если канал подписчика переполнен, событие для него пропускается.
// Возвращает число подписчиков, получивших событие.
func (s *EventService) Publish(event svc.Event) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	delivered := 0
	for ch := range s.subscribers {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// Len возвращает текущее число подписчиков
func (s *EventService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
