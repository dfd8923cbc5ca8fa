package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind тип уведомления
type Kind string

const (
	KindBookingRequested Kind = "booking_requested"
	KindBookingAccepted  Kind = "booking_accepted"
	KindBookingDeclined  Kind = "booking_declined"
	KindBookingStarted   Kind = "booking_started"
	KindBookingCompleted Kind = "booking_completed"
	KindBookingDisputed  Kind = "booking_disputed"
	KindBookingCancelled Kind = "booking_cancelled"
)

// Notification уведомление о событии жизненного цикла бронирования
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"` // Principal получателя
	BookingID int64     `json:"bookingId"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscriber callback, вызываемый при изменении числа непрочитанных
// уведомлений получателя
type Subscriber func(recipient string, unread int)

// Store процессно-локальное хранилище уведомлений с явным контрактом
// подписки. Создается один раз в main и передается по ссылке всем,
// кому нужны уведомления - никаких синглтонов уровня пакета.
type Store struct {
	mu          sync.Mutex
	byRecipient map[string][]*Notification
	subscribers map[int64]Subscriber
	nextSubID   int64
}

// NewStore создает пустое хранилище уведомлений
func NewStore() *Store {
	return &Store{
		byRecipient: make(map[string][]*Notification),
		subscribers: make(map[int64]Subscriber),
	}
}

// Publish добавляет уведомление и оповещает подписчиков о новом
// количестве непрочитанных у получателя
func (s *Store) Publish(n Notification) Notification {
	s.mu.Lock()

	n.ID = uuid.NewString()
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	stored := n
	s.byRecipient[n.Recipient] = append(s.byRecipient[n.Recipient], &stored)

	unread := s.unreadLocked(n.Recipient)
	subscribers := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	// Callback-и зовем вне мьютекса: подписчик может обратиться к хранилищу
	for _, fn := range subscribers {
		fn(n.Recipient, unread)
	}

	return stored
}

// Subscribe регистрирует подписчика и возвращает его идентификатор
// для последующего Unsubscribe
func (s *Store) Subscribe(fn Subscriber) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	s.subscribers[s.nextSubID] = fn
	return s.nextSubID
}

// Unsubscribe удаляет подписчика
func (s *Store) Unsubscribe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, id)
}

// List возвращает копии уведомлений получателя (сначала новые)
func (s *Store) List(recipient string) []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.byRecipient[recipient]
	result := make([]Notification, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		result = append(result, *stored[i])
	}
	return result
}

// UnreadCount возвращает число непрочитанных уведомлений получателя
func (s *Store) UnreadCount(recipient string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadLocked(recipient)
}

// MarkRead помечает одно уведомление прочитанным
// Возвращает false, если уведомление не найдено
func (s *Store) MarkRead(recipient, notificationID string) bool {
	s.mu.Lock()

	marked := false
	for _, n := range s.byRecipient[recipient] {
		if n.ID == notificationID && !n.Read {
			n.Read = true
			marked = true
			break
		}
	}

	unread := s.unreadLocked(recipient)
	subscribers := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	if marked {
		for _, fn := range subscribers {
			fn(recipient, unread)
		}
	}

	return marked
}

// MarkAllRead помечает все уведомления получателя прочитанными
// Возвращает количество помеченных
func (s *Store) MarkAllRead(recipient string) int {
	s.mu.Lock()

	marked := 0
	for _, n := range s.byRecipient[recipient] {
		if !n.Read {
			n.Read = true
			marked++
		}
	}

	subscribers := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	if marked > 0 {
		for _, fn := range subscribers {
			fn(recipient, 0)
		}
	}

	return marked
}

func (s *Store) unreadLocked(recipient string) int {
	unread := 0
	for _, n := range s.byRecipient[recipient] {
		if !n.Read {
			unread++
		}
	}
	return unread
}

func (s *Store) snapshotSubscribersLocked() []Subscriber {
	result := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		result = append(result, fn)
	}
	return result
}
