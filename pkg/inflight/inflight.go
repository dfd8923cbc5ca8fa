package inflight

import "sync"

// Operation тип операции над бронированием
type Operation string

// Key составной ключ (операция, бронирование)
// Типизированный ключ вместо строковой конкатенации вида "accept-42"
// исключает коллизии и опечатки в именах операций
type Key struct {
	Operation Operation
	BookingID int64
}

// Registry потокобезопасный реестр выполняющихся операций
// Вторая попытка начать ту же операцию над тем же бронированием
// отклоняется, пока первая не завершится
type Registry struct {
	mu         sync.Mutex
	inProgress map[Key]struct{}
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		inProgress: make(map[Key]struct{}),
	}
}

// TryBegin атомарно отмечает операцию как выполняющуюся.
// Возвращает false, если такая операция уже в полёте.
func (r *Registry) TryBegin(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, busy := r.inProgress[key]; busy {
		return false
	}
	r.inProgress[key] = struct{}{}
	return true
}

// End снимает отметку о выполнении операции
// Вызывается и при успехе, и при ошибке
func (r *Registry) End(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inProgress, key)
}

// IsInProgress проверяет, выполняется ли операция сейчас
func (r *Registry) IsInProgress(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, busy := r.inProgress[key]
	return busy
}

// BusyForBooking проверяет, выполняется ли над бронированием хоть какая-то операция
func (r *Registry) BusyForBooking(bookingID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.inProgress {
		if key.BookingID == bookingID {
			return true
		}
	}
	return false
}
