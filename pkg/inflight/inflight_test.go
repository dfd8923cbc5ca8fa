package inflight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_TryBegin(t *testing.T) {
	r := NewRegistry()
	key := Key{Operation: "accept", BookingID: 42}

	assert.True(t, r.TryBegin(key))
	assert.True(t, r.IsInProgress(key))

	// Повтор той же операции отклоняется
	assert.False(t, r.TryBegin(key))

	// Другая операция над тем же бронированием не блокируется
	assert.True(t, r.TryBegin(Key{Operation: "cancel", BookingID: 42}))

	// Та же операция над другим бронированием не блокируется
	assert.True(t, r.TryBegin(Key{Operation: "accept", BookingID: 43}))
}

func TestRegistry_End(t *testing.T) {
	r := NewRegistry()
	key := Key{Operation: "complete", BookingID: 7}

	assert.True(t, r.TryBegin(key))
	r.End(key)

	assert.False(t, r.IsInProgress(key))
	assert.True(t, r.TryBegin(key))
}

func TestRegistry_BusyForBooking(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.BusyForBooking(1))

	r.TryBegin(Key{Operation: "start", BookingID: 1})
	assert.True(t, r.BusyForBooking(1))
	assert.False(t, r.BusyForBooking(2))
}

// Из N конкурентных попыток одной операции выигрывает ровно одна
func TestRegistry_ConcurrentTryBegin(t *testing.T) {
	r := NewRegistry()
	key := Key{Operation: "accept", BookingID: 100}

	const attempts = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.TryBegin(key) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, won)
}
