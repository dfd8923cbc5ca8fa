package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Publish(t *testing.T) {
	s := NewStore()

	published := s.Publish(Notification{
		Recipient: "provider-1",
		BookingID: 42,
		Kind:      KindBookingRequested,
		Message:   "Новый запрос на бронирование",
	})

	assert.NotEmpty(t, published.ID)
	assert.False(t, published.Read)
	assert.False(t, published.CreatedAt.IsZero())

	assert.Equal(t, 1, s.UnreadCount("provider-1"))
	assert.Equal(t, 0, s.UnreadCount("provider-2"))
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := NewStore()

	first := s.Publish(Notification{Recipient: "p", BookingID: 1, Kind: KindBookingRequested})
	second := s.Publish(Notification{Recipient: "p", BookingID: 2, Kind: KindBookingAccepted})

	list := s.List("p")
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

// List возвращает копии: мутация результата не влияет на хранилище
func TestStore_ListReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Publish(Notification{Recipient: "p", BookingID: 1, Kind: KindBookingRequested})

	list := s.List("p")
	list[0].Read = true

	assert.Equal(t, 1, s.UnreadCount("p"))
}

func TestStore_MarkRead(t *testing.T) {
	s := NewStore()
	n := s.Publish(Notification{Recipient: "p", BookingID: 1, Kind: KindBookingCompleted})
	s.Publish(Notification{Recipient: "p", BookingID: 2, Kind: KindBookingCancelled})

	assert.True(t, s.MarkRead("p", n.ID))
	assert.Equal(t, 1, s.UnreadCount("p"))

	// Повторная пометка и неизвестный ID возвращают false
	assert.False(t, s.MarkRead("p", n.ID))
	assert.False(t, s.MarkRead("p", "no-such-id"))
	assert.False(t, s.MarkRead("other", n.ID))
}

func TestStore_MarkAllRead(t *testing.T) {
	s := NewStore()
	s.Publish(Notification{Recipient: "p", BookingID: 1, Kind: KindBookingRequested})
	s.Publish(Notification{Recipient: "p", BookingID: 2, Kind: KindBookingRequested})
	s.Publish(Notification{Recipient: "other", BookingID: 3, Kind: KindBookingRequested})

	assert.Equal(t, 2, s.MarkAllRead("p"))
	assert.Equal(t, 0, s.UnreadCount("p"))

	// Чужие уведомления не затронуты
	assert.Equal(t, 1, s.UnreadCount("other"))

	// Повторный вызов ничего не помечает
	assert.Equal(t, 0, s.MarkAllRead("p"))
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	type event struct {
		recipient string
		unread    int
	}
	var events []event

	id := s.Subscribe(func(recipient string, unread int) {
		events = append(events, event{recipient, unread})
	})

	s.Publish(Notification{Recipient: "p", BookingID: 1, Kind: KindBookingRequested})
	n := s.Publish(Notification{Recipient: "p", BookingID: 2, Kind: KindBookingRequested})

	require.Len(t, events, 2)
	assert.Equal(t, event{"p", 1}, events[0])
	assert.Equal(t, event{"p", 2}, events[1])

	s.MarkRead("p", n.ID)
	require.Len(t, events, 3)
	assert.Equal(t, event{"p", 1}, events[2])

	// После отписки события не приходят
	s.Unsubscribe(id)
	s.Publish(Notification{Recipient: "p", BookingID: 3, Kind: KindBookingRequested})
	assert.Len(t, events, 3)
}
