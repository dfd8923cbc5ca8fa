package create_booking

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		ClientID:      "client-1",
		ProviderID:    "provider-1",
		RequestedDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
		wantOK bool
	}{
		{"valid minimal", func(r *Request) {}, true},
		{"missing client", func(r *Request) { r.ClientID = "" }, false},
		{"missing provider", func(r *Request) { r.ProviderID = "" }, false},
		{"client equals provider", func(r *Request) { r.ProviderID = r.ClientID }, false},
		{"zero date", func(r *Request) { r.RequestedDate = time.Time{} }, false},
		{"package without service", func(r *Request) { r.PackageID = ptr.Ptr(int64(20)) }, false},
		{"package with service", func(r *Request) {
			r.ServiceID = ptr.Ptr(int64(10))
			r.PackageID = ptr.Ptr(int64(20))
		}, true},
		{"notes too long", func(r *Request) {
			r.Notes = ptr.Ptr(strings.Repeat("a", domain.MaxNotesLength+1))
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(req)

			err := validateRequest(req)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	now := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)

	// Сравнение только по дате: сегодняшний день допустим даже если
	// время уже прошло
	assert.NoError(t, validateDate(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), now))
	assert.NoError(t, validateDate(time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC), now))
	assert.ErrorIs(t, validateDate(time.Date(2025, 10, 14, 23, 59, 0, 0, time.UTC), now), ErrInvalidDate)
}

func TestNormalizeLocation(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		for _, raw := range []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage(`""`), json.RawMessage(`"   "`)} {
			loc, err := normalizeLocation(raw)
			require.NoError(t, err)
			assert.Nil(t, loc)
		}
	})

	t.Run("plain string", func(t *testing.T) {
		loc, err := normalizeLocation(json.RawMessage(`"  Москва, ул. Ленина, 1  "`))
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, "Москва, ул. Ленина, 1", *loc)
	})

	t.Run("structured object", func(t *testing.T) {
		raw := json.RawMessage(`{"address":"ул. Ленина, 1","city":"Москва","postalCode":"101000","country":"Россия"}`)
		loc, err := normalizeLocation(raw)
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.Equal(t, "ул. Ленина, 1, Москва, 101000, Россия", *loc)
	})

	t.Run("structured object with empty fields", func(t *testing.T) {
		loc, err := normalizeLocation(json.RawMessage(`{"address":"","city":"  "}`))
		require.NoError(t, err)
		assert.Nil(t, loc)
	})

	t.Run("unexpected shape", func(t *testing.T) {
		_, err := normalizeLocation(json.RawMessage(`[1, 2, 3]`))
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})

	t.Run("too long", func(t *testing.T) {
		long := `"` + strings.Repeat("а", domain.MaxLocationLength+1) + `"`
		_, err := normalizeLocation(json.RawMessage(long))
		assert.ErrorIs(t, err, ErrInvalidLocation)
	})
}

func TestHasDuplicateRequest(t *testing.T) {
	serviceID := ptr.Ptr(int64(10))
	otherService := ptr.Ptr(int64(11))

	bookings := []*domain.Booking{
		{ClientID: "client-1", ServiceID: serviceID, Status: domain.StatusRequested},
		{ClientID: "client-1", ServiceID: otherService, Status: domain.StatusAccepted},
		{ClientID: "client-2", ServiceID: serviceID, Status: domain.StatusRequested},
	}

	// Дубликат - тот же клиент, та же услуга, открытый запрос
	assert.True(t, hasDuplicateRequest(bookings, "client-1", serviceID))

	// Другая услуга или другой клиент - не дубликат
	assert.False(t, hasDuplicateRequest(bookings, "client-1", ptr.Ptr(int64(99))))
	assert.False(t, hasDuplicateRequest(bookings, "client-3", serviceID))

	// Принятый запрос дубликатом не считается
	assert.False(t, hasDuplicateRequest(bookings, "client-1", otherService))

	// Запрос без услуги сравнивается только с такими же
	assert.False(t, hasDuplicateRequest(bookings, "client-1", nil))
	withNil := append(bookings, &domain.Booking{ClientID: "client-1", Status: domain.StatusRequested})
	assert.True(t, hasDuplicateRequest(withNil, "client-1", nil))
}
