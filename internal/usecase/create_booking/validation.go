package create_booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID == "" {
		return fmt.Errorf("%w: clientId is required", ErrInvalidInput)
	}

	if req.ProviderID == "" {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	if req.ClientID == req.ProviderID {
		return fmt.Errorf("%w: client and provider must differ", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.RequestedDate.IsZero() {
		return fmt.Errorf("%w: requestedDate is required", ErrInvalidInput)
	}

	// Пакет без услуги не имеет смысла
	if req.PackageID != nil && req.ServiceID == nil {
		return fmt.Errorf("%w: packageId requires serviceId", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что запрошенная дата не в прошлом
func validateDate(requestedDate time.Time, now time.Time) error {
	dateOnly := time.Date(requestedDate.Year(), requestedDate.Month(), requestedDate.Day(), 0, 0, 0, 0, requestedDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// structuredLocation структурированный адрес из запроса
type structuredLocation struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// normalizeLocation нормализует адрес произвольной формы в одну
// отображаемую строку. Принимает JSON-строку или структурированный
// объект; отсутствующий адрес превращается в nil.
func normalizeLocation(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	// Сначала пробуем как строку
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		trimmed := strings.TrimSpace(asString)
		if trimmed == "" {
			return nil, nil
		}
		if len(trimmed) > domain.MaxLocationLength {
			return nil, fmt.Errorf("%w: location exceeds %d characters", ErrInvalidLocation, domain.MaxLocationLength)
		}
		return &trimmed, nil
	}

	// Затем как структурированный объект
	var structured structuredLocation
	if err := json.Unmarshal(raw, &structured); err != nil {
		return nil, fmt.Errorf("%w: expected string or address object", ErrInvalidLocation)
	}

	parts := make([]string, 0, 5)
	for _, part := range []string{structured.Address, structured.City, structured.State, structured.PostalCode, structured.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}

	joined := strings.Join(parts, ", ")
	if len(joined) > domain.MaxLocationLength {
		return nil, fmt.Errorf("%w: location exceeds %d characters", ErrInvalidLocation, domain.MaxLocationLength)
	}
	return &joined, nil
}

// hasDuplicateRequest проверяет, есть ли у клиента уже открытый запрос
// к провайдеру на ту же услугу
func hasDuplicateRequest(bookings []*domain.Booking, clientID string, serviceID *int64) bool {
	for _, b := range bookings {
		if b.ClientID != clientID || b.Status != domain.StatusRequested {
			continue
		}
		if equalID(b.ServiceID, serviceID) {
			return true
		}
	}
	return false
}

// equalID сравнивает опциональные идентификаторы
func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
