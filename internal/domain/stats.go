package domain

import "time"

// ProviderStats represents an analytics snapshot over a provider's bookings.
// Снимок всегда пересчитывается заново от полной коллекции бронирований,
// никакого инкрементального состояния не хранится.
type ProviderStats struct {
	TotalBookings      int
	PendingRequests    int // status = requested
	AcceptedBookings   int
	InProgressBookings int
	CompletedBookings  int
	CancelledBookings  int
	DeclinedBookings   int
	DisputedBookings   int

	TotalRevenue        float64 // Сумма по завершённым бронированиям
	ExpectedRevenue     float64 // Сумма по принятым и выполняемым
	AverageBookingValue float64

	AcceptanceRate float64 // Процент 0-100
	CompletionRate float64 // Процент 0-100

	BookingsThisWeek  int
	BookingsThisMonth int
	RevenueThisWeek   float64
	RevenueThisMonth  float64
}

// HasActivity returns true if the provider has at least one booking
func (s *ProviderStats) HasActivity() bool {
	return s.TotalBookings > 0
}

// ComputeProviderStats computes a read-only analytics snapshot over the
// given booking collection. Pure function of (bookings, now).
//
// Семантика метрик:
//   - TotalRevenue: сумма цен завершённых бронирований
//   - ExpectedRevenue: сумма цен по статусам accepted и in_progress
//   - AcceptanceRate: accepted / (requested + accepted + declined) * 100
//   - CompletionRate: completed / accepted * 100
//   - Недельное окно начинается с воскресенья (день 0), месячное - с
//     первого числа текущего календарного месяца
func ComputeProviderStats(bookings []*Booking, now time.Time) ProviderStats {
	stats := ProviderStats{
		TotalBookings: len(bookings),
	}

	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalPrice float64

	for _, b := range bookings {
		totalPrice += b.Price

		switch b.Status {
		case StatusRequested:
			stats.PendingRequests++
		case StatusAccepted:
			stats.AcceptedBookings++
			stats.ExpectedRevenue += b.Price
		case StatusInProgress:
			stats.InProgressBookings++
			stats.ExpectedRevenue += b.Price
		case StatusCompleted:
			stats.CompletedBookings++
			stats.TotalRevenue += b.Price
		case StatusCancelled:
			stats.CancelledBookings++
		case StatusDeclined:
			stats.DeclinedBookings++
		case StatusDisputed:
			stats.DisputedBookings++
		}

		// Окна считаем по дате создания, а для выручки - по дате завершения
		if inWindow(b.CreatedAt, weekStart, now) {
			stats.BookingsThisWeek++
		}
		if inWindow(b.CreatedAt, monthStart, now) {
			stats.BookingsThisMonth++
		}
		if b.Status == StatusCompleted && b.CompletedDate != nil {
			if inWindow(*b.CompletedDate, weekStart, now) {
				stats.RevenueThisWeek += b.Price
			}
			if inWindow(*b.CompletedDate, monthStart, now) {
				stats.RevenueThisMonth += b.Price
			}
		}
	}

	// Защита от деления на ноль во всех производных метриках
	if stats.TotalBookings > 0 {
		stats.AverageBookingValue = totalPrice / float64(stats.TotalBookings)
	}

	decided := stats.PendingRequests + stats.AcceptedBookings + stats.DeclinedBookings
	if decided > 0 {
		stats.AcceptanceRate = float64(stats.AcceptedBookings) / float64(decided) * 100
	}

	if stats.AcceptedBookings > 0 {
		stats.CompletionRate = float64(stats.CompletedBookings) / float64(stats.AcceptedBookings) * 100
	}

	return stats
}

// startOfWeek возвращает полночь воскресенья текущей недели
func startOfWeek(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}

// inWindow проверяет, что момент попадает в полуинтервал [from, to]
func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
