package get_provider_dashboard

import (
	"time"

	bookingsModels "github.com/m04kA/SMC-ProviderBookingService/internal/service/bookings/models"
	getProviderDashboard "github.com/m04kA/SMC-ProviderBookingService/internal/usecase/get_provider_dashboard"
)

// ProviderStatsResponse аналитический снимок в HTTP ответе
type ProviderStatsResponse struct {
	TotalBookings      int `json:"totalBookings"`
	PendingRequests    int `json:"pendingRequests"`
	AcceptedBookings   int `json:"acceptedBookings"`
	InProgressBookings int `json:"inProgressBookings"`
	CompletedBookings  int `json:"completedBookings"`
	CancelledBookings  int `json:"cancelledBookings"`
	DeclinedBookings   int `json:"declinedBookings"`
	DisputedBookings   int `json:"disputedBookings"`

	TotalRevenue        float64 `json:"totalRevenue"`
	ExpectedRevenue     float64 `json:"expectedRevenue"`
	AverageBookingValue float64 `json:"averageBookingValue"`

	AcceptanceRate float64 `json:"acceptanceRate"`
	CompletionRate float64 `json:"completionRate"`

	BookingsThisWeek  int     `json:"bookingsThisWeek"`
	BookingsThisMonth int     `json:"bookingsThisMonth"`
	RevenueThisWeek   float64 `json:"revenueThisWeek"`
	RevenueThisMonth  float64 `json:"revenueThisMonth"`
}

// DashboardResponse HTTP response model
type DashboardResponse struct {
	ProviderID  string                                  `json:"providerId"`
	Stats       ProviderStatsResponse                   `json:"stats"`
	Bookings    []bookingsModels.EnrichedBookingResponse `json:"bookings"`
	GeneratedAt string                                  `json:"generatedAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getProviderDashboard.Response) *DashboardResponse {
	stats := resp.Stats

	return &DashboardResponse{
		ProviderID: resp.ProviderID,
		Stats: ProviderStatsResponse{
			TotalBookings:      stats.TotalBookings,
			PendingRequests:    stats.PendingRequests,
			AcceptedBookings:   stats.AcceptedBookings,
			InProgressBookings: stats.InProgressBookings,
			CompletedBookings:  stats.CompletedBookings,
			CancelledBookings:  stats.CancelledBookings,
			DeclinedBookings:   stats.DeclinedBookings,
			DisputedBookings:   stats.DisputedBookings,

			TotalRevenue:        stats.TotalRevenue,
			ExpectedRevenue:     stats.ExpectedRevenue,
			AverageBookingValue: stats.AverageBookingValue,

			AcceptanceRate: stats.AcceptanceRate,
			CompletionRate: stats.CompletionRate,

			BookingsThisWeek:  stats.BookingsThisWeek,
			BookingsThisMonth: stats.BookingsThisMonth,
			RevenueThisWeek:   stats.RevenueThisWeek,
			RevenueThisMonth:  stats.RevenueThisMonth,
		},
		Bookings:    bookingsModels.FromEnrichedBookingList(resp.Bookings).Bookings,
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
	}
}
