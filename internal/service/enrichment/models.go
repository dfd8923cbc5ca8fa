package enrichment

import "github.com/m04kA/SMC-ProviderBookingService/internal/domain"

// EnrichedBooking бронирование, дополненное связанными данными из
// ProfileService и CatalogService, производными флагами действий и выручкой.
//
// Всегда воспроизводимо из Booking + текущего состояния коллабораторов и
// никогда не является источником истины. Каждое поле обогащения опционально
// и сопровождается явным флагом загрузки: при отказе коллаборатора поле
// остаётся nil, а флаг - false, вместо тихо устаревшего значения.
type EnrichedBooking struct {
	Booking domain.Booking // Копия, чтобы потребители не могли мутировать кеш

	// Профиль клиента
	ClientName      *string
	ClientPhone     *string
	ClientAvatarURL *string
	ClientLoaded    bool

	// Данные услуги из каталога
	ServiceName        *string
	ServiceDescription *string
	ServiceCategory    *string
	ServiceLoaded      bool

	// Данные пакета услуги
	PackageName   *string
	PackagePrice  *float64
	PackageLoaded bool

	// Производные флаги действий (пересчитываются на каждое чтение)
	CanAccept   bool
	CanDecline  bool
	CanStart    bool
	CanComplete bool
	CanDispute  bool
	IsOverdue   bool

	// Производная выручка
	EstimatedRevenue float64
	ActualRevenue    float64

	// Форматированные поля для отображения
	LocationDisplay  string
	TimeUntilService string
}
