package create_booking

import (
	"encoding/json"
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID      string          // Principal клиента
	ProviderID    string          // Principal провайдера
	ServiceID     *int64          // ID услуги в каталоге (опционально)
	PackageID     *int64          // ID пакета услуги (опционально)
	RequestedDate time.Time       // Желаемая дата выполнения
	Notes         *string         // Дополнительные заметки (опционально)
	Location      json.RawMessage // Адрес: строка или структурированный объект
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64      // ID созданного бронирования
	ClientID      string     // Principal клиента
	ProviderID    string     // Principal провайдера
	ServiceID     *int64     // ID услуги
	PackageID     *int64     // ID пакета
	Price         float64    // Цена на момент запроса
	RequestedDate time.Time  // Желаемая дата
	ScheduledDate *time.Time // Назначенная дата (при авто-принятии)
	Status        string     // Статус бронирования

	// Денормализованные данные
	ServiceName  string  // Название услуги
	ServicePrice float64 // Базовая цена услуги
	Notes        *string // Заметки
	Location     *string // Нормализованный адрес

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
