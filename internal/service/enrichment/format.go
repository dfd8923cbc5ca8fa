package enrichment

import (
	"fmt"
	"time"
)

// Sentinel-строки для отображения
const (
	NoLocationDisplay = "Адрес не указан"
	OverdueDisplay    = "Просрочено"
)

// FormatLocation нормализует поле адреса в отображаемую строку
// Отсутствующий или пустой адрес заменяется явным sentinel-значением
func FormatLocation(location *string) string {
	if location == nil || *location == "" {
		return NoLocationDisplay
	}
	return *location
}

// FormatTimeUntil возвращает грубую оценку времени до начала услуги:
// дни, иначе часы, иначе минуты. Для прошедшей даты возвращает
// sentinel "Просрочено", для неназначенной - пустую строку.
func FormatTimeUntil(scheduledDate *time.Time, now time.Time) string {
	if scheduledDate == nil {
		return ""
	}

	until := scheduledDate.Sub(now)
	if until < 0 {
		return OverdueDisplay
	}

	switch {
	case until >= 24*time.Hour:
		return fmt.Sprintf("через %d дн.", int(until.Hours())/24)
	case until >= time.Hour:
		return fmt.Sprintf("через %d ч.", int(until.Hours()))
	default:
		return fmt.Sprintf("через %d мин.", int(until.Minutes()))
	}
}
