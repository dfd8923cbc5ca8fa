package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ProviderBookingService/internal/domain"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ProviderBookingService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
// Порядок должен совпадать с порядком сканирования в scanBooking
var bookingColumns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"package_id",
	"price",
	"requested_date",
	"scheduled_date",
	"completed_date",
	"service_name",
	"service_price",
	"notes",
	"location",
	"status",
	"decline_reason",
	"cancellation_reason",
	"dispute_reason",
	"disputed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"provider_id",
			"service_id",
			"package_id",
			"price",
			"requested_date",
			"scheduled_date",
			"service_name",
			"service_price",
			"notes",
			"location",
			"status",
		).
		Values(
			booking.ClientID,
			booking.ProviderID,
			booking.ServiceID,
			booking.PackageID,
			booking.Price,
			booking.RequestedDate,
			booking.ScheduledDate,
			booking.ServiceName,
			booking.ServicePrice,
			booking.Notes,
			booking.Location,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("requested_date DESC, id DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду по requested_date (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению терминальных бронирований (IncludeInactive)
//
// Внутри транзакции для конкретного периода добавляет FOR UPDATE
// (используется usecase создания бронирования для защиты от дублей)
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"requested_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"requested_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны терминальные - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": terminalStatusStrings()})
	}

	selectBuilder = selectBuilder.OrderBy("requested_date DESC, id DESC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Accept переводит бронирование requested -> accepted
// Опционально назначает дату выполнения
func (r *Repository) Accept(ctx context.Context, id int64, scheduledDate *time.Time) (*domain.Booking, error) {
	sets := map[string]interface{}{
		"status": domain.StatusAccepted,
	}
	if scheduledDate != nil {
		sets["scheduled_date"] = *scheduledDate
	}
	return r.applyTransition(ctx, "Accept", id, []domain.BookingStatus{domain.StatusRequested}, sets)
}

// Decline переводит бронирование requested -> declined с указанием причины
func (r *Repository) Decline(ctx context.Context, id int64, reason *string) (*domain.Booking, error) {
	return r.applyTransition(ctx, "Decline", id, []domain.BookingStatus{domain.StatusRequested}, map[string]interface{}{
		"status":         domain.StatusDeclined,
		"decline_reason": reason,
	})
}

// Start переводит бронирование accepted -> in_progress
func (r *Repository) Start(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.applyTransition(ctx, "Start", id, []domain.BookingStatus{domain.StatusAccepted}, map[string]interface{}{
		"status": domain.StatusInProgress,
	})
}

// Complete переводит бронирование in_progress -> completed
// Фиксирует дату завершения; если передана финальная цена, перезаписывает цену
func (r *Repository) Complete(ctx context.Context, id int64, finalPrice *float64) (*domain.Booking, error) {
	sets := map[string]interface{}{
		"status":         domain.StatusCompleted,
		"completed_date": squirrel.Expr("NOW()"),
	}
	if finalPrice != nil {
		sets["price"] = *finalPrice
	}
	return r.applyTransition(ctx, "Complete", id, []domain.BookingStatus{domain.StatusInProgress}, sets)
}

// Dispute переводит бронирование completed -> disputed с указанием причины
func (r *Repository) Dispute(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	return r.applyTransition(ctx, "Dispute", id, []domain.BookingStatus{domain.StatusCompleted}, map[string]interface{}{
		"status":         domain.StatusDisputed,
		"dispute_reason": reason,
		"disputed_at":    squirrel.Expr("NOW()"),
	})
}

// Cancel отменяет бронирование из любого нетерминального статуса
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) (*domain.Booking, error) {
	return r.applyTransition(ctx, "Cancel", id, domain.ActiveStatuses, map[string]interface{}{
		"status":              domain.StatusCancelled,
		"cancellation_reason": reason,
	})
}

// applyTransition выполняет guarded-обновление статуса:
// UPDATE применяется только если текущий статус входит в fromStatuses.
// Ноль затронутых строк означает либо отсутствие бронирования
// (ErrBookingNotFound), либо проигранную гонку за переход (ErrStatusConflict).
// Возвращает авторитетное состояние строки после обновления.
func (r *Repository) applyTransition(
	ctx context.Context,
	op string,
	id int64,
	fromStatuses []domain.BookingStatus,
	sets map[string]interface{},
) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(fromStatuses)}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", "))

	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Разводим "не найдено" и "статус уже изменился"
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan updated booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.PackageID,
		&booking.Price,
		&booking.RequestedDate,
		&booking.ScheduledDate,
		&booking.CompletedDate,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.Notes,
		&booking.Location,
		&booking.Status,
		&booking.DeclineReason,
		&booking.CancellationReason,
		&booking.DisputeReason,
		&booking.DisputedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// statusStrings конвертирует статусы в строки для SQL-аргументов
func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

// terminalStatusStrings список терминальных статусов для NOT IN фильтра
func terminalStatusStrings() []string {
	return statusStrings(domain.TerminalStatuses)
}
