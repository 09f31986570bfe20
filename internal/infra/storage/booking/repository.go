package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"shop_id",
	"barber_id",
	"user_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"buffer_minutes",
	"service_names",
	"status",
	"type",
	"payment_method",
	"original_price",
	"discount_amount",
	"final_price",
	"admin_commission",
	"admin_net_revenue",
	"barber_net_revenue",
	"amount_collected_by",
	"settlement_status",
	"settlement_id",
	"booking_key",
	"is_rated",
	"notes",
	"cancellation_reason",
	"cancelled_at",
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

// Create создает новое бронирование вместе с финансовым снимком.
// Если в контексте передана активная транзакция, использует её.
// Повторная запись на тот же (barber_id, booking_date, start_time) возвращает ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	f := booking.Financials
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"shop_id",
			"barber_id",
			"user_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"buffer_minutes",
			"service_names",
			"status",
			"type",
			"payment_method",
			"original_price",
			"discount_amount",
			"final_price",
			"admin_commission",
			"admin_net_revenue",
			"barber_net_revenue",
			"amount_collected_by",
			"settlement_status",
			"booking_key",
			"notes",
		).
		Values(
			booking.ShopID,
			booking.BarberID,
			booking.UserID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.BufferMinutes,
			pq.Array(booking.ServiceNames),
			booking.Status,
			booking.Type,
			booking.PaymentMethod,
			f.OriginalPrice,
			f.DiscountAmount,
			f.FinalPrice,
			f.AdminCommission,
			f.AdminNetRevenue,
			f.BarberNetRevenue,
			f.AmountCollectedBy,
			domain.SettlementStatusPending,
			booking.BookingKey,
			booking.Notes,
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
		return nil, execError("Create - execute insert", err)
	}

	booking.SettlementStatus = domain.SettlementStatusPending
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) для смены статуса.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает историю бронирований пользователя.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	return r.query(ctx, "GetByUserID", selectBuilder)
}

// GetByShopWithFilter получает бронирования салона с фильтрацией по барберу, периоду и статусу.
// Для одной даты сортирует по времени начала, иначе сначала новые.
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	if filter.BarberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"barber_id": *filter.BarberID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	return r.query(ctx, "GetByShopWithFilter", selectBuilder)
}

// GetBarberBookings неотмененные бронирования барберов в диапазоне дат (включительно).
// Используется проверкой доступности: диапазон всегда захватывает соседние сутки.
func (r *Repository) GetBarberBookings(ctx context.Context, barberIDs []int64, from, to time.Time) ([]*domain.Booking, error) {
	if len(barberIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"barber_id": barberIDs}).
		Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(to)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("booking_date ASC", "start_time ASC")

	return r.query(ctx, "GetBarberBookings", selectBuilder)
}

// CountCashBookings количество неотмененных бронирований пользователя за наличные в диапазоне дат
func (r *Repository) CountCashBookings(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"payment_method": domain.PaymentCash}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"booking_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(to)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCashBookings - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, execError("CountCashBookings - execute query", err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execSingle(ctx, "Cancel", query, args)
}

// GetEligibleForSettlement завершенные бронирования со статусом взаиморасчета PENDING.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельный расчет их не захватил.
func (r *Repository) GetEligibleForSettlement(ctx context.Context, filter domain.EligibleBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.Eq{"settlement_status": domain.SettlementStatusPending}).
		OrderBy("shop_id ASC", "id ASC")

	if filter.ShopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if len(filter.BookingIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": filter.BookingIDs})
	}
	if filter.CutoffDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": domain.DateOnly(*filter.CutoffDate)})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.query(ctx, "GetEligibleForSettlement", selectBuilder)
}

// MarkSettled переводит бронирования PENDING -> SETTLED и проставляет settlement_id.
// Обновляются только строки, которые все еще подходят под взаиморасчет;
// вызывающий сравнивает количество обновленных строк с ожидаемым.
func (r *Repository) MarkSettled(ctx context.Context, bookingIDs []int64, settlementID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("settlement_status", domain.SettlementStatusSettled).
		Set("settlement_id", settlementID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingIDs}).
		Where(squirrel.Eq{"status": domain.StatusCompleted}).
		Where(squirrel.Eq{"settlement_status": domain.SettlementStatusPending}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSettled - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, execError("MarkSettled - execute update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkSettled - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) execSingle(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return execError(op+" - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError(op+" - execute query", err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, execError(op+" - rows error", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке columns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	f := &booking.Financials

	err := row.Scan(
		&booking.ID,
		&booking.ShopID,
		&booking.BarberID,
		&booking.UserID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.BufferMinutes,
		pq.Array(&booking.ServiceNames),
		&booking.Status,
		&booking.Type,
		&booking.PaymentMethod,
		&f.OriginalPrice,
		&f.DiscountAmount,
		&f.FinalPrice,
		&f.AdminCommission,
		&f.AdminNetRevenue,
		&f.BarberNetRevenue,
		&f.AmountCollectedBy,
		&booking.SettlementStatus,
		&booking.SettlementID,
		&booking.BookingKey,
		&booking.IsRated,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate = domain.DateOnly(booking.BookingDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
