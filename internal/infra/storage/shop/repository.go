package shop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var shopColumns = []string{
	"id",
	"owner_id",
	"name",
	"buffer_time",
	"min_booking_notice",
	"max_booking_notice",
	"auto_approve_bookings",
	"block_custom_bookings",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий салонов и барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetShopByID получает салон по ID
func (r *Repository) GetShopByID(ctx context.Context, id int64) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopByID - build select query: %v", ErrBuildQuery, err)
	}

	var shop domain.Shop
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.BufferTime,
		&shop.MinBookingNotice,
		&shop.MaxBookingNotice,
		&shop.AutoApproveBookings,
		&shop.BlockCustomBookings,
		&shop.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetShopByID - scan shop: %v", ErrScanRow, err)
	}

	shop.CreatedAt = createdAt.Time
	shop.UpdatedAt = updatedAt.Time

	return &shop, nil
}

// UpdateSettings обновляет политику бронирования салона
func (r *Repository) UpdateSettings(ctx context.Context, shopID int64, settings domain.ShopSettings) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shops").
		Set("buffer_time", settings.BufferTime).
		Set("min_booking_notice", settings.MinBookingNotice).
		Set("max_booking_notice", settings.MaxBookingNotice).
		Set("auto_approve_bookings", settings.AutoApproveBookings).
		Set("block_custom_bookings", settings.BlockCustomBookings).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shopID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSettings - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrShopNotFound
	}

	return r.GetShopByID(ctx, shopID)
}
