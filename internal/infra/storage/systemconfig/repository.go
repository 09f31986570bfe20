package systemconfig

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

const (
	table = "system_config"

	// singletonID конфигурация платформы хранится одной строкой
	singletonID = 1
)

// Repository репозиторий глобальной конфигурации платформы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает текущую конфигурацию платформы
func (r *Repository) Get(ctx context.Context) (*domain.SystemConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"admin_commission_rate",
		"user_discount_rate",
		"max_cash_bookings_per_month",
		"is_payment_test_mode",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SystemConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.AdminCommissionRate,
		&cfg.UserDiscountRate,
		&cfg.MaxCashBookingsPerMonth,
		&cfg.IsPaymentTestMode,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert сохраняет конфигурацию платформы, создавая строку при первом вызове
func (r *Repository) Upsert(ctx context.Context, cfg domain.SystemConfig) (*domain.SystemConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"admin_commission_rate",
			"user_discount_rate",
			"max_cash_bookings_per_month",
			"is_payment_test_mode",
		).
		Values(
			singletonID,
			cfg.AdminCommissionRate,
			cfg.UserDiscountRate,
			cfg.MaxCashBookingsPerMonth,
			cfg.IsPaymentTestMode,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			admin_commission_rate = EXCLUDED.admin_commission_rate,
			user_discount_rate = EXCLUDED.user_discount_rate,
			max_cash_bookings_per_month = EXCLUDED.max_cash_bookings_per_month,
			is_payment_test_mode = EXCLUDED.is_payment_test_mode,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
