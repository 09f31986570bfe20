package shop

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var barberColumns = []string{
	"id",
	"shop_id",
	"name",
	"default_start_hour",
	"default_end_hour",
	"weekly_schedule",
	"special_hours",
	"is_available",
	"is_active",
	"created_at",
	"updated_at",
}

// GetBarberByID получает барбера по ID.
// Внутри транзакции строка блокируется (FOR UPDATE): так параллельные резервирования
// одного барбера выстраиваются в очередь.
func (r *Repository) GetBarberByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberByID - build select query: %v", ErrBuildQuery, err)
	}

	barber, err := scanBarber(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarberByID - %v", ErrScanRow, err)
	}

	return barber, nil
}

// GetBarbersByShop получает всех барберов салона, упорядоченных по ID.
// Внутри транзакции строки блокируются в этом же порядке, что исключает deadlock
// между двумя резервированиями "любого барбера".
func (r *Repository) GetBarbersByShop(ctx context.Context, shopID int64) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(barberColumns...).
		From("barbers").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarbersByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBarbersByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBarbersByShop - %v", ErrScanRow, err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBarbersByShop - rows error: %v", ErrScanRow, err)
	}

	return barbers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarber(row rowScanner) (*domain.Barber, error) {
	var barber domain.Barber
	var weekly, special []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.ShopID,
		&barber.Name,
		&barber.DefaultStartHour,
		&barber.DefaultEndHour,
		&weekly,
		&special,
		&barber.IsAvailable,
		&barber.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(weekly) > 0 {
		if err := json.Unmarshal(weekly, &barber.WeeklySchedule); err != nil {
			return nil, fmt.Errorf("%w: weekly_schedule of barber id=%d: %v", ErrDecodeSchedule, barber.ID, err)
		}
	}
	if len(special) > 0 {
		if err := json.Unmarshal(special, &barber.SpecialHours); err != nil {
			return nil, fmt.Errorf("%w: special_hours of barber id=%d: %v", ErrDecodeSchedule, barber.ID, err)
		}
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}
