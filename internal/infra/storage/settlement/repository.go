package settlement

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

const table = "settlements"

var columns = []string{
	"id",
	"shop_id",
	"type",
	"amount",
	"booking_ids",
	"date_from",
	"date_to",
	"status",
	"created_at",
	"completed_at",
}

// Repository репозиторий взаиморасчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория взаиморасчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись взаиморасчета в статусе PENDING
func (r *Repository) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("shop_id", "type", "amount", "booking_ids", "date_from", "date_to", "status").
		Values(
			s.ShopID,
			s.Type,
			s.Amount,
			pq.Array(s.BookingIDs),
			domain.DateOnly(s.DateFrom),
			domain.DateOnly(s.DateTo),
			domain.SettlementStatePending,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt); err != nil {
		return nil, execError("Create - execute insert", err)
	}

	s.Status = domain.SettlementStatePending
	s.CreatedAt = createdAt.Time
	s.CompletedAt = nil

	return s, nil
}

// GetByID получает взаиморасчет по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Settlement, error) {
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

	s, err := scanSettlement(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan settlement: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByShop история взаиморасчетов салона, сначала новые
func (r *Repository) GetByShop(ctx context.Context, shopID int64) ([]*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, execError("GetByShop - execute query", err)
	}
	defer rows.Close()

	settlements := make([]*domain.Settlement, 0)
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByShop - scan row: %v", ErrScanRow, err)
		}
		settlements = append(settlements, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByShop - rows error: %v", ErrScanRow, err)
	}

	return settlements, nil
}

// Complete переводит взаиморасчет PENDING -> COMPLETED.
// Повторное подтверждение возвращает ErrNotPending, отсутствующий ID - ErrSettlementNotFound.
func (r *Repository) Complete(ctx context.Context, id int64, completedAt time.Time) (*domain.Settlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.SettlementStateCompleted).
		Set("completed_at", completedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.SettlementStatePending}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, execError("Complete - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotPending
	}

	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettlement(row rowScanner) (*domain.Settlement, error) {
	var s domain.Settlement
	var createdAt sql.NullTime
	var completedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.ShopID,
		&s.Type,
		&s.Amount,
		pq.Array(&s.BookingIDs),
		&s.DateFrom,
		&s.DateTo,
		&s.Status,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	s.DateFrom = domain.DateOnly(s.DateFrom)
	s.DateTo = domain.DateOnly(s.DateTo)
	s.CreatedAt = createdAt.Time
	if completedAt.Valid {
		t := completedAt.Time
		s.CompletedAt = &t
	}

	return &s, nil
}
