package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/psqlbuilder"
)

// Repository репозиторий требований к деталям и складских остатков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Requirements возвращает список деталей, необходимых для типа услуги.
// Данные берутся из маппинга услуга-деталь; имя, ID и срок поставки
// приходят из шаблонной записи инвентаря, на которую ссылается маппинг.
func (r *Repository) Requirements(ctx context.Context, serviceTypeID int64) ([]domain.PartRequirement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.part_name",
		"m.quantity_required",
		"p.lead_time_days",
	).
		From("service_parts_mapping m").
		Join("parts_inventory p ON p.id = m.part_id").
		Where(squirrel.Eq{"m.service_type_id": serviceTypeID}).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Requirements - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Requirements - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requirements := make([]domain.PartRequirement, 0)
	for rows.Next() {
		var req domain.PartRequirement
		var quantity, leadTime sql.NullInt64

		if err := rows.Scan(&req.PartID, &req.PartName, &quantity, &leadTime); err != nil {
			return nil, fmt.Errorf("%w: Requirements - scan row: %v", ErrScanRow, err)
		}

		// NULL количество трактуем как одну деталь, NULL срок поставки -
		// как срок по умолчанию
		req.Quantity = 1
		if quantity.Valid {
			req.Quantity = int(quantity.Int64)
		}
		req.LeadTimeDays = domain.DefaultLeadTimeDays
		if leadTime.Valid {
			req.LeadTimeDays = int(leadTime.Int64)
		}

		requirements = append(requirements, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Requirements - rows error: %v", ErrScanRow, err)
	}

	return requirements, nil
}

// GetByCenterAndPart получает запись инвентаря центра по имени детали.
// Внутри транзакции строка блокируется через FOR UPDATE, чтобы конкурентное
// бронирование не списало те же детали.
func (r *Repository) GetByCenterAndPart(ctx context.Context, centerID int64, partName string) (*domain.PartInventory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"center_id",
		"part_name",
		"available_parts",
		"ordered_parts",
		"lead_time_days",
	).
		From("parts_inventory").
		Where(squirrel.Eq{
			"center_id": centerID,
			"part_name": partName,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenterAndPart - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.PartInventory
	var leadTime sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.CenterID,
		&record.PartName,
		&record.AvailableParts,
		&record.OrderedParts,
		&leadTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenterAndPart - scan record: %v", ErrScanRow, err)
	}

	record.LeadTimeDays = domain.DefaultLeadTimeDays
	if leadTime.Valid {
		record.LeadTimeDays = int(leadTime.Int64)
	}

	return &record, nil
}

// UpdateStock обновляет доступный и заказанный остаток записи инвентаря
func (r *Repository) UpdateStock(ctx context.Context, id int64, availableParts, orderedParts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parts_inventory").
		Set("available_parts", availableParts).
		Set("ordered_parts", orderedParts).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStock - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStock - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPartNotFound
	}

	return nil
}
