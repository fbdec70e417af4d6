package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/psqlbuilder"
)

// Repository хранилище занятости ресурсов: по одной записи с битовой маской
// на (вид ресурса, ресурс, дата)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetMask возвращает битовую маску занятости ресурса на дату.
// Отсутствие записи не является ошибкой: ресурс без записи полностью
// свободен, возвращается нулевая маска.
//
// Внутри транзакции строка блокируется через FOR UPDATE, чтобы конкурентное
// бронирование не смогло прочитать маску до фиксации текущего.
func (r *Repository) GetMask(ctx context.Context, kind domain.ResourceKind, resourceID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("bitmask").
		From("resource_schedule").
		Where(squirrel.Eq{
			"resource_kind": kind,
			"resource_id":   resourceID,
			"schedule_date": date.Format(domain.DateFormat),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetMask - build select query: %v", ErrBuildQuery, err)
	}

	var mask int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&mask)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetMask - scan bitmask: %v", ErrScanRow, err)
	}

	return mask, nil
}

// PutMask создает или перезаписывает запись занятости ресурса на дату.
// Идемпотентна, последняя запись по ключу выигрывает.
func (r *Repository) PutMask(ctx context.Context, kind domain.ResourceKind, resourceID int64, date time.Time, mask int) error {
	if mask < 0 || mask >= 1<<domain.TotalSlots {
		return fmt.Errorf("%w: PutMask - mask %b", ErrInvalidMask, mask)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_schedule").
		Columns("resource_kind", "resource_id", "schedule_date", "bitmask").
		Values(kind, resourceID, date.Format(domain.DateFormat), mask).
		Suffix("ON CONFLICT (resource_kind, resource_id, schedule_date) DO UPDATE SET bitmask = EXCLUDED.bitmask, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: PutMask - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: PutMask - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
