package appointment

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

// Repository репозиторий записей на обслуживание и порожденных ими
// назначений ресурсов и задач снабжения
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись на обслуживание
// Вызывается только внутри транзакции бронирования
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"vehicle_id",
			"service_type_id",
			"center_id",
			"start_time",
			"end_time",
			"status",
			"is_emergency",
		).
		Values(
			appt.CustomerID,
			appt.VehicleID,
			appt.ServiceTypeID,
			appt.CenterID,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.IsEmergency,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись на обслуживание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"vehicle_id",
		"service_type_id",
		"center_id",
		"start_time",
		"end_time",
		"status",
		"is_emergency",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.VehicleID,
		&appt.ServiceTypeID,
		&appt.CenterID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.IsEmergency,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// CreateResourceAssignment сохраняет связку запись - техник - пост
func (r *Repository) CreateResourceAssignment(ctx context.Context, appointmentID, technicianID, bayID int64) (*domain.ResourceAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_resources").
		Columns("appointment_id", "technician_id", "bay_id").
		Values(appointmentID, technicianID, bayID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateResourceAssignment - build insert query: %v", ErrBuildQuery, err)
	}

	assignment := domain.ResourceAssignment{
		AppointmentID: appointmentID,
		TechnicianID:  technicianID,
		BayID:         bayID,
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&assignment.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateResourceAssignment - execute insert: %v", ErrExecQuery, err)
	}

	return &assignment, nil
}

// GetResourceAssignment получает назначение ресурсов для записи
func (r *Repository) GetResourceAssignment(ctx context.Context, appointmentID int64) (*domain.ResourceAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "appointment_id", "technician_id", "bay_id").
		From("appointment_resources").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceAssignment - build select query: %v", ErrBuildQuery, err)
	}

	var assignment domain.ResourceAssignment
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&assignment.ID,
		&assignment.AppointmentID,
		&assignment.TechnicianID,
		&assignment.BayID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetResourceAssignment - scan assignment: %v", ErrScanRow, err)
	}

	return &assignment, nil
}

// CreateProcurementTasks сохраняет пакет задач снабжения
// Пустой список не является ошибкой, запрос не выполняется
func (r *Repository) CreateProcurementTasks(ctx context.Context, tasks []*domain.ProcurementTask) error {
	if len(tasks) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("procurement_queue").
		Columns("appointment_id", "part_id", "needed_by", "status")
	for _, task := range tasks {
		insertBuilder = insertBuilder.Values(task.AppointmentID, task.PartID, task.NeededBy, task.Status)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateProcurementTasks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateProcurementTasks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetProcurementTasks получает задачи снабжения, привязанные к записи
func (r *Repository) GetProcurementTasks(ctx context.Context, appointmentID int64) ([]*domain.ProcurementTask, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"t.id",
		"t.appointment_id",
		"t.part_id",
		"p.part_name",
		"t.needed_by",
		"t.status",
		"t.created_at",
	).
		From("procurement_queue t").
		Join("parts_inventory p ON p.id = t.part_id").
		Where(squirrel.Eq{"t.appointment_id": appointmentID}).
		OrderBy("t.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProcurementTasks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProcurementTasks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tasks := make([]*domain.ProcurementTask, 0)
	for rows.Next() {
		var task domain.ProcurementTask
		var createdAt sql.NullTime

		err := rows.Scan(
			&task.ID,
			&task.AppointmentID,
			&task.PartID,
			&task.PartName,
			&task.NeededBy,
			&task.Status,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetProcurementTasks - scan row: %v", ErrScanRow, err)
		}

		task.CreatedAt = createdAt.Time
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetProcurementTasks - rows error: %v", ErrScanRow, err)
	}

	return tasks, nil
}
