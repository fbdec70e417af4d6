package catalog

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

// Repository репозиторий справочных данных: клиенты, автомобили,
// каталог услуг, сервисные центры и их ресурсы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр справочного репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCustomerByID получает клиента по ID
func (r *Repository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "phone", "loyalty_score").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerByID - build select query: %v", ErrBuildQuery, err)
	}

	var customer domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.LoyaltyScore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerByID - scan customer: %v", ErrScanRow, err)
	}

	return &customer, nil
}

// SearchCustomers ищет клиентов по подстроке имени или телефона
// Пустой запрос возвращает пустой список
func (r *Repository) SearchCustomers(ctx context.Context, q string) ([]*domain.Customer, error) {
	if q == "" {
		return []*domain.Customer{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	pattern := "%" + q + "%"
	query, args, err := psqlbuilder.Select("id", "name", "phone", "loyalty_score").
		From("customers").
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchCustomers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Phone, &customer.LoyaltyScore); err != nil {
			return nil, fmt.Errorf("%w: SearchCustomers - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, &customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SearchCustomers - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// GetVehicleByID получает автомобиль по ID
func (r *Repository) GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "customer_id", "vin", "model").
		From("vehicles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleByID - build select query: %v", ErrBuildQuery, err)
	}

	var vehicle domain.Vehicle
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicle.ID,
		&vehicle.CustomerID,
		&vehicle.VIN,
		&vehicle.Model,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleByID - scan vehicle: %v", ErrScanRow, err)
	}

	return &vehicle, nil
}

// GetServiceTypeByID получает тип услуги по ID
func (r *Repository) GetServiceTypeByID(ctx context.Context, id int64) (*domain.ServiceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"required_skill_level",
		"required_bay_type",
	).
		From("service_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var serviceType domain.ServiceType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&serviceType.ID,
		&serviceType.Name,
		&serviceType.DurationMinutes,
		&serviceType.RequiredSkillLevel,
		&serviceType.RequiredBayType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceTypeByID - scan service type: %v", ErrScanRow, err)
	}

	return &serviceType, nil
}

// GetCenterByID получает сервисный центр по ID
func (r *Repository) GetCenterByID(ctx context.Context, id int64) (*domain.ServiceCenter, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "region").
		From("service_centers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCenterByID - build select query: %v", ErrBuildQuery, err)
	}

	var center domain.ServiceCenter
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&center.ID,
		&center.Name,
		&center.Region,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCenterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCenterByID - scan center: %v", ErrScanRow, err)
	}

	return &center, nil
}

// QualifiedTechnicians возвращает техников центра с уровнем навыка не ниже
// требуемого. Порядок детерминирован (id ASC): от него зависит tie-break
// при выборе назначения в поисковом движке.
func (r *Repository) QualifiedTechnicians(ctx context.Context, centerID int64, minSkillLevel int) ([]domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "skill_level", "center_id").
		From("technicians").
		Where(squirrel.Eq{"center_id": centerID}).
		Where(squirrel.GtOrEq{"skill_level": minSkillLevel}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: QualifiedTechnicians - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QualifiedTechnicians - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	technicians := make([]domain.Technician, 0)
	for rows.Next() {
		var tech domain.Technician
		if err := rows.Scan(&tech.ID, &tech.Name, &tech.SkillLevel, &tech.CenterID); err != nil {
			return nil, fmt.Errorf("%w: QualifiedTechnicians - scan row: %v", ErrScanRow, err)
		}
		technicians = append(technicians, tech)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: QualifiedTechnicians - rows error: %v", ErrScanRow, err)
	}

	return technicians, nil
}

// QualifiedBays возвращает посты центра требуемой категории,
// порядок детерминирован (id ASC)
func (r *Repository) QualifiedBays(ctx context.Context, centerID int64, bayType domain.BayType) ([]domain.ServiceBay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "bay_type", "center_id").
		From("service_bays").
		Where(squirrel.Eq{
			"center_id": centerID,
			"bay_type":  bayType,
		}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: QualifiedBays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: QualifiedBays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bays := make([]domain.ServiceBay, 0)
	for rows.Next() {
		var bay domain.ServiceBay
		if err := rows.Scan(&bay.ID, &bay.Name, &bay.Type, &bay.CenterID); err != nil {
			return nil, fmt.Errorf("%w: QualifiedBays - scan row: %v", ErrScanRow, err)
		}
		bays = append(bays, bay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: QualifiedBays - rows error: %v", ErrScanRow, err)
	}

	return bays, nil
}
