package find_slot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

type fakeCatalog struct {
	serviceTypes map[int64]*domain.ServiceType
	centers      map[int64]*domain.ServiceCenter
	technicians  []domain.Technician
	bays         []domain.ServiceBay
}

func (f *fakeCatalog) GetServiceTypeByID(_ context.Context, id int64) (*domain.ServiceType, error) {
	if s, ok := f.serviceTypes[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceTypeNotFound
}

func (f *fakeCatalog) GetCenterByID(_ context.Context, id int64) (*domain.ServiceCenter, error) {
	if c, ok := f.centers[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCenterNotFound
}

func (f *fakeCatalog) QualifiedTechnicians(_ context.Context, _ int64, _ int) ([]domain.Technician, error) {
	return f.technicians, nil
}

func (f *fakeCatalog) QualifiedBays(_ context.Context, _ int64, _ domain.BayType) ([]domain.ServiceBay, error) {
	return f.bays, nil
}

type fakeEstimator struct {
	arrival time.Time
	err     error
}

func (f *fakeEstimator) EarliestStart(_ context.Context, _, _ int64) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.arrival, nil
}

type fakeEngine struct {
	assignment      *scheduler.Assignment
	err             error
	earliestAllowed time.Time
}

func (f *fakeEngine) FindEarliestAssignment(_ context.Context, earliestAllowed time.Time, _ int,
	_ []domain.Technician, _ []domain.ServiceBay) (*scheduler.Assignment, error) {
	f.earliestAllowed = earliestAllowed
	if f.err != nil {
		return nil, f.err
	}
	return f.assignment, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	testArrival = time.Date(2025, 10, 18, 8, 0, 0, 0, time.UTC)
	testSlot    = time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)
)

type fixture struct {
	catalog   *fakeCatalog
	estimator *fakeEstimator
	engine    *fakeEngine
	useCase   *UseCase
}

func newFixture() *fixture {
	catalog := &fakeCatalog{
		serviceTypes: map[int64]*domain.ServiceType{
			3: {ID: 3, Name: "Диагностика двигателя", DurationMinutes: 90,
				RequiredSkillLevel: 3, RequiredBayType: domain.BayTypeDiagnostic},
		},
		centers: map[int64]*domain.ServiceCenter{
			7: {ID: 7, Name: "СМЦ Север", Region: "Москва"},
		},
		technicians: []domain.Technician{{ID: 21, Name: "Петров", SkillLevel: 4, CenterID: 7}},
		bays:        []domain.ServiceBay{{ID: 31, Name: "Пост 1", Type: domain.BayTypeDiagnostic, CenterID: 7}},
	}

	estimator := &fakeEstimator{arrival: testArrival}
	engine := &fakeEngine{
		assignment: &scheduler.Assignment{
			StartTime:  testSlot,
			Technician: catalog.technicians[0],
			Bay:        catalog.bays[0],
			SlotIndex:  0,
		},
	}

	return &fixture{
		catalog:   catalog,
		estimator: estimator,
		engine:    engine,
		useCase:   NewUseCase(catalog, estimator, engine, nopLogger{}),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 7})
	require.NoError(t, err)

	assert.Equal(t, testSlot, resp.EarliestSlot)
	assert.Equal(t, testArrival, resp.PartsArrivalDate)

	// Дата прибытия деталей передается движку как нижняя граница
	assert.Equal(t, testArrival, f.engine.earliestAllowed)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 0, CenterID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceTypeNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 404, CenterID: 7})
	assert.ErrorIs(t, err, ErrServiceTypeNotFound)
}

func TestExecute_CenterNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 404})
	assert.ErrorIs(t, err, ErrCenterNotFound)
}

func TestExecute_NoQualifiedTechnicians(t *testing.T) {
	f := newFixture()
	f.catalog.technicians = nil

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 7})
	assert.ErrorIs(t, err, ErrNoQualifiedTechnicians)
}

func TestExecute_NoQualifiedBays(t *testing.T) {
	f := newFixture()
	f.catalog.bays = nil

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 7})
	assert.ErrorIs(t, err, ErrNoQualifiedBays)
}

func TestExecute_NoSlotAvailable(t *testing.T) {
	f := newFixture()
	f.engine.err = scheduler.ErrNoSlotAvailable

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 7})
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestExecute_EstimatorError(t *testing.T) {
	f := newFixture()
	f.estimator.err = errors.New("connection refused")

	_, err := f.useCase.Execute(context.Background(), &Request{ServiceTypeID: 3, CenterID: 7})
	assert.ErrorIs(t, err, ErrInternal)
}
