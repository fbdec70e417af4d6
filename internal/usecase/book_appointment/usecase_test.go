package book_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/catalog"
	inventoryRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

// --- Фейки зависимостей ---

type fakeCatalog struct {
	customers    map[int64]*domain.Customer
	vehicles     map[int64]*domain.Vehicle
	serviceTypes map[int64]*domain.ServiceType
	centers      map[int64]*domain.ServiceCenter
	technicians  []domain.Technician
	bays         []domain.ServiceBay
}

func (f *fakeCatalog) GetCustomerByID(_ context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCustomerNotFound
}

func (f *fakeCatalog) GetVehicleByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	if v, ok := f.vehicles[id]; ok {
		return v, nil
	}
	return nil, catalogRepo.ErrVehicleNotFound
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

type fakeSchedule struct {
	masks map[string]int
}

func scheduleKey(kind domain.ResourceKind, resourceID int64, date time.Time) string {
	return fmt.Sprintf("%s/%d/%s", kind, resourceID, date.Format(domain.DateFormat))
}

func (f *fakeSchedule) GetMask(_ context.Context, kind domain.ResourceKind, resourceID int64, date time.Time) (int, error) {
	return f.masks[scheduleKey(kind, resourceID, date)], nil
}

func (f *fakeSchedule) PutMask(_ context.Context, kind domain.ResourceKind, resourceID int64, date time.Time, mask int) error {
	if f.masks == nil {
		f.masks = make(map[string]int)
	}
	f.masks[scheduleKey(kind, resourceID, date)] = mask
	return nil
}

type fakeInventory struct {
	requirements []domain.PartRequirement
	records      map[string]*domain.PartInventory
}

func inventoryKey(centerID int64, partName string) string {
	return fmt.Sprintf("%d/%s", centerID, partName)
}

func (f *fakeInventory) Requirements(_ context.Context, _ int64) ([]domain.PartRequirement, error) {
	return f.requirements, nil
}

func (f *fakeInventory) GetByCenterAndPart(_ context.Context, centerID int64, partName string) (*domain.PartInventory, error) {
	if record, ok := f.records[inventoryKey(centerID, partName)]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, inventoryRepo.ErrPartNotFound
}

func (f *fakeInventory) UpdateStock(_ context.Context, id int64, availableParts, orderedParts int) error {
	for _, record := range f.records {
		if record.ID == id {
			record.AvailableParts = availableParts
			record.OrderedParts = orderedParts
			return nil
		}
	}
	return inventoryRepo.ErrPartNotFound
}

type fakeAppointments struct {
	nextID      int64
	created     []*domain.Appointment
	assignments []*domain.ResourceAssignment
	tasks       []*domain.ProcurementTask
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	copied := *appt
	copied.ID = f.nextID
	copied.CreatedAt = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	copied.UpdatedAt = copied.CreatedAt
	f.created = append(f.created, &copied)
	return &copied, nil
}

func (f *fakeAppointments) CreateResourceAssignment(_ context.Context, appointmentID, technicianID, bayID int64) (*domain.ResourceAssignment, error) {
	assignment := &domain.ResourceAssignment{
		ID:            int64(len(f.assignments) + 1),
		AppointmentID: appointmentID,
		TechnicianID:  technicianID,
		BayID:         bayID,
	}
	f.assignments = append(f.assignments, assignment)
	return assignment, nil
}

func (f *fakeAppointments) CreateProcurementTasks(_ context.Context, tasks []*domain.ProcurementTask) error {
	for _, task := range tasks {
		task.ID = int64(len(f.tasks) + 1)
		f.tasks = append(f.tasks, task)
	}
	return nil
}

type fakeEngine struct {
	assignment *scheduler.Assignment
	err        error
	calls      int
}

func (f *fakeEngine) FindEarliestAssignment(_ context.Context, _ time.Time, _ int,
	_ []domain.Technician, _ []domain.ServiceBay) (*scheduler.Assignment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.assignment, nil
}

// fakeTxManager выполняет тело транзакции напрямую, без базы
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Тестовые данные ---

var (
	testDay       = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	testStartTime = time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	catalog      *fakeCatalog
	schedule     *fakeSchedule
	inventory    *fakeInventory
	appointments *fakeAppointments
	engine       *fakeEngine
	txManager    *fakeTxManager
	useCase      *UseCase
}

func newFixture() *fixture {
	catalog := &fakeCatalog{
		customers: map[int64]*domain.Customer{
			1: {ID: 1, Name: "Иванов", Phone: "+79990001122"},
		},
		vehicles: map[int64]*domain.Vehicle{
			5: {ID: 5, CustomerID: 1, VIN: "XTA210990Y1234567", Model: "Granta"},
		},
		serviceTypes: map[int64]*domain.ServiceType{
			3: {ID: 3, Name: "Замена тормозных колодок", DurationMinutes: 60,
				RequiredSkillLevel: 2, RequiredBayType: domain.BayTypeGeneral},
		},
		centers: map[int64]*domain.ServiceCenter{
			7: {ID: 7, Name: "СМЦ Север", Region: "Москва"},
		},
		technicians: []domain.Technician{{ID: 21, Name: "Петров", SkillLevel: 3, CenterID: 7}},
		bays:        []domain.ServiceBay{{ID: 31, Name: "Пост 1", Type: domain.BayTypeGeneral, CenterID: 7}},
	}

	engine := &fakeEngine{
		assignment: &scheduler.Assignment{
			StartTime:  testStartTime,
			Technician: catalog.technicians[0],
			Bay:        catalog.bays[0],
			SlotIndex:  2,
		},
	}

	schedule := &fakeSchedule{masks: make(map[string]int)}
	inventory := &fakeInventory{}
	appointments := &fakeAppointments{}
	txManager := &fakeTxManager{}

	return &fixture{
		catalog:      catalog,
		schedule:     schedule,
		inventory:    inventory,
		appointments: appointments,
		engine:       engine,
		txManager:    txManager,
		useCase: NewUseCase(catalog, schedule, inventory, appointments,
			engine, txManager, nopLogger{}),
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID:    1,
		VehicleID:     5,
		ServiceTypeID: 3,
		CenterID:      7,
		StartTime:     testStartTime,
	}
}

// --- Тесты ---

func TestExecute_ConfirmedWhenPartsAvailable(t *testing.T) {
	f := newFixture()
	f.inventory.requirements = []domain.PartRequirement{
		{PartID: 100, PartName: "тормозные колодки", Quantity: 2, LeadTimeDays: 3},
	}
	f.inventory.records = map[string]*domain.PartInventory{
		inventoryKey(7, "тормозные колодки"): {ID: 40, CenterID: 7, PartName: "тормозные колодки",
			AvailableParts: 5, OrderedParts: 0, LeadTimeDays: 3},
	}

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, testStartTime, resp.StartTime)
	assert.Equal(t, testStartTime.Add(60*time.Minute), resp.EndTime)
	assert.Equal(t, int64(21), resp.TechnicianID)
	assert.Equal(t, int64(31), resp.BayID)
	assert.Equal(t, 2, resp.SlotIndex)
	assert.Empty(t, resp.ProcurementTasks)

	// Услуга 60 минут = 2 слота начиная со слота 2: биты 2-3 в обеих масках
	assert.Equal(t, 0b1100, f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)])
	assert.Equal(t, 0b1100, f.schedule.masks[scheduleKey(domain.KindBay, 31, testDay)])

	// Остаток списан, заказ не менялся
	record := f.inventory.records[inventoryKey(7, "тормозные колодки")]
	assert.Equal(t, 3, record.AvailableParts)
	assert.Equal(t, 0, record.OrderedParts)

	assert.Equal(t, 1, f.txManager.calls)
	require.Len(t, f.appointments.assignments, 1)
	assert.Equal(t, resp.ID, f.appointments.assignments[0].AppointmentID)
}

func TestExecute_PendingPartsOnShortage(t *testing.T) {
	f := newFixture()
	f.inventory.requirements = []domain.PartRequirement{
		{PartID: 100, PartName: "тормозные колодки", Quantity: 4, LeadTimeDays: 3},
	}
	f.inventory.records = map[string]*domain.PartInventory{
		inventoryKey(7, "тормозные колодки"): {ID: 40, CenterID: 7, PartName: "тормозные колодки",
			AvailableParts: 1, OrderedParts: 2, LeadTimeDays: 3},
	}

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPendingParts), resp.Status)

	// Остаток обнулен, дефицит добавлен в заказ
	record := f.inventory.records[inventoryKey(7, "тормозные колодки")]
	assert.Equal(t, 0, record.AvailableParts)
	assert.Equal(t, 5, record.OrderedParts)

	// Задача снабжения ссылается на запись инвентаря центра
	require.Len(t, resp.ProcurementTasks, 1)
	task := resp.ProcurementTasks[0]
	assert.Equal(t, int64(40), task.PartID)
	assert.Equal(t, "тормозные колодки", task.PartName)
	assert.Equal(t, testStartTime, task.NeededBy)
	assert.Equal(t, string(domain.ProcurementActionRequired), task.Status)

	require.Len(t, f.appointments.tasks, 1)
	assert.Equal(t, resp.ID, f.appointments.tasks[0].AppointmentID)
}

func TestExecute_PendingPartsOnUnknownPart(t *testing.T) {
	f := newFixture()
	// У центра нет записи инвентаря для детали: задача ссылается на
	// шаблонную деталь из требования, инвентарь не изменяется
	f.inventory.requirements = []domain.PartRequirement{
		{PartID: 100, PartName: "катализатор", Quantity: 1, LeadTimeDays: 7},
	}

	resp, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPendingParts), resp.Status)
	require.Len(t, resp.ProcurementTasks, 1)
	assert.Equal(t, int64(100), resp.ProcurementTasks[0].PartID)
}

// fixedClock источник времени для теста с реальным движком
type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return testDay.Add(8 * time.Hour)
}

func TestExecute_SecondBookingOfFilledSlotConflicts(t *testing.T) {
	f := newFixture()

	// Реальный движок поверх общего фейкового расписания: второе
	// бронирование видит маски, записанные первым
	engine := scheduler.NewServiceWithTimeProvider(f.schedule, fixedClock{}, nopLogger{})
	f.useCase = NewUseCase(f.catalog, f.schedule, f.inventory, f.appointments,
		engine, f.txManager, nopLogger{})

	// Сегодня у техника свободен только последний блок из двух слотов,
	// остальные дни горизонта заняты полностью
	almostFull := (1 << (domain.TotalSlots - 2)) - 1
	full := (1 << domain.TotalSlots) - 1
	f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)] = almostFull
	for offset := 1; offset < domain.SearchHorizonDays; offset++ {
		day := testDay.AddDate(0, 0, offset)
		f.schedule.masks[scheduleKey(domain.KindTechnician, 21, day)] = full
	}

	first, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.TotalSlots-2, first.SlotIndex)

	// Первое бронирование заняло блок целиком
	assert.Equal(t, full, f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)])

	_, err = f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Проигравшая попытка ничего не изменила: записей по-прежнему одна,
	// маски без новых битов
	require.Len(t, f.appointments.created, 1)
	assert.Equal(t, full, f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)])
	assert.Equal(t, scheduler.MarkBusy(0, 2, domain.TotalSlots-2),
		f.schedule.masks[scheduleKey(domain.KindBay, 31, testDay)])
}

func TestExecute_BusyMaskAtCommitConflicts(t *testing.T) {
	f := newFixture()
	// Движок вернул слот 2, но в свежепрочитанной маске бит уже занят:
	// пометка должна отказаться, а не наложиться поверх
	f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)] = 0b100

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.appointments.created)
	assert.Equal(t, 0b100, f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)])
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()
	f.engine.err = scheduler.ErrNoSlotAvailable

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция откатилась: ничего не сохранено, маски не тронуты
	assert.Empty(t, f.appointments.created)
	assert.Empty(t, f.schedule.masks)
}

func TestExecute_SlotOutOfRange(t *testing.T) {
	f := newFixture()
	// Слот у самого конца дня: блок из двух слотов не помещается
	f.engine.assignment.SlotIndex = domain.TotalSlots - 1

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.Empty(t, f.appointments.created)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"нулевой клиент", func(r *Request) { r.CustomerID = 0 }},
		{"отрицательный автомобиль", func(r *Request) { r.VehicleID = -1 }},
		{"нулевая услуга", func(r *Request) { r.ServiceTypeID = 0 }},
		{"нулевой центр", func(r *Request) { r.CenterID = 0 }},
		{"пустое время начала", func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// Ни одна невалидная попытка не дошла до транзакции
	assert.Equal(t, 0, f.txManager.calls)
}

func TestExecute_VehicleOwnership(t *testing.T) {
	f := newFixture()
	f.catalog.vehicles[5].CustomerID = 99

	_, err := f.useCase.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVehicleOwnership)
	assert.Equal(t, 0, f.txManager.calls)
}

func TestExecute_EntityNotFound(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"клиент", func(r *Request) { r.CustomerID = 404 }, ErrCustomerNotFound},
		{"автомобиль", func(r *Request) { r.VehicleID = 404 }, ErrVehicleNotFound},
		{"услуга", func(r *Request) { r.ServiceTypeID = 404 }, ErrServiceTypeNotFound},
		{"центр", func(r *Request) { r.CenterID = 404 }, ErrCenterNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(req)

			_, err := f.useCase.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_MasksAccumulate(t *testing.T) {
	f := newFixture()
	// Техник уже занят слотами 0-1 в этот день: пометка нового блока
	// не должна затирать существующую занятость
	f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)] = 0b11

	_, err := f.useCase.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 0b1111, f.schedule.masks[scheduleKey(domain.KindTechnician, 21, testDay)])
}

func TestExecute_EmergencyFlagPersisted(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Emergency = true

	resp, err := f.useCase.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Emergency)
	require.Len(t, f.appointments.created, 1)
	assert.True(t, f.appointments.created[0].IsEmergency)
}
