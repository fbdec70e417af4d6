package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

type fakeScheduleStore struct {
	// ключ: kind/resourceID/дата
	masks map[string]int
	err   error
}

func maskKey(kind domain.ResourceKind, resourceID int64, date time.Time) string {
	return fmt.Sprintf("%s/%d/%s", kind, resourceID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleStore) GetMask(_ context.Context, kind domain.ResourceKind, resourceID int64, date time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.masks[maskKey(kind, resourceID, date)], nil
}

func (f *fakeScheduleStore) set(kind domain.ResourceKind, resourceID int64, date time.Time, mask int) {
	if f.masks == nil {
		f.masks = make(map[string]int)
	}
	f.masks[maskKey(kind, resourceID, date)] = mask
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(store *fakeScheduleStore, now time.Time) *Service {
	return NewServiceWithTimeProvider(store, &fakeTimeProvider{now: now}, nopLogger{})
}

var (
	testToday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	testTechs = []domain.Technician{
		{ID: 1, Name: "Иванов", SkillLevel: 3, CenterID: 1},
		{ID: 2, Name: "Петров", SkillLevel: 4, CenterID: 1},
	}
	testBays = []domain.ServiceBay{
		{ID: 10, Name: "Пост 1", Type: domain.BayTypeGeneral, CenterID: 1},
		{ID: 11, Name: "Пост 2", Type: domain.BayTypeGeneral, CenterID: 1},
	}
)

func TestFindEarliestAssignment_EmptySchedule(t *testing.T) {
	store := &fakeScheduleStore{}
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 60, testTechs, testBays)
	require.NoError(t, err)

	// Пустое расписание: первый техник, первый пост, первый слот сегодня
	assert.Equal(t, int64(1), assignment.Technician.ID)
	assert.Equal(t, int64(10), assignment.Bay.ID)
	assert.Equal(t, 0, assignment.SlotIndex)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_BusyTechStillSlotZero(t *testing.T) {
	store := &fakeScheduleStore{}
	// У первого техника заняты слоты 4-5, начало дня свободно
	store.set(domain.KindTechnician, 1, testToday, 0b110000)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, int64(1), assignment.Technician.ID)
	assert.Equal(t, 0, assignment.SlotIndex)
}

func TestFindEarliestAssignment_UnionForcesLaterSlot(t *testing.T) {
	store := &fakeScheduleStore{}
	// Техник занят слотами 0-2, оба поста слотами 3-5:
	// объединение масок выталкивает блок на слот 6
	store.set(domain.KindTechnician, 1, testToday, 0b000111)
	store.set(domain.KindTechnician, 2, testToday, 0b000111)
	store.set(domain.KindBay, 10, testToday, 0b111000)
	store.set(domain.KindBay, 11, testToday, 0b111000)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 60, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, 6, assignment.SlotIndex)
	assert.Equal(t, time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_TieBreakFirstPair(t *testing.T) {
	store := &fakeScheduleStore{}
	// Оба поста заняты в слоте 0: каждая пара дает слот 1.
	// При равных слотах выигрывает пара, найденная первой.
	store.set(domain.KindBay, 10, testToday, 0b1)
	store.set(domain.KindBay, 11, testToday, 0b1)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, int64(1), assignment.Technician.ID)
	assert.Equal(t, int64(10), assignment.Bay.ID)
	assert.Equal(t, 1, assignment.SlotIndex)
}

func TestFindEarliestAssignment_StrictlyEarlierSlotWins(t *testing.T) {
	store := &fakeScheduleStore{}
	// Первый техник и первый пост заняты в слоте 0, вторая пара
	// полностью свободна и дает строго более ранний слот
	store.set(domain.KindTechnician, 1, testToday, 0b1)
	store.set(domain.KindBay, 10, testToday, 0b1)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, int64(2), assignment.Technician.ID)
	assert.Equal(t, int64(11), assignment.Bay.ID)
	assert.Equal(t, 0, assignment.SlotIndex)
}

func TestFindEarliestAssignment_FullDayRollsToNextDay(t *testing.T) {
	store := &fakeScheduleStore{}
	full := (1 << domain.TotalSlots) - 1
	for _, tech := range testTechs {
		store.set(domain.KindTechnician, tech.ID, testToday, full)
	}
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	require.NoError(t, err)

	nextDay := testToday.AddDate(0, 0, 1)
	assert.Equal(t, time.Date(nextDay.Year(), nextDay.Month(), nextDay.Day(), 9, 0, 0, 0, time.UTC), assignment.StartTime)
	assert.Equal(t, 0, assignment.SlotIndex)
}

func TestFindEarliestAssignment_SameDayLowerBound(t *testing.T) {
	store := &fakeScheduleStore{}
	// Нижняя граница 11:20 того же дня: первый допустимый слот 5 (11:30)
	lowerBound := testToday.Add(11*time.Hour + 20*time.Minute)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), lowerBound, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, 5, assignment.SlotIndex)
	assert.Equal(t, time.Date(2025, 10, 15, 11, 30, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_LowerBoundAfterWorkday(t *testing.T) {
	store := &fakeScheduleStore{}
	// Нижняя граница после конца рабочего дня: день пропускается целиком
	lowerBound := testToday.Add(19 * time.Hour)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), lowerBound, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_LowerBoundInOtherZone(t *testing.T) {
	store := &fakeScheduleStore{}
	// Нижняя граница пришла со смещением +05:00: 16:00 +05 это 11:00 UTC.
	// Граница должна соблюдаться независимо от зоны представления.
	zone := time.FixedZone("UTC+5", 5*60*60)
	lowerBound := time.Date(2025, 10, 15, 16, 0, 0, 0, zone)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), lowerBound, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.False(t, assignment.StartTime.Before(lowerBound))
	assert.Equal(t, 4, assignment.SlotIndex)
	assert.Equal(t, time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_FutureLowerBoundSkipsDays(t *testing.T) {
	store := &fakeScheduleStore{}
	// Детали прибудут через 4 дня: более ранние дни не рассматриваются
	lowerBound := testToday.AddDate(0, 0, 4)
	svc := newTestService(store, testToday.Add(8*time.Hour))

	assignment, err := svc.FindEarliestAssignment(context.Background(), lowerBound, 30, testTechs, testBays)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 19, 9, 0, 0, 0, time.UTC), assignment.StartTime)
}

func TestFindEarliestAssignment_NoSlotInHorizon(t *testing.T) {
	store := &fakeScheduleStore{}
	full := (1 << domain.TotalSlots) - 1
	for dayOffset := 0; dayOffset < domain.SearchHorizonDays; dayOffset++ {
		day := testToday.AddDate(0, 0, dayOffset)
		for _, tech := range testTechs {
			store.set(domain.KindTechnician, tech.ID, day, full)
		}
	}
	svc := newTestService(store, testToday.Add(8*time.Hour))

	_, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestFindEarliestAssignment_NoCandidates(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{}, testToday.Add(8*time.Hour))

	_, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, nil, testBays)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)

	_, err = svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, nil)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestFindEarliestAssignment_InvalidDuration(t *testing.T) {
	svc := newTestService(&fakeScheduleStore{}, testToday.Add(8*time.Hour))

	_, err := svc.FindEarliestAssignment(context.Background(), testToday, 0, testTechs, testBays)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestFindEarliestAssignment_StoreError(t *testing.T) {
	store := &fakeScheduleStore{err: errors.New("connection refused")}
	svc := newTestService(store, testToday.Add(8*time.Hour))

	_, err := svc.FindEarliestAssignment(context.Background(), testToday, 30, testTechs, testBays)
	assert.ErrorIs(t, err, ErrInternal)
}
