package scheduler

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Битовая маска занятости: бит i соответствует получасовому слоту,
// начинающемуся в DayStart + i*30 минут. 1 - занят, 0 - свободен.
// Действительны только младшие domain.TotalSlots битов.

// DayStart возвращает начало рабочего дня для указанной даты
func DayStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), domain.DayStartHour, 0, 0, 0, date.Location())
}

// SlotTime возвращает момент начала слота с индексом slotIndex в указанную дату
func SlotTime(date time.Time, slotIndex int) time.Time {
	return DayStart(date).Add(time.Duration(slotIndex*domain.SlotMinutes) * time.Minute)
}

// SlotIndexForTime возвращает индекс первого слота, начинающегося не раньше t
// (в пределах дня t). Для времени до начала рабочего дня возвращает 0.
// Может вернуть значение >= domain.TotalSlots: в этот день слотов не осталось.
func SlotIndexForTime(t time.Time) int {
	dayStart := DayStart(t)
	if t.Before(dayStart) {
		return 0
	}
	minutes := int(t.Sub(dayStart) / time.Minute)
	return (minutes + domain.SlotMinutes - 1) / domain.SlotMinutes
}

// RequiredSlots возвращает количество слотов для длительности услуги
// (округление вверх)
func RequiredSlots(durationMinutes int) int {
	return (durationMinutes + domain.SlotMinutes - 1) / domain.SlotMinutes
}

// FindConsecutiveZeros ищет наименьший индекс i >= startSearchFrom такой,
// что k подряд идущих битов начиная с i свободны и блок не выходит за
// пределы рабочего дня. Возвращает -1, если такого индекса нет.
func FindConsecutiveZeros(mask, k, startSearchFrom int) int {
	if k <= 0 || startSearchFrom < 0 {
		return -1
	}
	targetMask := (1 << k) - 1
	for i := startSearchFrom; i <= domain.TotalSlots-k; i++ {
		if (mask>>i)&targetMask == 0 {
			return i
		}
	}
	return -1
}

// IsRangeFree проверяет, что k битов начиная со slotIndex свободны
func IsRangeFree(mask, k, slotIndex int) bool {
	targetMask := (1 << k) - 1
	return (mask>>slotIndex)&targetMask == 0
}

// MarkBusy помечает k битов начиная со slotIndex занятыми.
// Идемпотентна: повторная пометка того же блока не меняет маску.
func MarkBusy(mask, k, slotIndex int) int {
	targetMask := ((1 << k) - 1) << slotIndex
	return mask | targetMask
}
