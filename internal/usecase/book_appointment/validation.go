package book_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	if req.ServiceTypeID <= 0 {
		return fmt.Errorf("%w: serviceTypeID must be positive", ErrInvalidInput)
	}

	if req.CenterID <= 0 {
		return fmt.Errorf("%w: centerID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// validateOwnership проверяет, что автомобиль принадлежит клиенту
func validateOwnership(vehicle *domain.Vehicle, customerID int64) error {
	if !vehicle.BelongsTo(customerID) {
		return ErrVehicleOwnership
	}
	return nil
}
