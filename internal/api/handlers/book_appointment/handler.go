package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRequestData  = "некорректные данные запроса"
	msgCustomerNotFound    = "клиент не найден"
	msgVehicleNotFound     = "автомобиль не найден"
	msgVehicleOwnership    = "автомобиль не принадлежит клиенту"
	msgServiceTypeNotFound = "тип услуги не найден"
	msgCenterNotFound      = "сервисный центр не найден"
	msgSlotNotAvailable    = "запрошенное время уже занято"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/schedule/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("BookAppointment: некорректное тело запроса: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("BookAppointment: некорректные данные запроса: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestData)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("BookAppointment: некорректные данные запроса: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestData)
		case errors.Is(err, bookAppointment.ErrVehicleOwnership):
			h.logger.Warn("BookAppointment: автомобиль %d не принадлежит клиенту %d", ucReq.VehicleID, ucReq.CustomerID)
			handlers.RespondBadRequest(w, msgVehicleOwnership)
		case errors.Is(err, bookAppointment.ErrCustomerNotFound):
			h.logger.Warn("BookAppointment: клиент %d не найден", ucReq.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)
		case errors.Is(err, bookAppointment.ErrVehicleNotFound):
			h.logger.Warn("BookAppointment: автомобиль %d не найден", ucReq.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)
		case errors.Is(err, bookAppointment.ErrServiceTypeNotFound):
			h.logger.Warn("BookAppointment: тип услуги %d не найден", ucReq.ServiceTypeID)
			handlers.RespondNotFound(w, msgServiceTypeNotFound)
		case errors.Is(err, bookAppointment.ErrCenterNotFound):
			h.logger.Warn("BookAppointment: сервисный центр %d не найден", ucReq.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)
		case errors.Is(err, bookAppointment.ErrSlotNotAvailable):
			h.logger.Info("BookAppointment: время занято, клиент %d, центр %d", ucReq.CustomerID, ucReq.CenterID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)
		default:
			h.logger.Error("BookAppointment: ошибка бронирования: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
