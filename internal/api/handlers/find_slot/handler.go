package find_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	findSlot "github.com/m04kA/SMC-SchedulerService/internal/usecase/find_slot"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidInput           = "serviceTypeId и centerId должны быть положительными"
	msgServiceTypeNotFound    = "тип услуги не найден"
	msgCenterNotFound         = "сервисный центр не найден"
	msgNoQualifiedTechnicians = "в центре нет техников требуемого уровня"
	msgNoQualifiedBays        = "в центре нет постов требуемой категории"
	msgNoSlotAvailable        = "нет свободных слотов в ближайшие 30 дней"
)

type Handler struct {
	useCase FindSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedule/find-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FindSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/find-slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, findSlot.ErrInvalidInput):
			h.logger.Warn("POST /schedule/find-slot - Invalid input: service_type=%d, center=%d",
				req.ServiceTypeID, req.CenterID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, findSlot.ErrServiceTypeNotFound):
			h.logger.Warn("POST /schedule/find-slot - Service type not found: service_type=%d", req.ServiceTypeID)
			handlers.RespondNotFound(w, msgServiceTypeNotFound)

		case errors.Is(err, findSlot.ErrCenterNotFound):
			h.logger.Warn("POST /schedule/find-slot - Center not found: center=%d", req.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, findSlot.ErrNoQualifiedTechnicians):
			h.logger.Warn("POST /schedule/find-slot - No qualified technicians: center=%d", req.CenterID)
			handlers.RespondNotFound(w, msgNoQualifiedTechnicians)

		case errors.Is(err, findSlot.ErrNoQualifiedBays):
			h.logger.Warn("POST /schedule/find-slot - No qualified bays: center=%d", req.CenterID)
			handlers.RespondNotFound(w, msgNoQualifiedBays)

		case errors.Is(err, findSlot.ErrNoSlotAvailable):
			h.logger.Warn("POST /schedule/find-slot - No slot available: service_type=%d, center=%d",
				req.ServiceTypeID, req.CenterID)
			handlers.RespondNotFound(w, msgNoSlotAvailable)

		default:
			h.logger.Error("POST /schedule/find-slot - Failed: service_type=%d, center=%d, error=%v",
				req.ServiceTypeID, req.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/find-slot - Found slot %s: service_type=%d, center=%d",
		result.EarliestSlot, req.ServiceTypeID, req.CenterID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
