package find_slot

import (
	"time"

	findSlot "github.com/m04kA/SMC-SchedulerService/internal/usecase/find_slot"
)

// FindSlotRequest HTTP request model
type FindSlotRequest struct {
	ServiceTypeID int64 `json:"serviceTypeId"`
	CenterID      int64 `json:"centerId"`
}

// FindSlotResponse HTTP response model
type FindSlotResponse struct {
	EarliestSlot     string `json:"earliestSlot"`     // RFC3339
	PartsArrivalDate string `json:"partsArrivalDate"` // RFC3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *FindSlotRequest) ToUseCaseRequest() *findSlot.Request {
	return &findSlot.Request{
		ServiceTypeID: r.ServiceTypeID,
		CenterID:      r.CenterID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findSlot.Response) *FindSlotResponse {
	return &FindSlotResponse{
		EarliestSlot:     resp.EarliestSlot.Format(time.RFC3339),
		PartsArrivalDate: resp.PartsArrivalDate.Format(time.RFC3339),
	}
}
