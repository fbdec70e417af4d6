package search_customers

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/customers/search?q=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	found, err := h.service.Search(r.Context(), q)
	if err != nil {
		h.logger.Error("SearchCustomers: ошибка поиска по запросу %q: %v", q, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(found))
}
