package search_customers

import "github.com/m04kA/SMC-SchedulerService/internal/domain"

// CustomerResponse HTTP модель клиента
type CustomerResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	LoyaltyScore int    `json:"loyaltyScore"`
}

// SearchCustomersResponse HTTP response model
type SearchCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// FromDomain конвертирует доменные модели в HTTP response
func FromDomain(customers []*domain.Customer) *SearchCustomersResponse {
	result := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, CustomerResponse{
			ID:           c.ID,
			Name:         c.Name,
			Phone:        c.Phone,
			LoyaltyScore: c.LoyaltyScore,
		})
	}

	return &SearchCustomersResponse{Customers: result}
}
