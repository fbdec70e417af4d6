package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("customers.service: internal error")

// Service сервис поиска клиентов для записи на обслуживание
type Service struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Search ищет клиентов по подстроке имени или телефона
// Пустой запрос возвращает пустой список, а не ошибку
func (s *Service) Search(ctx context.Context, q string) ([]*domain.Customer, error) {
	if q == "" {
		return []*domain.Customer{}, nil
	}

	found, err := s.customerRepo.SearchCustomers(ctx, q)
	if err != nil {
		s.logger.Error("Search: repository error for query %q: %v", q, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d customers for query %q", len(found), q)
	return found, nil
}
