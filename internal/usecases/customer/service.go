// Package customer contém o caso de uso de gestão de clientes
package customer

import (
	stderrors "errors"

	"github.com/pkg/errors"
	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/domain"
)

var (
	ErrEmailRequired     = stderrors.New("customer email is required")
	ErrNameRequired      = stderrors.New("customer first and last name are required")
	ErrEmailAlreadyInUse = stderrors.New("customer email already in use")
	ErrCustomerNotFound  = stderrors.New("customer not found")
)

type CustomerService interface {
	ListCustomers() ([]*domain.Customer, error)
	GetCustomer(id int64) (*domain.Customer, error)
	CreateCustomer(customer *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(customer *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(id int64) error
}

type Service struct {
	customerRepository repository.CustomerRepository
}

func NewService(customerRepo repository.CustomerRepository) CustomerService {
	return &Service{
		customerRepository: customerRepo,
	}
}

func (s *Service) ListCustomers() ([]*domain.Customer, error) {
	customers, err := s.customerRepository.ListCustomers()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar clientes")
	}
	return customers, nil
}

func (s *Service) GetCustomer(id int64) (*domain.Customer, error) {
	customer, err := s.customerRepository.GetCustomerByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar cliente")
	}
	return customer, nil
}

func (s *Service) CreateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	if err := validate(customer); err != nil {
		return nil, err
	}

	existing, err := s.customerRepository.GetCustomerByEmail(customer.Email)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao verificar e-mail do cliente")
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	created, err := s.customerRepository.CreateCustomer(customer)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente")
	}
	return created, nil
}

func (s *Service) UpdateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	if err := validate(customer); err != nil {
		return nil, err
	}

	updated, err := s.customerRepository.UpdateCustomer(customer)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar cliente")
	}
	if updated == nil {
		return nil, ErrCustomerNotFound
	}
	return updated, nil
}

func (s *Service) DeleteCustomer(id int64) error {
	if err := s.customerRepository.DeleteCustomer(id); err != nil {
		return errors.Wrap(err, "erro ao excluir cliente")
	}
	return nil
}

func validate(customer *domain.Customer) error {
	if customer.Email == "" {
		return ErrEmailRequired
	}
	if customer.FirstName == "" || customer.LastName == "" {
		return ErrNameRequired
	}
	return nil
}
