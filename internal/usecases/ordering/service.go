// Package ordering contém o caso de uso de gestão de pedidos
package ordering

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/pkg/utils"
)

type OrderingService interface {
	ListOrders() ([]*domain.Order, error)
	GetOrder(id int64) (*domain.Order, error)
	GetOrderByNumber(orderNumber string) (*domain.Order, error)
	CreateOrder(order *domain.Order) (*domain.Order, error)
	UpdateOrder(order *domain.Order) (*domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus) error
	DeleteOrder(id int64) error
}

type Service struct {
	orderRepository    repository.OrderRepository
	customerRepository repository.CustomerRepository
	productRepository  repository.ProductRepository
}

func NewService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) OrderingService {
	return &Service{
		orderRepository:    orderRepo,
		customerRepository: customerRepo,
		productRepository:  productRepo,
	}
}

func (s *Service) ListOrders() ([]*domain.Order, error) {
	orders, err := s.orderRepository.ListOrders()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar pedidos")
	}
	return orders, nil
}

func (s *Service) GetOrder(id int64) (*domain.Order, error) {
	order, err := s.orderRepository.GetOrderByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar pedido")
	}
	return order, nil
}

func (s *Service) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	order, err := s.orderRepository.GetOrderByNumber(orderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar pedido pelo número")
	}
	return order, nil
}

// CreateOrder valida o cliente e os itens, gera o número do pedido quando
// ausente e calcula o total a partir dos itens
func (s *Service) CreateOrder(order *domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, ErrOrderWithoutItems
	}

	customer, err := s.customerRepository.GetCustomerByID(order.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao verificar cliente do pedido")
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity <= 0 {
			return nil, ErrInvalidItemQuantity
		}

		product, err := s.productRepository.GetProductByID(item.ProductID)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao verificar produto do pedido")
		}
		if product == nil {
			return nil, ErrProductNotFound
		}

		// O preço unitário é congelado no momento do pedido
		if item.UnitPrice == 0 {
			item.UnitPrice = product.Price
		}
	}

	if order.OrderNumber == "" {
		orderNumber, err := generateOrderNumber()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar número do pedido")
		}
		order.OrderNumber = orderNumber
	}

	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if !order.Status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order.TotalAmount = order.CalculateTotalAmount()

	created, err := s.orderRepository.CreateOrder(order)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar pedido")
	}
	return created, nil
}

func (s *Service) UpdateOrder(order *domain.Order) (*domain.Order, error) {
	if !order.Status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	existing, err := s.orderRepository.GetOrderByID(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar pedido")
	}
	if existing == nil {
		return nil, ErrOrderNotFound
	}

	// Apenas status, observações e endereços são editáveis; os itens e o
	// total permanecem os registrados na criação
	existing.Status = order.Status
	existing.Notes = order.Notes
	existing.ShippingAddress = order.ShippingAddress
	existing.BillingAddress = order.BillingAddress
	existing.TotalAmount = existing.CalculateTotalAmount()

	updated, err := s.orderRepository.UpdateOrder(existing)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar pedido")
	}
	return updated, nil
}

func (s *Service) UpdateOrderStatus(id int64, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidOrderStatus
	}

	if err := s.orderRepository.UpdateOrderStatus(id, status); err != nil {
		return errors.Wrap(err, "erro ao atualizar status do pedido")
	}
	return nil
}

func (s *Service) DeleteOrder(id int64) error {
	if err := s.orderRepository.DeleteOrder(id); err != nil {
		return errors.Wrap(err, "erro ao excluir pedido")
	}
	return nil
}

func generateOrderNumber() (string, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s", id), nil
}
