package ordering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas/order-management-api/infrastructure/repository/mocks"
	"github.com/thomas/order-management-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newServiceWithMocks(t *testing.T) (*Service, *mocks.MockOrderRepository, *mocks.MockCustomerRepository, *mocks.MockProductRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	orderRepo := mocks.NewMockOrderRepository(ctrl)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	productRepo := mocks.NewMockProductRepository(ctrl)

	service := &Service{
		orderRepository:    orderRepo,
		customerRepository: customerRepo,
		productRepository:  productRepo,
	}

	return service, orderRepo, customerRepo, productRepo
}

func TestCreateOrder(t *testing.T) {
	t.Run("Congela o preço unitário, gera número e calcula o total", func(t *testing.T) {
		service, orderRepo, customerRepo, productRepo := newServiceWithMocks(t)

		customerRepo.EXPECT().
			GetCustomerByID(int64(1)).
			Return(&domain.Customer{ID: 1, Email: "max.mustermann@email.com"}, nil)

		productRepo.EXPECT().
			GetProductByID(int64(10)).
			Return(&domain.Product{ID: 10, Name: "Laptop Pro", Price: 1299.99, Active: true}, nil)
		productRepo.EXPECT().
			GetProductByID(int64(11)).
			Return(&domain.Product{ID: 11, Name: "Wireless Maus", Price: 29.99, Active: true}, nil)

		orderRepo.EXPECT().
			CreateOrder(gomock.Any()).
			DoAndReturn(func(order *domain.Order) (*domain.Order, error) {
				order.ID = 99
				return order, nil
			})

		created, err := service.CreateOrder(&domain.Order{
			CustomerID: 1,
			Items: []domain.OrderItem{
				{ProductID: 10, Quantity: 1},
				{ProductID: 11, Quantity: 2},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(99), created.ID)
		assert.Equal(t, domain.OrderStatusPending, created.Status)
		assert.True(t, strings.HasPrefix(created.OrderNumber, "ORD-"))
		assert.False(t, created.OrderDate.IsZero())

		// 1299.99 + 2*29.99
		assert.InDelta(t, 1359.97, created.TotalAmount, 0.001)
		assert.Equal(t, 1299.99, created.Items[0].UnitPrice)
	})

	t.Run("Preço unitário informado não é sobrescrito", func(t *testing.T) {
		service, orderRepo, customerRepo, productRepo := newServiceWithMocks(t)

		customerRepo.EXPECT().GetCustomerByID(int64(1)).Return(&domain.Customer{ID: 1}, nil)
		productRepo.EXPECT().GetProductByID(int64(10)).Return(&domain.Product{ID: 10, Price: 100}, nil)
		orderRepo.EXPECT().CreateOrder(gomock.Any()).DoAndReturn(func(order *domain.Order) (*domain.Order, error) {
			return order, nil
		})

		created, err := service.CreateOrder(&domain.Order{
			CustomerID: 1,
			Items:      []domain.OrderItem{{ProductID: 10, Quantity: 1, UnitPrice: 80}},
		})
		require.NoError(t, err)

		assert.Equal(t, 80.0, created.Items[0].UnitPrice)
		assert.Equal(t, 80.0, created.TotalAmount)
	})

	t.Run("Pedido sem itens é rejeitado", func(t *testing.T) {
		service, _, _, _ := newServiceWithMocks(t)

		_, err := service.CreateOrder(&domain.Order{CustomerID: 1})
		assert.ErrorIs(t, err, ErrOrderWithoutItems)
	})

	t.Run("Cliente inexistente é rejeitado", func(t *testing.T) {
		service, _, customerRepo, _ := newServiceWithMocks(t)

		customerRepo.EXPECT().GetCustomerByID(int64(7)).Return(nil, nil)

		_, err := service.CreateOrder(&domain.Order{
			CustomerID: 7,
			Items:      []domain.OrderItem{{ProductID: 10, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("Quantidade zero é rejeitada", func(t *testing.T) {
		service, _, customerRepo, _ := newServiceWithMocks(t)

		customerRepo.EXPECT().GetCustomerByID(int64(1)).Return(&domain.Customer{ID: 1}, nil)

		_, err := service.CreateOrder(&domain.Order{
			CustomerID: 1,
			Items:      []domain.OrderItem{{ProductID: 10, Quantity: 0}},
		})
		assert.ErrorIs(t, err, ErrInvalidItemQuantity)
	})

	t.Run("Produto inexistente é rejeitado", func(t *testing.T) {
		service, _, customerRepo, productRepo := newServiceWithMocks(t)

		customerRepo.EXPECT().GetCustomerByID(int64(1)).Return(&domain.Customer{ID: 1}, nil)
		productRepo.EXPECT().GetProductByID(int64(404)).Return(nil, nil)

		_, err := service.CreateOrder(&domain.Order{
			CustomerID: 1,
			Items:      []domain.OrderItem{{ProductID: 404, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Status desconhecido é rejeitado", func(t *testing.T) {
		service, _, customerRepo, productRepo := newServiceWithMocks(t)

		customerRepo.EXPECT().GetCustomerByID(int64(1)).Return(&domain.Customer{ID: 1}, nil)
		productRepo.EXPECT().GetProductByID(int64(10)).Return(&domain.Product{ID: 10, Price: 10}, nil)

		_, err := service.CreateOrder(&domain.Order{
			CustomerID: 1,
			Status:     domain.OrderStatus("UNKNOWN"),
			Items:      []domain.OrderItem{{ProductID: 10, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})
}

func TestUpdateOrder(t *testing.T) {
	t.Run("Edita apenas status, observações e endereços", func(t *testing.T) {
		service, orderRepo, _, _ := newServiceWithMocks(t)

		notes := "entregar no período da manhã"
		existing := &domain.Order{
			ID:          5,
			OrderNumber: "ORD-2024-001",
			Status:      domain.OrderStatusPending,
			Items:       []domain.OrderItem{{ProductID: 10, Quantity: 2, UnitPrice: 50}},
		}

		orderRepo.EXPECT().GetOrderByID(int64(5)).Return(existing, nil)
		orderRepo.EXPECT().UpdateOrder(gomock.Any()).DoAndReturn(func(order *domain.Order) (*domain.Order, error) {
			return order, nil
		})

		updated, err := service.UpdateOrder(&domain.Order{
			ID:     5,
			Status: domain.OrderStatusShipped,
			Notes:  &notes,
		})
		require.NoError(t, err)

		assert.Equal(t, "ORD-2024-001", updated.OrderNumber)
		assert.Equal(t, domain.OrderStatusShipped, updated.Status)
		assert.Equal(t, &notes, updated.Notes)
		assert.Equal(t, 100.0, updated.TotalAmount)
	})

	t.Run("Pedido inexistente é rejeitado", func(t *testing.T) {
		service, orderRepo, _, _ := newServiceWithMocks(t)

		orderRepo.EXPECT().GetOrderByID(int64(5)).Return(nil, nil)

		_, err := service.UpdateOrder(&domain.Order{ID: 5, Status: domain.OrderStatusShipped})
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Status válido é persistido", func(t *testing.T) {
		service, orderRepo, _, _ := newServiceWithMocks(t)

		orderRepo.EXPECT().UpdateOrderStatus(int64(5), domain.OrderStatusCancelled).Return(nil)

		err := service.UpdateOrderStatus(5, domain.OrderStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("Status desconhecido é rejeitado sem tocar no repositório", func(t *testing.T) {
		service, _, _, _ := newServiceWithMocks(t)

		err := service.UpdateOrderStatus(5, domain.OrderStatus("INVALID"))
		assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	})
}
