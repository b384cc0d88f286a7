package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas/order-management-api/infrastructure/repository/mocks"
	"github.com/thomas/order-management-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newServiceWithMock(t *testing.T) (CatalogService, *mocks.MockProductRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)

	return NewService(productRepo), productRepo
}

func TestCreateProduct(t *testing.T) {
	t.Run("Produto válido nasce ativo", func(t *testing.T) {
		service, productRepo := newServiceWithMock(t)

		productRepo.EXPECT().
			CreateProduct(gomock.Any()).
			DoAndReturn(func(product *domain.Product) (*domain.Product, error) {
				product.ID = 1
				return product, nil
			})

		created, err := service.CreateProduct(&domain.Product{
			Name:          "Laptop Pro 15\"",
			Price:         1299.99,
			StockQuantity: 15,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.True(t, created.Active)
	})

	t.Run("Nome vazio é rejeitado", func(t *testing.T) {
		service, _ := newServiceWithMock(t)

		_, err := service.CreateProduct(&domain.Product{Price: 10})
		assert.ErrorIs(t, err, ErrProductNameRequired)
	})

	t.Run("Preço negativo é rejeitado", func(t *testing.T) {
		service, _ := newServiceWithMock(t)

		_, err := service.CreateProduct(&domain.Product{Name: "Produto", Price: -1})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Estoque negativo é rejeitado", func(t *testing.T) {
		service, _ := newServiceWithMock(t)

		_, err := service.CreateProduct(&domain.Product{Name: "Produto", Price: 10, StockQuantity: -5})
		assert.ErrorIs(t, err, ErrInvalidStockQuantity)
	})
}

func TestDeactivateProduct(t *testing.T) {
	service, productRepo := newServiceWithMock(t)

	productRepo.EXPECT().DeactivateProduct(int64(3)).Return(nil)

	err := service.DeactivateProduct(3)
	assert.NoError(t, err)
}

func TestListProducts(t *testing.T) {
	service, productRepo := newServiceWithMock(t)

	category := "Elektronik"
	filters := &domain.ProductFilters{Category: &category}

	productRepo.EXPECT().
		ListProducts(filters).
		Return([]*domain.Product{{ID: 1, Name: "Laptop Pro"}}, nil)

	products, err := service.ListProducts(filters)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
