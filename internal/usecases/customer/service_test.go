package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas/order-management-api/infrastructure/repository/mocks"
	"github.com/thomas/order-management-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newServiceWithMock(t *testing.T) (CustomerService, *mocks.MockCustomerRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	customerRepo := mocks.NewMockCustomerRepository(ctrl)

	return NewService(customerRepo), customerRepo
}

func TestCreateCustomer(t *testing.T) {
	t.Run("Cliente válido com e-mail livre é criado", func(t *testing.T) {
		service, customerRepo := newServiceWithMock(t)

		customerRepo.EXPECT().GetCustomerByEmail("anna.schmidt@email.com").Return(nil, nil)
		customerRepo.EXPECT().
			CreateCustomer(gomock.Any()).
			DoAndReturn(func(customer *domain.Customer) (*domain.Customer, error) {
				customer.ID = 2
				return customer, nil
			})

		created, err := service.CreateCustomer(&domain.Customer{
			FirstName: "Anna",
			LastName:  "Schmidt",
			Email:     "anna.schmidt@email.com",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)
	})

	t.Run("E-mail já em uso é rejeitado", func(t *testing.T) {
		service, customerRepo := newServiceWithMock(t)

		customerRepo.EXPECT().
			GetCustomerByEmail("max.mustermann@email.com").
			Return(&domain.Customer{ID: 1, Email: "max.mustermann@email.com"}, nil)

		_, err := service.CreateCustomer(&domain.Customer{
			FirstName: "Max",
			LastName:  "Mustermann",
			Email:     "max.mustermann@email.com",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
	})

	t.Run("E-mail vazio é rejeitado", func(t *testing.T) {
		service, _ := newServiceWithMock(t)

		_, err := service.CreateCustomer(&domain.Customer{FirstName: "Max", LastName: "Mustermann"})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("Nome incompleto é rejeitado", func(t *testing.T) {
		service, _ := newServiceWithMock(t)

		_, err := service.CreateCustomer(&domain.Customer{Email: "max@email.com", FirstName: "Max"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestUpdateCustomer(t *testing.T) {
	t.Run("Cliente inexistente é rejeitado", func(t *testing.T) {
		service, customerRepo := newServiceWithMock(t)

		customerRepo.EXPECT().UpdateCustomer(gomock.Any()).Return(nil, nil)

		_, err := service.UpdateCustomer(&domain.Customer{
			ID:        404,
			FirstName: "Lisa",
			LastName:  "Meyer",
			Email:     "lisa.meyer@email.com",
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})
}
