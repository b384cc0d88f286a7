package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas/order-management-api/infrastructure/repository/mocks"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/internal/usecases/analyzing"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func TestAnalyticsDigestService_RunDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProductRepo := mocks.NewMockProductRepository(ctrl)
	mockProductRepo.EXPECT().LoadCatalog().Return([]domain.Product{
		{
			ID:            1,
			Name:          "Laptop Pro",
			Price:         1299.99,
			StockQuantity: 4,
			Category:      stringPtr("Elektronik"),
			Active:        true,
			CreatedAt:     time.Now().AddDate(0, -1, 0),
		},
	}, nil)

	service := &AnalyticsDigestService{
		analyzer: analyzing.NewService(mockProductRepo),
	}

	err := service.RunDigest()
	require.NoError(t, err)

	running, startedAt, endedAt := service.Status()
	assert.False(t, running)
	assert.False(t, startedAt.IsZero())
	assert.False(t, endedAt.IsZero())
}

func TestAnalyticsDigestService_RunDigest_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProductRepo := mocks.NewMockProductRepository(ctrl)
	mockProductRepo.EXPECT().LoadCatalog().Return(nil, errors.New("banco indisponível"))

	service := &AnalyticsDigestService{
		analyzer: analyzing.NewService(mockProductRepo),
	}

	err := service.RunDigest()
	assert.Error(t, err)
}

func TestAnalyticsDigestService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao repositório é esperada com o cron desabilitado
	mockProductRepo := mocks.NewMockProductRepository(ctrl)

	service := &AnalyticsDigestService{
		analyzer: analyzing.NewService(mockProductRepo),
		config: AnalyticsDigestConfig{
			CronSchedule: "0 6 * * *",
			Enabled:      false,
		},
	}

	err := service.Start(context.Background())
	assert.NoError(t, err)
}
