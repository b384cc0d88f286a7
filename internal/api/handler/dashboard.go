package handler

import (
	"net/http"

	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/pkg/apiErrors"
	"github.com/thomas/order-management-api/pkg/log"
)

// DashboardStats reúne os contadores operacionais básicos do sistema.
// As visões analíticas do catálogo ficam em /v1/analytics/dashboard
func DashboardStats(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("dashboard: fetching stats")

		totalCustomers, err := customerRepo.CountCustomers()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to count customers")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao contar clientes", nil)
			return
		}

		totalProducts, err := productRepo.CountProducts()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to count products")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao contar produtos", nil)
			return
		}

		totalOrders, err := orderRepo.CountOrders()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to count orders")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao contar pedidos", nil)
			return
		}

		ordersByStatus, err := orderRepo.CountOrdersByStatus()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to count orders by status")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao contar pedidos por status", nil)
			return
		}

		totalRevenue, err := orderRepo.SumTotalAmountByStatus(domain.OrderStatusDelivered)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to sum delivered revenue")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao somar receita entregue", nil)
			return
		}

		pendingRevenue, err := orderRepo.SumTotalAmountByStatus(domain.OrderStatusPending)
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to sum pending revenue")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao somar receita pendente", nil)
			return
		}

		lowStock, err := productRepo.ListLowStockProducts()
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to list low stock products")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao listar produtos com estoque baixo", nil)
			return
		}

		stats := domain.DashboardStats{
			TotalCustomers:   totalCustomers,
			TotalProducts:    totalProducts,
			TotalOrders:      totalOrders,
			OrdersByStatus:   ordersByStatus,
			TotalRevenue:     totalRevenue,
			PendingRevenue:   pendingRevenue,
			LowStockProducts: len(lowStock),
		}

		writeJSON(w, logger, stats)
	})
}
