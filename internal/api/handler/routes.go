package handler

import (
	"net/http"

	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/api/handler/router"
	"github.com/thomas/order-management-api/internal/usecases/analyzing"
	"github.com/thomas/order-management-api/internal/usecases/catalog"
	"github.com/thomas/order-management-api/internal/usecases/customer"
	"github.com/thomas/order-management-api/internal/usecases/ordering"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Products(service catalog.CatalogService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/products",
			Method:  http.MethodGet,
			Handler: ListProducts(service),
		},
		{
			Path:    "/v1/products",
			Method:  http.MethodPost,
			Handler: CreateProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodGet,
			Handler: GetProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodPut,
			Handler: UpdateProduct(service),
		},
		{
			Path:    "/v1/products/:id",
			Method:  http.MethodDelete,
			Handler: DeleteProduct(service),
		},
		{
			// Rota fora de /v1/products para não conflitar com o
			// parâmetro :id no httprouter
			Path:    "/v1/inventory/low-stock",
			Method:  http.MethodGet,
			Handler: ListLowStockProducts(service),
		},
	}
}

func Customers(service customer.CustomerService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/customers",
			Method:  http.MethodGet,
			Handler: ListCustomers(service),
		},
		{
			Path:    "/v1/customers",
			Method:  http.MethodPost,
			Handler: CreateCustomer(service),
		},
		{
			Path:    "/v1/customers/:id",
			Method:  http.MethodGet,
			Handler: GetCustomer(service),
		},
		{
			Path:    "/v1/customers/:id",
			Method:  http.MethodPut,
			Handler: UpdateCustomer(service),
		},
		{
			Path:    "/v1/customers/:id",
			Method:  http.MethodDelete,
			Handler: DeleteCustomer(service),
		},
	}
}

func Orders(service ordering.OrderingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/orders",
			Method:  http.MethodGet,
			Handler: ListOrders(service),
		},
		{
			Path:    "/v1/orders",
			Method:  http.MethodPost,
			Handler: CreateOrder(service),
		},
		{
			Path:    "/v1/orders/:id",
			Method:  http.MethodGet,
			Handler: GetOrder(service),
		},
		{
			Path:    "/v1/orders/:id",
			Method:  http.MethodPut,
			Handler: UpdateOrder(service),
		},
		{
			Path:    "/v1/orders/:id/status",
			Method:  http.MethodPut,
			Handler: UpdateOrderStatus(service),
		},
		{
			Path:    "/v1/orders/:id",
			Method:  http.MethodDelete,
			Handler: DeleteOrder(service),
		},
		{
			// Busca pelo número legível do pedido (ORD-XXXXXX)
			Path:    "/v1/order-number/:orderNumber",
			Method:  http.MethodGet,
			Handler: GetOrderByNumber(service),
		},
	}
}

func Analytics(analyzer analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/product-rankings",
			Method:  http.MethodGet,
			Handler: ProductRankings(analyzer),
		},
		{
			Path:    "/v1/analytics/category-statistics",
			Method:  http.MethodGet,
			Handler: CategoryStatistics(analyzer),
		},
		{
			Path:    "/v1/analytics/category-statistics/advanced",
			Method:  http.MethodGet,
			Handler: AdvancedCategoryStatistics(analyzer),
		},
		{
			Path:    "/v1/analytics/products/above-average",
			Method:  http.MethodGet,
			Handler: ProductsAboveCategoryAverage(analyzer),
		},
		{
			Path:    "/v1/analytics/products/time-range",
			Method:  http.MethodGet,
			Handler: ProductsByTimeRange(analyzer),
		},
		{
			Path:    "/v1/analytics/trends/monthly",
			Method:  http.MethodGet,
			Handler: MonthlyCreationTrends(analyzer),
		},
		{
			Path:    "/v1/analytics/price-distribution",
			Method:  http.MethodGet,
			Handler: PriceDistribution(analyzer),
		},
		{
			Path:    "/v1/analytics/inventory",
			Method:  http.MethodGet,
			Handler: InventoryAnalysis(analyzer),
		},
		{
			Path:    "/v1/analytics/search",
			Method:  http.MethodGet,
			Handler: SearchProducts(analyzer),
		},
		{
			Path:    "/v1/analytics/dashboard",
			Method:  http.MethodGet,
			Handler: AnalyticsDashboard(analyzer),
		},
	}
}

func Dashboard(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/stats",
			Method:  http.MethodGet,
			Handler: DashboardStats(productRepo, customerRepo, orderRepo),
		},
	}
}
