package domain

import "time"

// ProductRanking é a visão de um produto com suas posições ordinais por
// categoria e globais, calculadas sobre os produtos ativos
type ProductRanking struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Category             string    `json:"category"`
	Price                float64   `json:"price"`
	StockQuantity        int       `json:"stock_quantity"`
	CreatedAt            time.Time `json:"created_at"`
	CategoryRank         int       `json:"category_rank"`
	OverallRank          int       `json:"overall_rank"`
	CategoryAveragePrice float64   `json:"category_average_price"`
	PriceRatio           *float64  `json:"price_ratio,omitempty"` // Ausente quando a média da categoria é zero ou inválida
}

// CategoryStatistics agrega contagem e preços por categoria. Os campos
// opcionais só são preenchidos pela variante avançada
type CategoryStatistics struct {
	Category     string   `json:"category"`
	ProductCount int      `json:"product_count"`
	AveragePrice float64  `json:"average_price"`
	TotalValue   *float64 `json:"total_value,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	TotalStock   *int     `json:"total_stock,omitempty"`
}

type PriceDistributionBucket struct {
	PriceCategory string  `json:"price_category"`
	ProductCount  int     `json:"product_count"`
	AveragePrice  float64 `json:"average_price"`
}

type InventoryRow struct {
	Category            string  `json:"category"`
	ProductCount        int     `json:"product_count"`
	TotalStock          int     `json:"total_stock"`
	InventoryValue      float64 `json:"inventory_value"`
	AverageProductValue float64 `json:"average_product_value"`
}

// ProductSearchResult é uma página de produtos ordenada por relevância
type ProductSearchResult struct {
	Products   []Product `json:"products"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
}

// PerformanceMetrics é o snapshot leve de desempenho incluído no dashboard
type PerformanceMetrics struct {
	TotalProducts  int       `json:"total_products"`
	ActiveProducts int       `json:"active_products"`
	CategoryCount  int       `json:"category_count"`
	DurationMs     int64     `json:"query_execution_time_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// DashboardAnalytics reúne as visões analíticas em um único resultado
type DashboardAnalytics struct {
	CategoryStatistics []CategoryStatistics      `json:"category_statistics"`
	InventoryAnalysis  []InventoryRow            `json:"inventory_analysis"`
	PriceDistribution  []PriceDistributionBucket `json:"price_distribution"`
	MonthlyTrends      map[string]int            `json:"monthly_trends"`
	PerformanceMetrics PerformanceMetrics        `json:"performance_metrics"`
	GeneratedAt        time.Time                 `json:"generated_at"`
}

// DashboardStats são os contadores básicos das entidades do sistema
type DashboardStats struct {
	TotalCustomers   int                 `json:"total_customers"`
	TotalProducts    int                 `json:"total_products"`
	TotalOrders      int                 `json:"total_orders"`
	OrdersByStatus   map[OrderStatus]int `json:"orders_by_status"`
	TotalRevenue     float64             `json:"total_revenue"`
	PendingRevenue   float64             `json:"pending_revenue"`
	LowStockProducts int                 `json:"low_stock_products"`
}
