package analyzing

import (
	"time"

	"github.com/thomas/order-management-api/internal/domain"
)

// Analyzer define as operações analíticas de leitura sobre o catálogo de
// produtos. Todas são funções puras de um snapshot em memória: nenhuma
// mantém estado entre chamadas e nenhuma escreve no catálogo
type Analyzer interface {
	// ProductRankings calcula as posições ordinais por categoria e globais
	// de todos os produtos ativos, por preço decrescente
	ProductRankings() ([]domain.ProductRanking, error)

	// CategoryStatistics agrega contagem e preço médio por categoria,
	// descartando grupos com menos de minProductCount produtos
	CategoryStatistics(minProductCount int) ([]domain.CategoryStatistics, error)

	// AdvancedCategoryStatistics agrega as estatísticas completas por
	// categoria, ordenadas por valor total decrescente
	AdvancedCategoryStatistics() ([]domain.CategoryStatistics, error)

	// ProductsAboveCategoryAverage retorna os produtos ativos com preço
	// estritamente acima da média da sua própria categoria
	ProductsAboveCategoryAverage() ([]domain.Product, error)

	// ProductsByTimeRange retorna os produtos criados dentro do intervalo
	ProductsByTimeRange(startDate, endDate time.Time) ([]domain.Product, error)

	// MonthlyCreationTrends conta os produtos criados por mês ("YYYY-MM")
	// no último ano
	MonthlyCreationTrends() (map[string]int, error)

	// PriceDistribution agrupa os produtos ativos em faixas fixas de preço
	PriceDistribution() ([]domain.PriceDistributionBucket, error)

	// InventoryAnalysis calcula o valor de estoque por categoria
	InventoryAnalysis() ([]domain.InventoryRow, error)

	// SearchProducts busca por substring em nome e descrição, ordenada por
	// relevância e paginada
	SearchProducts(term string, page, size int) (*domain.ProductSearchResult, error)

	// DashboardAnalytics compõe as visões analíticas em um único resultado
	DashboardAnalytics() (*domain.DashboardAnalytics, error)
}
