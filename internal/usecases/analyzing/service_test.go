package analyzing

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas/order-management-api/infrastructure/repository/mocks"
	"github.com/thomas/order-management-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func product(id int64, name string, price float64, category *string, active bool) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          name,
		Price:         price,
		StockQuantity: 10,
		Category:      category,
		Active:        active,
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newAnalyzer(t *testing.T, catalog []domain.Product) Analyzer {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockProductRepository(ctrl)
	mockRepo.EXPECT().LoadCatalog().Return(catalog, nil).AnyTimes()

	return NewService(mockRepo)
}

func TestProductRankings(t *testing.T) {
	t.Run("Calcula posições por categoria e globais com médias e razões", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Produto A", 100, stringPtr("X"), true),
			product(2, "Produto B", 300, stringPtr("X"), true),
			product(3, "Produto C", 50, stringPtr("Y"), true),
		}

		rankings, err := newAnalyzer(t, catalog).ProductRankings()
		require.NoError(t, err)
		require.Len(t, rankings, 3)

		// Categoria X: B (300) antes de A (100)
		assert.Equal(t, int64(2), rankings[0].ID)
		assert.Equal(t, 1, rankings[0].CategoryRank)
		assert.Equal(t, 1, rankings[0].OverallRank)
		assert.Equal(t, 200.0, rankings[0].CategoryAveragePrice)
		require.NotNil(t, rankings[0].PriceRatio)
		assert.Equal(t, 1.5, *rankings[0].PriceRatio)

		assert.Equal(t, int64(1), rankings[1].ID)
		assert.Equal(t, 2, rankings[1].CategoryRank)
		assert.Equal(t, 2, rankings[1].OverallRank)
		require.NotNil(t, rankings[1].PriceRatio)
		assert.Equal(t, 0.5, *rankings[1].PriceRatio)

		// Categoria Y: o contador de posição reinicia
		assert.Equal(t, int64(3), rankings[2].ID)
		assert.Equal(t, 1, rankings[2].CategoryRank)
		assert.Equal(t, 3, rankings[2].OverallRank)
		require.NotNil(t, rankings[2].PriceRatio)
		assert.Equal(t, 1.0, *rankings[2].PriceRatio)
	})

	t.Run("Empates de preço são resolvidos por id crescente", func(t *testing.T) {
		catalog := []domain.Product{
			product(7, "Produto G", 100, stringPtr("X"), true),
			product(2, "Produto B", 100, stringPtr("X"), true),
			product(5, "Produto E", 100, stringPtr("X"), true),
		}

		rankings, err := newAnalyzer(t, catalog).ProductRankings()
		require.NoError(t, err)
		require.Len(t, rankings, 3)

		assert.Equal(t, int64(2), rankings[0].ID)
		assert.Equal(t, int64(5), rankings[1].ID)
		assert.Equal(t, int64(7), rankings[2].ID)
		for i, ranking := range rankings {
			assert.Equal(t, i+1, ranking.CategoryRank)
			assert.Equal(t, i+1, ranking.OverallRank)
		}
	})

	t.Run("Produtos inativos ficam fora do ranking e das médias", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Ativo", 100, stringPtr("X"), true),
			product(2, "Inativo", 900, stringPtr("X"), false),
		}

		rankings, err := newAnalyzer(t, catalog).ProductRankings()
		require.NoError(t, err)
		require.Len(t, rankings, 1)

		assert.Equal(t, int64(1), rankings[0].ID)
		assert.Equal(t, 100.0, rankings[0].CategoryAveragePrice)
	})

	t.Run("Produtos sem categoria caem no grupo Uncategorized", func(t *testing.T) {
		empty := ""
		catalog := []domain.Product{
			product(1, "Sem categoria", 80, nil, true),
			{ID: 2, Name: "Categoria vazia", Price: 40, StockQuantity: 1, Category: &empty, Active: true},
		}

		rankings, err := newAnalyzer(t, catalog).ProductRankings()
		require.NoError(t, err)
		require.Len(t, rankings, 2)

		assert.Equal(t, domain.UncategorizedLabel, rankings[0].Category)
		assert.Equal(t, domain.UncategorizedLabel, rankings[1].Category)
		assert.Equal(t, 1, rankings[0].CategoryRank)
		assert.Equal(t, 2, rankings[1].CategoryRank)
	})

	t.Run("Razão de preço ausente quando a média da categoria é zero", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Brinde", 0, stringPtr("Brindes"), true),
		}

		rankings, err := newAnalyzer(t, catalog).ProductRankings()
		require.NoError(t, err)
		require.Len(t, rankings, 1)

		assert.Nil(t, rankings[0].PriceRatio)
	})

	t.Run("Catálogo vazio resulta em lista vazia", func(t *testing.T) {
		rankings, err := newAnalyzer(t, nil).ProductRankings()
		require.NoError(t, err)
		assert.Empty(t, rankings)
	})

	t.Run("Falha do repositório é propagada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockProductRepository(ctrl)
		mockRepo.EXPECT().LoadCatalog().Return(nil, errors.New("conexão perdida"))

		_, err := NewService(mockRepo).ProductRankings()
		assert.Error(t, err)
	})
}

func TestCategoryStatistics(t *testing.T) {
	catalog := []domain.Product{
		product(1, "A", 100, stringPtr("X"), true),
		product(2, "B", 300, stringPtr("X"), true),
		product(3, "C", 50, stringPtr("Y"), true),
	}

	t.Run("Agrega contagem e média por categoria, maiores grupos primeiro", func(t *testing.T) {
		statistics, err := newAnalyzer(t, catalog).CategoryStatistics(0)
		require.NoError(t, err)
		require.Len(t, statistics, 2)

		assert.Equal(t, "X", statistics[0].Category)
		assert.Equal(t, 2, statistics[0].ProductCount)
		assert.Equal(t, 200.0, statistics[0].AveragePrice)
		assert.Nil(t, statistics[0].TotalValue)

		assert.Equal(t, "Y", statistics[1].Category)
		assert.Equal(t, 1, statistics[1].ProductCount)
	})

	t.Run("Grupos abaixo do mínimo são descartados", func(t *testing.T) {
		statistics, err := newAnalyzer(t, catalog).CategoryStatistics(2)
		require.NoError(t, err)
		require.Len(t, statistics, 1)
		assert.Equal(t, "X", statistics[0].Category)
	})

	t.Run("Mínimo negativo é rejeitado", func(t *testing.T) {
		_, err := newAnalyzer(t, catalog).CategoryStatistics(-1)
		assert.ErrorIs(t, err, ErrInvalidMinProductCount)
	})

	t.Run("Empate de contagem desempata por nome da categoria", func(t *testing.T) {
		tied := []domain.Product{
			product(1, "A", 10, stringPtr("Zeta"), true),
			product(2, "B", 10, stringPtr("Alfa"), true),
		}

		statistics, err := newAnalyzer(t, tied).CategoryStatistics(0)
		require.NoError(t, err)
		require.Len(t, statistics, 2)
		assert.Equal(t, "Alfa", statistics[0].Category)
		assert.Equal(t, "Zeta", statistics[1].Category)
	})
}

func TestAdvancedCategoryStatistics(t *testing.T) {
	t.Run("Preenche totais e ordena por valor total decrescente", func(t *testing.T) {
		catalog := []domain.Product{
			{ID: 1, Name: "A", Price: 100, StockQuantity: 2, Category: stringPtr("X"), Active: true},
			{ID: 2, Name: "B", Price: 10, StockQuantity: 3, Category: stringPtr("X"), Active: true},
			{ID: 3, Name: "C", Price: 500, StockQuantity: 1, Category: stringPtr("Y"), Active: true},
		}

		statistics, err := newAnalyzer(t, catalog).AdvancedCategoryStatistics()
		require.NoError(t, err)
		require.Len(t, statistics, 2)

		// Y: 500*1 = 500 > X: 100*2 + 10*3 = 230
		assert.Equal(t, "Y", statistics[0].Category)
		require.NotNil(t, statistics[0].TotalValue)
		assert.Equal(t, 500.0, *statistics[0].TotalValue)

		assert.Equal(t, "X", statistics[1].Category)
		require.NotNil(t, statistics[1].TotalValue)
		assert.Equal(t, 230.0, *statistics[1].TotalValue)
		assert.Equal(t, 10.0, *statistics[1].MinPrice)
		assert.Equal(t, 100.0, *statistics[1].MaxPrice)
		assert.Equal(t, 5, *statistics[1].TotalStock)
	})

	t.Run("Catálogo vazio resulta em lista vazia", func(t *testing.T) {
		statistics, err := newAnalyzer(t, nil).AdvancedCategoryStatistics()
		require.NoError(t, err)
		assert.Empty(t, statistics)
	})
}

func TestProductsAboveCategoryAverage(t *testing.T) {
	t.Run("Retorna apenas produtos estritamente acima da média do grupo", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "A", 100, stringPtr("X"), true),
			product(2, "B", 300, stringPtr("X"), true),
			product(3, "C", 50, stringPtr("Y"), true),
		}

		above, err := newAnalyzer(t, catalog).ProductsAboveCategoryAverage()
		require.NoError(t, err)

		// X tem média 200: somente B. Y tem um produto: preço igual à média
		require.Len(t, above, 1)
		assert.Equal(t, int64(2), above[0].ID)
	})

	t.Run("Produtos com preços idênticos nunca superam a média", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "A", 100, stringPtr("X"), true),
			product(2, "B", 100, stringPtr("X"), true),
		}

		above, err := newAnalyzer(t, catalog).ProductsAboveCategoryAverage()
		require.NoError(t, err)
		assert.Empty(t, above)
	})
}

func TestProductsByTimeRange(t *testing.T) {
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	older := product(1, "Antigo", 10, stringPtr("X"), true)
	older.CreatedAt = base.AddDate(0, -2, 0)

	inside := product(2, "Dentro", 20, stringPtr("X"), true)
	inside.CreatedAt = base

	inactive := product(3, "Inativo dentro", 30, stringPtr("X"), false)
	inactive.CreatedAt = base.AddDate(0, 0, 5)

	catalog := []domain.Product{older, inside, inactive}

	t.Run("Limites inclusivos e produtos inativos contam", func(t *testing.T) {
		products, err := newAnalyzer(t, catalog).ProductsByTimeRange(base, base.AddDate(0, 0, 5))
		require.NoError(t, err)
		require.Len(t, products, 2)

		// Mais recentes primeiro
		assert.Equal(t, int64(3), products[0].ID)
		assert.Equal(t, int64(2), products[1].ID)
	})

	t.Run("Intervalo sem produtos resulta em lista vazia", func(t *testing.T) {
		products, err := newAnalyzer(t, catalog).ProductsByTimeRange(
			base.AddDate(1, 0, 0), base.AddDate(1, 1, 0),
		)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Início após o fim é rejeitado", func(t *testing.T) {
		_, err := newAnalyzer(t, catalog).ProductsByTimeRange(base.AddDate(0, 1, 0), base)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestMonthlyCreationTrends(t *testing.T) {
	now := time.Now()

	recent := product(1, "Recente", 10, stringPtr("X"), true)
	recent.CreatedAt = now.AddDate(0, -1, 0)

	sameMonth := product(2, "Mesmo mês", 20, stringPtr("X"), false)
	sameMonth.CreatedAt = now.AddDate(0, -1, 0)

	ancient := product(3, "Fora da janela", 30, stringPtr("X"), true)
	ancient.CreatedAt = now.AddDate(-2, 0, 0)

	trends, err := newAnalyzer(t, []domain.Product{recent, sameMonth, ancient}).MonthlyCreationTrends()
	require.NoError(t, err)

	key := recent.CreatedAt.Format("2006-01")
	assert.Equal(t, 2, trends[key], "produtos inativos também contam na tendência")
	assert.Len(t, trends, 1, "criações fora do último ano ficam fora")
}

func TestPriceDistribution(t *testing.T) {
	t.Run("Um produto em cada faixa de preço", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Barato", 10, stringPtr("X"), true),
			product(2, "Médio", 60, stringPtr("X"), true),
			product(3, "Premium", 250, stringPtr("X"), true),
			product(4, "Luxo", 600, stringPtr("X"), true),
		}

		buckets, err := newAnalyzer(t, catalog).PriceDistribution()
		require.NoError(t, err)
		require.Len(t, buckets, 4)

		assert.Equal(t, "Budget (< 50€)", buckets[0].PriceCategory)
		assert.Equal(t, "Mid-Range (50-200€)", buckets[1].PriceCategory)
		assert.Equal(t, "Premium (200-500€)", buckets[2].PriceCategory)
		assert.Equal(t, "Luxury (> 500€)", buckets[3].PriceCategory)
		for _, bucket := range buckets {
			assert.Equal(t, 1, bucket.ProductCount)
		}
	})

	t.Run("Limites das faixas pertencem à faixa superior", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Limite 50", 50, stringPtr("X"), true),
			product(2, "Limite 200", 200, stringPtr("X"), true),
			product(3, "Limite 500", 500, stringPtr("X"), true),
		}

		buckets, err := newAnalyzer(t, catalog).PriceDistribution()
		require.NoError(t, err)
		require.Len(t, buckets, 3)

		assert.Equal(t, "Mid-Range (50-200€)", buckets[0].PriceCategory)
		assert.Equal(t, "Premium (200-500€)", buckets[1].PriceCategory)
		assert.Equal(t, "Luxury (> 500€)", buckets[2].PriceCategory)
	})

	t.Run("Faixas sem produtos não aparecem", func(t *testing.T) {
		catalog := []domain.Product{
			product(1, "Barato", 10, stringPtr("X"), true),
			product(2, "Também barato", 20, stringPtr("X"), true),
		}

		buckets, err := newAnalyzer(t, catalog).PriceDistribution()
		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, 2, buckets[0].ProductCount)
		assert.Equal(t, 15.0, buckets[0].AveragePrice)
	})
}

func TestInventoryAnalysis(t *testing.T) {
	catalog := []domain.Product{
		{ID: 1, Name: "A", Price: 100, StockQuantity: 2, Category: stringPtr("X"), Active: true},
		{ID: 2, Name: "B", Price: 50, StockQuantity: 10, Category: stringPtr("Y"), Active: true},
		{ID: 3, Name: "Inativo", Price: 999, StockQuantity: 99, Category: stringPtr("X"), Active: false},
	}

	inventory, err := newAnalyzer(t, catalog).InventoryAnalysis()
	require.NoError(t, err)
	require.Len(t, inventory, 2)

	// Y: 50*10 = 500 > X: 100*2 = 200; o inativo não entra
	assert.Equal(t, "Y", inventory[0].Category)
	assert.Equal(t, 500.0, inventory[0].InventoryValue)
	assert.Equal(t, 10, inventory[0].TotalStock)

	assert.Equal(t, "X", inventory[1].Category)
	assert.Equal(t, 200.0, inventory[1].InventoryValue)
	assert.Equal(t, 200.0, inventory[1].AverageProductValue)
}

func TestSearchProducts(t *testing.T) {
	laptop := product(1, "Laptop Pro", 1200, stringPtr("Elektronik"), true)
	laptop.Description = "Notebook de alto desempenho"

	bag := product(2, "Mochila", 60, stringPtr("Zubehör"), true)
	bag.Description = "Compartimento acolchoado para laptop"

	mouse := product(3, "Mouse", 25, stringPtr("Elektronik"), true)
	mouse.Description = "Mouse sem fio"

	inactive := product(4, "Laptop antigo", 300, stringPtr("Elektronik"), false)

	catalog := []domain.Product{laptop, bag, mouse, inactive}

	t.Run("Ocorrência no nome vem antes de ocorrência na descrição", func(t *testing.T) {
		result, err := newAnalyzer(t, catalog).SearchProducts("laptop", 0, 10)
		require.NoError(t, err)

		require.Len(t, result.Products, 2)
		assert.Equal(t, int64(1), result.Products[0].ID)
		assert.Equal(t, int64(2), result.Products[1].ID)
		assert.Equal(t, 2, result.TotalCount)
	})

	t.Run("Busca é insensível a maiúsculas", func(t *testing.T) {
		result, err := newAnalyzer(t, catalog).SearchProducts("LAPTOP", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalCount)
	})

	t.Run("Página além do intervalo volta vazia com contagem correta", func(t *testing.T) {
		result, err := newAnalyzer(t, catalog).SearchProducts("laptop", 5, 10)
		require.NoError(t, err)

		assert.Empty(t, result.Products)
		assert.Equal(t, 2, result.TotalCount)
		assert.Equal(t, 5, result.Page)
	})

	t.Run("Paginação fatia os resultados ordenados", func(t *testing.T) {
		result, err := newAnalyzer(t, catalog).SearchProducts("o", 1, 1)
		require.NoError(t, err)

		assert.Len(t, result.Products, 1)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 1, result.PageSize)
	})

	t.Run("Produtos inativos nunca aparecem na busca", func(t *testing.T) {
		result, err := newAnalyzer(t, catalog).SearchProducts("antigo", 0, 10)
		require.NoError(t, err)
		assert.Zero(t, result.TotalCount)
	})

	t.Run("Tamanho de página inválido é rejeitado", func(t *testing.T) {
		_, err := newAnalyzer(t, catalog).SearchProducts("laptop", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})

	t.Run("Página negativa é rejeitada", func(t *testing.T) {
		_, err := newAnalyzer(t, catalog).SearchProducts("laptop", -1, 10)
		assert.ErrorIs(t, err, ErrInvalidPage)
	})
}

func TestDashboardAnalytics(t *testing.T) {
	t.Run("Compõe todas as visões a partir de um único snapshot", func(t *testing.T) {
		now := time.Now()

		first := product(1, "A", 100, stringPtr("X"), true)
		first.CreatedAt = now.AddDate(0, -1, 0)

		second := product(2, "B", 300, stringPtr("Y"), true)
		second.CreatedAt = now.AddDate(0, -2, 0)

		inactive := product(3, "C", 50, stringPtr("X"), false)
		inactive.CreatedAt = now.AddDate(0, -3, 0)

		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockProductRepository(ctrl)
		// Uma única leitura do catálogo alimenta todas as sub-computações
		mockRepo.EXPECT().LoadCatalog().Return([]domain.Product{first, second, inactive}, nil).Times(1)

		dashboard, err := NewService(mockRepo).DashboardAnalytics()
		require.NoError(t, err)

		assert.Len(t, dashboard.CategoryStatistics, 2)
		assert.Len(t, dashboard.InventoryAnalysis, 2)
		assert.NotEmpty(t, dashboard.PriceDistribution)
		assert.NotEmpty(t, dashboard.MonthlyTrends)

		assert.Equal(t, 3, dashboard.PerformanceMetrics.TotalProducts)
		assert.Equal(t, 2, dashboard.PerformanceMetrics.ActiveProducts)
		assert.Equal(t, 2, dashboard.PerformanceMetrics.CategoryCount)
		assert.False(t, dashboard.GeneratedAt.IsZero())
	})

	t.Run("Catálogo vazio gera dashboard zerado sem erro", func(t *testing.T) {
		dashboard, err := newAnalyzer(t, nil).DashboardAnalytics()
		require.NoError(t, err)

		assert.Empty(t, dashboard.CategoryStatistics)
		assert.Empty(t, dashboard.InventoryAnalysis)
		assert.Empty(t, dashboard.PriceDistribution)
		assert.Empty(t, dashboard.MonthlyTrends)
		assert.Zero(t, dashboard.PerformanceMetrics.TotalProducts)
	})
}
