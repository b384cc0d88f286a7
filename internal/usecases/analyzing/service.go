// Package analyzing implementa o motor analítico do catálogo de produtos.
// Cada operação carrega um snapshot do catálogo em uma única leitura e o
// transforma em memória com passes explícitos de ordenação e agrupamento;
// empates de ranking são sempre resolvidos por id crescente
package analyzing

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/pkg/utils"
)

// Faixas fixas de preço da distribuição. Os rótulos seguem a convenção de
// exibição da implantação original
const (
	budgetLimit   = 50.0
	midRangeLimit = 200.0
	premiumLimit  = 500.0

	budgetLabel   = "Budget (< 50€)"
	midRangeLabel = "Mid-Range (50-200€)"
	premiumLabel  = "Premium (200-500€)"
	luxuryLabel   = "Luxury (> 500€)"
)

type Service struct {
	productRepository repository.ProductRepository
}

func NewService(productRepo repository.ProductRepository) Analyzer {
	return &Service{
		productRepository: productRepo,
	}
}

// loadCatalog busca o snapshot completo do catálogo. Qualquer falha do
// repositório é propagada sem tratamento adicional
func (s *Service) loadCatalog() ([]domain.Product, error) {
	catalog, err := s.productRepository.LoadCatalog()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar o catálogo de produtos")
	}
	return catalog, nil
}

func (s *Service) ProductRankings() ([]domain.ProductRanking, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	rankings := rankProducts(catalog)

	logrus.WithField("rankings", len(rankings)).Debug("analytics: product rankings computed")
	return rankings, nil
}

func (s *Service) CategoryStatistics(minProductCount int) ([]domain.CategoryStatistics, error) {
	if minProductCount < 0 {
		return nil, ErrInvalidMinProductCount
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return aggregateCategories(catalog, minProductCount), nil
}

func (s *Service) AdvancedCategoryStatistics() ([]domain.CategoryStatistics, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return aggregateCategoriesAdvanced(catalog), nil
}

func (s *Service) ProductsAboveCategoryAverage() ([]domain.Product, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return filterAboveCategoryAverage(catalog), nil
}

func (s *Service) ProductsByTimeRange(startDate, endDate time.Time) ([]domain.Product, error) {
	if startDate.After(endDate) {
		return nil, ErrInvalidDateRange
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return productsInRange(catalog, startDate, endDate), nil
}

func (s *Service) MonthlyCreationTrends() (map[string]int, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return monthlyTrends(catalog, now.AddDate(-1, 0, 0), now), nil
}

func (s *Service) PriceDistribution() ([]domain.PriceDistributionBucket, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return distributePrices(catalog), nil
}

func (s *Service) InventoryAnalysis() ([]domain.InventoryRow, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	return analyzeInventory(catalog), nil
}

func (s *Service) SearchProducts(term string, page, size int) (*domain.ProductSearchResult, error) {
	if size <= 0 {
		return nil, ErrInvalidPageSize
	}
	if page < 0 {
		return nil, ErrInvalidPage
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	result := searchCatalog(catalog, term, page, size)

	logrus.WithFields(logrus.Fields{
		"term":  term,
		"page":  page,
		"total": result.TotalCount,
	}).Debug("analytics: product search executed")

	return result, nil
}

// DashboardAnalytics carrega o snapshot uma única vez e dispara as
// sub-computações em goroutines independentes. Como todas leem o mesmo
// snapshot imutável e escrevem apenas na própria saída, a única
// sincronização necessária é o join final
func (s *Service) DashboardAnalytics() (*domain.DashboardAnalytics, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()

	var (
		wg           sync.WaitGroup
		statistics   []domain.CategoryStatistics
		inventory    []domain.InventoryRow
		distribution []domain.PriceDistributionBucket
		trends       map[string]int
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		statistics = aggregateCategoriesAdvanced(catalog)
	}()
	go func() {
		defer wg.Done()
		inventory = analyzeInventory(catalog)
	}()
	go func() {
		defer wg.Done()
		distribution = distributePrices(catalog)
	}()
	go func() {
		defer wg.Done()
		trends = monthlyTrends(catalog, startedAt.AddDate(-1, 0, 0), startedAt)
	}()
	wg.Wait()

	active := 0
	categories := make(map[string]struct{})
	for _, product := range catalog {
		if !product.Active {
			continue
		}
		active++
		categories[product.CategoryKey()] = struct{}{}
	}

	dashboard := &domain.DashboardAnalytics{
		CategoryStatistics: statistics,
		InventoryAnalysis:  inventory,
		PriceDistribution:  distribution,
		MonthlyTrends:      trends,
		PerformanceMetrics: domain.PerformanceMetrics{
			TotalProducts:  len(catalog),
			ActiveProducts: active,
			CategoryCount:  len(categories),
			DurationMs:     time.Since(startedAt).Milliseconds(),
			Timestamp:      time.Now(),
		},
		GeneratedAt: time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"categories":  len(statistics),
		"duration_ms": dashboard.PerformanceMetrics.DurationMs,
	}).Info("analytics: dashboard analytics generated")

	return dashboard, nil
}

// categoryAccumulator acumula soma e contagem de preços em um único passe,
// evitando a recomputação quadrática de uma subquery correlacionada
type categoryAccumulator struct {
	count      int
	priceSum   float64
	minPrice   float64
	maxPrice   float64
	totalValue float64
	totalStock int
}

func accumulateCategories(catalog []domain.Product) map[string]*categoryAccumulator {
	accumulators := make(map[string]*categoryAccumulator)

	for _, product := range catalog {
		if !product.Active {
			continue
		}

		key := product.CategoryKey()
		acc, ok := accumulators[key]
		if !ok {
			acc = &categoryAccumulator{minPrice: product.Price, maxPrice: product.Price}
			accumulators[key] = acc
		}

		acc.count++
		acc.priceSum += product.Price
		acc.totalValue += product.Price * float64(product.StockQuantity)
		acc.totalStock += product.StockQuantity
		if product.Price < acc.minPrice {
			acc.minPrice = product.Price
		}
		if product.Price > acc.maxPrice {
			acc.maxPrice = product.Price
		}
	}

	return accumulators
}

func (a *categoryAccumulator) averagePrice() float64 {
	if a.count == 0 {
		return 0
	}
	return a.priceSum / float64(a.count)
}

func activeProducts(catalog []domain.Product) []domain.Product {
	active := make([]domain.Product, 0, len(catalog))
	for _, product := range catalog {
		if product.Active {
			active = append(active, product)
		}
	}
	return active
}

func rankProducts(catalog []domain.Product) []domain.ProductRanking {
	active := activeProducts(catalog)
	averages := accumulateCategories(catalog)

	// Ranking global: preço decrescente, empate por id crescente
	overall := make([]domain.Product, len(active))
	copy(overall, active)
	sort.Slice(overall, func(i, j int) bool {
		if overall[i].Price != overall[j].Price {
			return overall[i].Price > overall[j].Price
		}
		return overall[i].ID < overall[j].ID
	})

	overallRanks := make(map[int64]int, len(overall))
	for i, product := range overall {
		overallRanks[product.ID] = i + 1
	}

	// Ranking por categoria: a mesma ordenação particionada pela categoria
	byCategory := make([]domain.Product, len(active))
	copy(byCategory, active)
	sort.Slice(byCategory, func(i, j int) bool {
		ci, cj := byCategory[i].CategoryKey(), byCategory[j].CategoryKey()
		if ci != cj {
			return ci < cj
		}
		if byCategory[i].Price != byCategory[j].Price {
			return byCategory[i].Price > byCategory[j].Price
		}
		return byCategory[i].ID < byCategory[j].ID
	})

	rankings := make([]domain.ProductRanking, 0, len(byCategory))
	currentCategory := ""
	categoryRank := 0

	for _, product := range byCategory {
		key := product.CategoryKey()
		if key != currentCategory {
			currentCategory = key
			categoryRank = 0
		}
		categoryRank++

		averagePrice := averages[key].averagePrice()

		ranking := domain.ProductRanking{
			ID:                   product.ID,
			Name:                 product.Name,
			Category:             key,
			Price:                product.Price,
			StockQuantity:        product.StockQuantity,
			CreatedAt:            product.CreatedAt,
			CategoryRank:         categoryRank,
			OverallRank:          overallRanks[product.ID],
			CategoryAveragePrice: averagePrice,
		}

		// A razão de preço fica ausente quando a média é zero ou inválida
		if averagePrice > 0 {
			ratio := utils.RoundWithTwoDecimalPlace(product.Price / averagePrice)
			ranking.PriceRatio = &ratio
		}

		rankings = append(rankings, ranking)
	}

	return rankings
}

func aggregateCategories(catalog []domain.Product, minProductCount int) []domain.CategoryStatistics {
	accumulators := accumulateCategories(catalog)

	statistics := make([]domain.CategoryStatistics, 0, len(accumulators))
	for category, acc := range accumulators {
		if acc.count < minProductCount {
			continue
		}
		statistics = append(statistics, domain.CategoryStatistics{
			Category:     category,
			ProductCount: acc.count,
			AveragePrice: acc.averagePrice(),
		})
	}

	sort.Slice(statistics, func(i, j int) bool {
		if statistics[i].ProductCount != statistics[j].ProductCount {
			return statistics[i].ProductCount > statistics[j].ProductCount
		}
		return statistics[i].Category < statistics[j].Category
	})

	return statistics
}

func aggregateCategoriesAdvanced(catalog []domain.Product) []domain.CategoryStatistics {
	accumulators := accumulateCategories(catalog)

	statistics := make([]domain.CategoryStatistics, 0, len(accumulators))
	for category, acc := range accumulators {
		totalValue := acc.totalValue
		minPrice := acc.minPrice
		maxPrice := acc.maxPrice
		totalStock := acc.totalStock

		statistics = append(statistics, domain.CategoryStatistics{
			Category:     category,
			ProductCount: acc.count,
			AveragePrice: acc.averagePrice(),
			TotalValue:   &totalValue,
			MinPrice:     &minPrice,
			MaxPrice:     &maxPrice,
			TotalStock:   &totalStock,
		})
	}

	// Exposta apenas a ordenação por valor total; o rank por contagem da
	// consulta original nunca chegava à resposta
	sort.Slice(statistics, func(i, j int) bool {
		if *statistics[i].TotalValue != *statistics[j].TotalValue {
			return *statistics[i].TotalValue > *statistics[j].TotalValue
		}
		return statistics[i].Category < statistics[j].Category
	})

	return statistics
}

func filterAboveCategoryAverage(catalog []domain.Product) []domain.Product {
	averages := accumulateCategories(catalog)

	// Um único passe de filtragem consultando a média pré-computada do
	// grupo; categorias de um só produto nunca aparecem, pois o preço
	// iguala a média e a comparação é estrita
	above := make([]domain.Product, 0)
	for _, product := range activeProducts(catalog) {
		if product.Price > averages[product.CategoryKey()].averagePrice() {
			above = append(above, product)
		}
	}

	sort.Slice(above, func(i, j int) bool {
		ci, cj := above[i].CategoryKey(), above[j].CategoryKey()
		if ci != cj {
			return ci < cj
		}
		if above[i].Price != above[j].Price {
			return above[i].Price > above[j].Price
		}
		return above[i].ID < above[j].ID
	})

	return above
}

// productsInRange considera todos os produtos, ativos ou não: a análise
// temporal olha para a criação do registro, não para a vitrine
func productsInRange(catalog []domain.Product, startDate, endDate time.Time) []domain.Product {
	inRange := make([]domain.Product, 0)
	for _, product := range catalog {
		if product.CreatedAt.Before(startDate) || product.CreatedAt.After(endDate) {
			continue
		}
		inRange = append(inRange, product)
	}

	sort.Slice(inRange, func(i, j int) bool {
		if !inRange[i].CreatedAt.Equal(inRange[j].CreatedAt) {
			return inRange[i].CreatedAt.After(inRange[j].CreatedAt)
		}
		return inRange[i].ID < inRange[j].ID
	})

	return inRange
}

func monthlyTrends(catalog []domain.Product, startDate, endDate time.Time) map[string]int {
	trends := make(map[string]int)
	for _, product := range productsInRange(catalog, startDate, endDate) {
		trends[product.CreatedAt.Format("2006-01")]++
	}
	return trends
}

func priceTier(price float64) string {
	switch {
	case price < budgetLimit:
		return budgetLabel
	case price < midRangeLimit:
		return midRangeLabel
	case price < premiumLimit:
		return premiumLabel
	default:
		return luxuryLabel
	}
}

func distributePrices(catalog []domain.Product) []domain.PriceDistributionBucket {
	type bucketAccumulator struct {
		count    int
		priceSum float64
	}

	accumulators := make(map[string]*bucketAccumulator)
	for _, product := range activeProducts(catalog) {
		tier := priceTier(product.Price)
		acc, ok := accumulators[tier]
		if !ok {
			acc = &bucketAccumulator{}
			accumulators[tier] = acc
		}
		acc.count++
		acc.priceSum += product.Price
	}

	buckets := make([]domain.PriceDistributionBucket, 0, len(accumulators))
	for tier, acc := range accumulators {
		buckets = append(buckets, domain.PriceDistributionBucket{
			PriceCategory: tier,
			ProductCount:  acc.count,
			AveragePrice:  acc.priceSum / float64(acc.count),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].AveragePrice < buckets[j].AveragePrice
	})

	return buckets
}

func analyzeInventory(catalog []domain.Product) []domain.InventoryRow {
	accumulators := accumulateCategories(catalog)

	inventory := make([]domain.InventoryRow, 0, len(accumulators))
	for category, acc := range accumulators {
		inventory = append(inventory, domain.InventoryRow{
			Category:            category,
			ProductCount:        acc.count,
			TotalStock:          acc.totalStock,
			InventoryValue:      acc.totalValue,
			AverageProductValue: acc.totalValue / float64(acc.count),
		})
	}

	sort.Slice(inventory, func(i, j int) bool {
		if inventory[i].InventoryValue != inventory[j].InventoryValue {
			return inventory[i].InventoryValue > inventory[j].InventoryValue
		}
		return inventory[i].Category < inventory[j].Category
	})

	return inventory
}

// Níveis de relevância da busca: ocorrência no nome vem antes de
// ocorrência apenas na descrição
const (
	matchTierName        = 1
	matchTierDescription = 2
)

type searchMatch struct {
	product domain.Product
	tier    int
}

func searchCatalog(catalog []domain.Product, term string, page, size int) *domain.ProductSearchResult {
	needle := strings.ToLower(term)

	matches := make([]searchMatch, 0)
	for _, product := range activeProducts(catalog) {
		inName := strings.Contains(strings.ToLower(product.Name), needle)
		inDescription := strings.Contains(strings.ToLower(product.Description), needle)

		switch {
		case inName:
			matches = append(matches, searchMatch{product: product, tier: matchTierName})
		case inDescription:
			matches = append(matches, searchMatch{product: product, tier: matchTierDescription})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		if matches[i].product.Name != matches[j].product.Name {
			return matches[i].product.Name < matches[j].product.Name
		}
		return matches[i].product.ID < matches[j].product.ID
	})

	// Página além do intervalo disponível resulta em página vazia com a
	// contagem total correta
	start := page * size
	end := start + size
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	products := make([]domain.Product, 0, end-start)
	for _, match := range matches[start:end] {
		products = append(products, match.product)
	}

	return &domain.ProductSearchResult{
		Products:   products,
		TotalCount: len(matches),
		Page:       page,
		PageSize:   size,
	}
}
