package handler

import (
	"net/http"
	"strconv"

	"github.com/thomas/order-management-api/internal/usecases/analyzing"
	"github.com/thomas/order-management-api/pkg/apiErrors"
	"github.com/thomas/order-management-api/pkg/log"
	"github.com/thomas/order-management-api/pkg/utils"
)

func ProductRankings(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analytics: computing product rankings")

		rankings, err := analyzer.ProductRankings()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute product rankings")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular rankings de produtos", nil)
			return
		}

		writeJSON(w, logger, rankings)
	})
}

func CategoryStatistics(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		minProductCount := 0
		if raw := r.URL.Query().Get("min_product_count"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "min_product_count inválido", nil)
				return
			}
			minProductCount = parsed
		}

		statistics, err := analyzer.CategoryStatistics(minProductCount)
		if err != nil {
			if err == analyzing.ErrInvalidMinProductCount {
				apiErrors.WriteError(w, apiErrors.ErrInvalidArgument, err.Error(), nil)
				return
			}
			logger.WithError(err).Error("analytics: failed to compute category statistics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular estatísticas de categorias", nil)
			return
		}

		writeJSON(w, logger, statistics)
	})
}

func AdvancedCategoryStatistics(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		statistics, err := analyzer.AdvancedCategoryStatistics()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute advanced category statistics")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular estatísticas avançadas", nil)
			return
		}

		writeJSON(w, logger, statistics)
	})
}

func ProductsAboveCategoryAverage(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		products, err := analyzer.ProductsAboveCategoryAverage()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute products above category average")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao filtrar produtos acima da média", nil)
			return
		}

		writeJSON(w, logger, products)
	})
}

func ProductsByTimeRange(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date inválida, use o formato YYYY-MM-DD", nil)
			return
		}

		products, err := analyzer.ProductsByTimeRange(*startDate, *endDate)
		if err != nil {
			if err == analyzing.ErrInvalidDateRange {
				apiErrors.WriteError(w, apiErrors.ErrInvalidArgument, err.Error(), nil)
				return
			}
			logger.WithError(err).Error("analytics: failed to list products by time range")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao listar produtos por período", nil)
			return
		}

		writeJSON(w, logger, products)
	})
}

func MonthlyCreationTrends(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		trends, err := analyzer.MonthlyCreationTrends()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute monthly creation trends")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular tendências mensais", nil)
			return
		}

		writeJSON(w, logger, trends)
	})
}

func PriceDistribution(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		distribution, err := analyzer.PriceDistribution()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute price distribution")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular distribuição de preços", nil)
			return
		}

		writeJSON(w, logger, distribution)
	})
}

func InventoryAnalysis(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		inventory, err := analyzer.InventoryAnalysis()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compute inventory analysis")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao calcular análise de estoque", nil)
			return
		}

		writeJSON(w, logger, inventory)
	})
}

const (
	defaultSearchPage = 0
	defaultSearchSize = 10
)

func SearchProducts(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		term := r.URL.Query().Get("query")

		page := defaultSearchPage
		if raw := r.URL.Query().Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page inválida", nil)
				return
			}
			page = parsed
		}

		size := defaultSearchSize
		if raw := r.URL.Query().Get("size"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "size inválido", nil)
				return
			}
			size = parsed
		}

		result, err := analyzer.SearchProducts(term, page, size)
		if err != nil {
			switch err {
			case analyzing.ErrInvalidPage, analyzing.ErrInvalidPageSize:
				apiErrors.WriteError(w, apiErrors.ErrInvalidArgument, err.Error(), nil)
			default:
				logger.WithError(err).Error("analytics: failed to search products")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao buscar produtos", nil)
			}
			return
		}

		writeJSON(w, logger, result)
	})
}

func AnalyticsDashboard(analyzer analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analytics: composing dashboard")

		dashboard, err := analyzer.DashboardAnalytics()
		if err != nil {
			logger.WithError(err).Error("analytics: failed to compose dashboard")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "erro ao compor o dashboard analítico", nil)
			return
		}

		writeJSON(w, logger, dashboard)
	})
}
