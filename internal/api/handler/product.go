package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/internal/usecases/catalog"
	"github.com/thomas/order-management-api/pkg/apiErrors"
	"github.com/thomas/order-management-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func ListProducts(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseProductFilters(r)
		if err != nil {
			logger.WithError(err).Warn("products: invalid filter parameter")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		products, err := service.ListProducts(filters)
		if err != nil {
			logger.WithError(err).Error("products: failed to list products")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao listar produtos", nil)
			return
		}

		writeJSON(w, logger, products)
	})
}

func GetProduct(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		product, err := service.GetProduct(id)
		if err != nil {
			logger.WithField("product_id", id).WithError(err).Error("products: failed to get product")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao buscar produto", nil)
			return
		}
		if product == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "produto não encontrado", nil)
			return
		}

		writeJSON(w, logger, product)
	})
}

func CreateProduct(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		created, err := service.CreateProduct(&product)
		if err != nil {
			switch err {
			case catalog.ErrProductNameRequired, catalog.ErrInvalidPrice, catalog.ErrInvalidStockQuantity:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			default:
				logger.WithError(err).Error("products: failed to create product")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao criar produto", nil)
			}
			return
		}

		logger.WithField("product_id", created.ID).Info("products: product created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("products: failed to encode response")
		}
	})
}

func UpdateProduct(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		var product domain.Product
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}
		product.ID = id

		updated, err := service.UpdateProduct(&product)
		if err != nil {
			switch err {
			case catalog.ErrProductNameRequired, catalog.ErrInvalidPrice, catalog.ErrInvalidStockQuantity:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			default:
				logger.WithField("product_id", id).WithError(err).Error("products: failed to update product")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao atualizar produto", nil)
			}
			return
		}
		if updated == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "produto não encontrado", nil)
			return
		}

		writeJSON(w, logger, updated)
	})
}

// DeleteProduct faz a exclusão lógica: o produto é desativado e sai das
// visões analíticas, mas permanece registrado
func DeleteProduct(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		if err := service.DeactivateProduct(id); err != nil {
			logger.WithField("product_id", id).WithError(err).Error("products: failed to deactivate product")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao desativar produto", nil)
			return
		}

		logger.WithField("product_id", id).Info("products: product deactivated")
		w.WriteHeader(http.StatusNoContent)
	})
}

func ListLowStockProducts(service catalog.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		products, err := service.ListLowStockProducts()
		if err != nil {
			logger.WithError(err).Error("products: failed to list low stock products")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao listar produtos com estoque baixo", nil)
			return
		}

		writeJSON(w, logger, products)
	})
}

func parseProductFilters(r *http.Request) (*domain.ProductFilters, error) {
	filters := &domain.ProductFilters{}

	if category := r.URL.Query().Get("category"); category != "" {
		filters.Category = &category
	}

	if minPrice := r.URL.Query().Get("min_price"); minPrice != "" {
		value, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			return nil, err
		}
		filters.MinPrice = &value
	}

	if maxPrice := r.URL.Query().Get("max_price"); maxPrice != "" {
		value, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			return nil, err
		}
		filters.MaxPrice = &value
	}

	return filters, nil
}

// pathID extrai e converte o parâmetro :id da rota
func pathID(r *http.Request) (int64, error) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	return strconv.ParseInt(id, 10, 64)
}

// writeJSON serializa a resposta com Content-Type adequado
func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("handler: failed to encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
