package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/internal/usecases/ordering"
	"github.com/thomas/order-management-api/pkg/apiErrors"
	"github.com/thomas/order-management-api/pkg/log"
)

func ListOrders(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		orders, err := service.ListOrders()
		if err != nil {
			logger.WithError(err).Error("orders: failed to list orders")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao listar pedidos", nil)
			return
		}

		writeJSON(w, logger, orders)
	})
}

func GetOrder(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		order, err := service.GetOrder(id)
		if err != nil {
			logger.WithField("order_id", id).WithError(err).Error("orders: failed to get order")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao buscar pedido", nil)
			return
		}
		if order == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "pedido não encontrado", nil)
			return
		}

		writeJSON(w, logger, order)
	})
}

func GetOrderByNumber(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		orderNumber := httprouter.ParamsFromContext(r.Context()).ByName("orderNumber")

		order, err := service.GetOrderByNumber(orderNumber)
		if err != nil {
			logger.WithField("order_number", orderNumber).WithError(err).Error("orders: failed to get order by number")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao buscar pedido", nil)
			return
		}
		if order == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "pedido não encontrado", nil)
			return
		}

		writeJSON(w, logger, order)
	})
}

func CreateOrder(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var body domain.Order
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		created, err := service.CreateOrder(&body)
		if err != nil {
			switch err {
			case ordering.ErrOrderWithoutItems, ordering.ErrInvalidItemQuantity, ordering.ErrInvalidOrderStatus:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case ordering.ErrCustomerNotFound, ordering.ErrProductNotFound:
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
			default:
				logger.WithError(err).Error("orders: failed to create order")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao criar pedido", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"order_id":     created.ID,
			"order_number": created.OrderNumber,
		}).Info("orders: order created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("orders: failed to encode response")
		}
	})
}

func UpdateOrder(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		var body domain.Order
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}
		body.ID = id

		updated, err := service.UpdateOrder(&body)
		if err != nil {
			switch err {
			case ordering.ErrInvalidOrderStatus:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			case ordering.ErrOrderNotFound:
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
			default:
				logger.WithField("order_id", id).WithError(err).Error("orders: failed to update order")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao atualizar pedido", nil)
			}
			return
		}

		writeJSON(w, logger, updated)
	})
}

type updateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func UpdateOrderStatus(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		var body updateOrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		if err := service.UpdateOrderStatus(id, body.Status); err != nil {
			switch err {
			case ordering.ErrInvalidOrderStatus:
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			default:
				logger.WithField("order_id", id).WithError(err).Error("orders: failed to update order status")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao atualizar status do pedido", nil)
			}
			return
		}

		logger.WithFields(log.Fields{
			"order_id": id,
			"status":   body.Status,
		}).Info("orders: order status updated")
		w.WriteHeader(http.StatusNoContent)
	})
}

func DeleteOrder(service ordering.OrderingService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		if err := service.DeleteOrder(id); err != nil {
			logger.WithField("order_id", id).WithError(err).Error("orders: failed to delete order")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao excluir pedido", nil)
			return
		}

		logger.WithField("order_id", id).Info("orders: order deleted")
		w.WriteHeader(http.StatusNoContent)
	})
}
