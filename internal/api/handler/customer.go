package handler

import (
	"net/http"

	"github.com/thomas/order-management-api/internal/domain"
	"github.com/thomas/order-management-api/internal/usecases/customer"
	"github.com/thomas/order-management-api/pkg/apiErrors"
	"github.com/thomas/order-management-api/pkg/log"
)

func ListCustomers(service customer.CustomerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		customers, err := service.ListCustomers()
		if err != nil {
			logger.WithError(err).Error("customers: failed to list customers")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao listar clientes", nil)
			return
		}

		writeJSON(w, logger, customers)
	})
}

func GetCustomer(service customer.CustomerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		found, err := service.GetCustomer(id)
		if err != nil {
			logger.WithField("customer_id", id).WithError(err).Error("customers: failed to get customer")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao buscar cliente", nil)
			return
		}
		if found == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "cliente não encontrado", nil)
			return
		}

		writeJSON(w, logger, found)
	})
}

func CreateCustomer(service customer.CustomerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var body domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}

		created, err := service.CreateCustomer(&body)
		if err != nil {
			switch err {
			case customer.ErrEmailRequired, customer.ErrNameRequired:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case customer.ErrEmailAlreadyInUse:
				apiErrors.WriteError(w, apiErrors.ErrResourceConflict, err.Error(), nil)
			default:
				logger.WithError(err).Error("customers: failed to create customer")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao criar cliente", nil)
			}
			return
		}

		logger.WithField("customer_id", created.ID).Info("customers: customer created")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.WithError(err).Error("customers: failed to encode response")
		}
	})
}

func UpdateCustomer(service customer.CustomerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		var body domain.Customer
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "corpo da requisição inválido", nil)
			return
		}
		body.ID = id

		updated, err := service.UpdateCustomer(&body)
		if err != nil {
			switch err {
			case customer.ErrEmailRequired, customer.ErrNameRequired:
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case customer.ErrCustomerNotFound:
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)
			default:
				logger.WithField("customer_id", id).WithError(err).Error("customers: failed to update customer")
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao atualizar cliente", nil)
			}
			return
		}

		writeJSON(w, logger, updated)
	})
}

func DeleteCustomer(service customer.CustomerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id inválido", nil)
			return
		}

		if err := service.DeleteCustomer(id); err != nil {
			logger.WithField("customer_id", id).WithError(err).Error("customers: failed to delete customer")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro ao excluir cliente", nil)
			return
		}

		logger.WithField("customer_id", id).Info("customers: customer deleted")
		w.WriteHeader(http.StatusNoContent)
	})
}
