package ordering

import "errors"

// Erros específicos para o contexto de pedidos
var (
	ErrOrderWithoutItems   = errors.New("order must have at least one item")
	ErrInvalidItemQuantity = errors.New("order item quantity must be greater than zero")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCustomerNotFound    = errors.New("order customer not found")
	ErrProductNotFound     = errors.New("order product not found")
)
