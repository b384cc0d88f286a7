package catalog

import "errors"

// Erros de validação do catálogo
var (
	ErrProductNameRequired  = errors.New("product name is required")
	ErrInvalidPrice         = errors.New("product price must not be negative")
	ErrInvalidStockQuantity = errors.New("stock quantity must not be negative")
)
