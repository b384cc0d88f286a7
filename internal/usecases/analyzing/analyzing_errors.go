package analyzing

import "errors"

// Erros de validação de argumentos das operações analíticas. Resultados
// vazios nunca são erros: toda operação devolve sequência ou mapa vazio
// quando nada corresponde
var (
	ErrInvalidMinProductCount = errors.New("minimum product count must not be negative")
	ErrInvalidDateRange       = errors.New("start date must not be after end date")
	ErrInvalidPageSize        = errors.New("page size must be greater than zero")
	ErrInvalidPage            = errors.New("page index must not be negative")
)
