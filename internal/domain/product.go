// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// UncategorizedLabel agrupa produtos sem categoria em um único bucket
// em todas as visões analíticas
const UncategorizedLabel = "Uncategorized"

type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      *string   `json:"category,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CategoryKey retorna a categoria do produto para fins de agrupamento,
// dobrando categorias ausentes ou vazias no bucket "Uncategorized"
func (p Product) CategoryKey() string {
	if p.Category == nil || *p.Category == "" {
		return UncategorizedLabel
	}
	return *p.Category
}

// ProductFilters são os filtros opcionais da listagem de produtos
type ProductFilters struct {
	Category *string
	MinPrice *float64
	MaxPrice *float64
}
