// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/thomas/order-management-api/infrastructure/database/postgres"
	"github.com/thomas/order-management-api/internal/domain"
)

const (
	productsTable = "products p"

	// LowStockThreshold é o limite de estoque baixo usado no dashboard
	LowStockThreshold = 5
)

var productColumns = []string{
	"p.id",
	"p.name",
	"p.description",
	"p.price",
	"p.stock_quantity",
	"p.category",
	"p.image_url",
	"p.active",
	"p.created_at",
	"p.updated_at",
}

type ProductRepository interface {
	ListProducts(filters *domain.ProductFilters) ([]*domain.Product, error)
	GetProductByID(id int64) (*domain.Product, error)
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(product *domain.Product) (*domain.Product, error)
	DeactivateProduct(id int64) error
	ListLowStockProducts() ([]*domain.Product, error)
	CountProducts() (int, error)

	// LoadCatalog retorna todos os produtos (ativos e inativos) em uma
	// única leitura, o snapshot consistente que o motor analítico consome
	LoadCatalog() ([]domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) ListProducts(filters *domain.ProductFilters) ([]*domain.Product, error) {
	queryBuilder := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"p.active": true}).
		OrderBy("p.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters != nil {
		if filters.Category != nil {
			queryBuilder = queryBuilder.Where(squirrel.Eq{"p.category": *filters.Category})
		}
		if filters.MinPrice != nil {
			queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"p.price": *filters.MinPrice})
		}
		if filters.MaxPrice != nil {
			queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"p.price": *filters.MaxPrice})
		}
	}

	sqlQuery, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProducts(sqlQuery, args...)
}

func (r *productRepository) GetProductByID(id int64) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"p.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	product, err := r.scanProductRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}
	return product, nil
}

func (r *productRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Insert("products").
		Columns(
			"name",
			"description",
			"price",
			"stock_quantity",
			"category",
			"image_url",
			"active",
		).
		Values(
			product.Name,
			product.Description,
			product.Price,
			product.StockQuantity,
			product.Category,
			product.ImageURL,
			product.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return nil, fmt.Errorf("erro ao inserir produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("stock_quantity", product.StockQuantity).
		Set("category", product.Category).
		Set("image_url", product.ImageURL).
		Set("active", product.Active).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": product.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&product.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	return product, nil
}

// DeactivateProduct faz a exclusão lógica do produto (active = false);
// produtos inativos saem de todas as visões analíticas
func (r *productRepository) DeactivateProduct(id int64) error {
	query, args, err := squirrel.
		Update("products").
		Set("active", false).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de desativação: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao desativar produto: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *productRepository) ListLowStockProducts() ([]*domain.Product, error) {
	sqlQuery, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		Where(squirrel.Eq{"p.active": true}).
		Where(squirrel.LtOrEq{"p.stock_quantity": LowStockThreshold}).
		OrderBy("p.stock_quantity ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryProducts(sqlQuery, args...)
}

func (r *productRepository) LoadCatalog() ([]domain.Product, error) {
	sqlQuery, args, err := squirrel.
		Select(productColumns...).
		From(productsTable).
		OrderBy("p.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	catalog := make([]domain.Product, 0)
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		catalog = append(catalog, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return catalog, nil
}

func (r *productRepository) queryProducts(sqlQuery string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

func (r *productRepository) scanProduct(rows *sql.Rows) (*domain.Product, error) {
	product := &domain.Product{}

	err := rows.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQuantity,
		&product.Category,
		&product.ImageURL,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) CountProducts() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("products").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	return count, nil
}

func (r *productRepository) scanProductRow(row *sql.Row) (*domain.Product, error) {
	product := &domain.Product{}

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQuantity,
		&product.Category,
		&product.ImageURL,
		&product.Active,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return product, nil
}
