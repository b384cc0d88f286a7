// Package catalog contém o caso de uso de gestão do catálogo de produtos
package catalog

import (
	"github.com/pkg/errors"
	"github.com/thomas/order-management-api/infrastructure/repository"
	"github.com/thomas/order-management-api/internal/domain"
)

type CatalogService interface {
	ListProducts(filters *domain.ProductFilters) ([]*domain.Product, error)
	GetProduct(id int64) (*domain.Product, error)
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(product *domain.Product) (*domain.Product, error)
	DeactivateProduct(id int64) error
	ListLowStockProducts() ([]*domain.Product, error)
}

type Service struct {
	productRepository repository.ProductRepository
}

func NewService(productRepo repository.ProductRepository) CatalogService {
	return &Service{
		productRepository: productRepo,
	}
}

func (s *Service) ListProducts(filters *domain.ProductFilters) ([]*domain.Product, error) {
	products, err := s.productRepository.ListProducts(filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar produtos")
	}
	return products, nil
}

func (s *Service) GetProduct(id int64) (*domain.Product, error) {
	product, err := s.productRepository.GetProductByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar produto")
	}
	return product, nil
}

func (s *Service) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		return nil, ErrProductNameRequired
	}
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if product.StockQuantity < 0 {
		return nil, ErrInvalidStockQuantity
	}

	// Produtos nascem ativos; a exclusão é sempre lógica
	product.Active = true

	created, err := s.productRepository.CreateProduct(product)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar produto")
	}
	return created, nil
}

func (s *Service) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	if product.Name == "" {
		return nil, ErrProductNameRequired
	}
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if product.StockQuantity < 0 {
		return nil, ErrInvalidStockQuantity
	}

	updated, err := s.productRepository.UpdateProduct(product)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar produto")
	}
	return updated, nil
}

func (s *Service) DeactivateProduct(id int64) error {
	if err := s.productRepository.DeactivateProduct(id); err != nil {
		return errors.Wrap(err, "erro ao desativar produto")
	}
	return nil
}

func (s *Service) ListLowStockProducts() ([]*domain.Product, error) {
	products, err := s.productRepository.ListLowStockProducts()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao listar produtos com estoque baixo")
	}
	return products, nil
}
