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
	customersTable = "customers c"
)

var customerColumns = []string{
	"c.id",
	"c.first_name",
	"c.last_name",
	"c.email",
	"c.phone",
	"c.address",
	"c.city",
	"c.zip_code",
	"c.country",
	"c.created_at",
	"c.updated_at",
}

type CustomerRepository interface {
	ListCustomers() ([]*domain.Customer, error)
	GetCustomerByID(id int64) (*domain.Customer, error)
	GetCustomerByEmail(email string) (*domain.Customer, error)
	CreateCustomer(customer *domain.Customer) (*domain.Customer, error)
	UpdateCustomer(customer *domain.Customer) (*domain.Customer, error)
	DeleteCustomer(id int64) error
	CountCustomers() (int, error)
}

type customerRepository struct {
	conn *postgres.Connection
}

func NewCustomerRepository(conn *postgres.Connection) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func (r *customerRepository) ListCustomers() ([]*domain.Customer, error) {
	sqlQuery, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		OrderBy("c.last_name ASC", "c.first_name ASC").
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

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := r.scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
		}
		customers = append(customers, customer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) GetCustomerByID(id int64) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getCustomer(query, args...)
}

func (r *customerRepository) GetCustomerByEmail(email string) (*domain.Customer, error) {
	query, args, err := squirrel.
		Select(customerColumns...).
		From(customersTable).
		Where(squirrel.Eq{"c.email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getCustomer(query, args...)
}

func (r *customerRepository) CreateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	query, args, err := squirrel.
		Insert("customers").
		Columns(
			"first_name",
			"last_name",
			"email",
			"phone",
			"address",
			"city",
			"zip_code",
			"country",
		).
		Values(
			customer.FirstName,
			customer.LastName,
			customer.Email,
			customer.Phone,
			customer.Address,
			customer.City,
			customer.ZipCode,
			customer.Country,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
		return nil, fmt.Errorf("erro ao inserir cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) UpdateCustomer(customer *domain.Customer) (*domain.Customer, error) {
	query, args, err := squirrel.
		Update("customers").
		Set("first_name", customer.FirstName).
		Set("last_name", customer.LastName).
		Set("email", customer.Email).
		Set("phone", customer.Phone).
		Set("address", customer.Address).
		Set("city", customer.City).
		Set("zip_code", customer.ZipCode).
		Set("country", customer.Country).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": customer.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&customer.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) DeleteCustomer(id int64) error {
	query, args, err := squirrel.
		Delete("customers").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de exclusão: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao excluir cliente: %w", err)
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

func (r *customerRepository) CountCustomers() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("customers").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

func (r *customerRepository) getCustomer(query string, args ...interface{}) (*domain.Customer, error) {
	row := r.conn.QueryRow(query, args...)

	customer := &domain.Customer{}
	err := row.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.City,
		&customer.ZipCode,
		&customer.Country,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear cliente: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) scanCustomer(rows *sql.Rows) (*domain.Customer, error) {
	customer := &domain.Customer{}

	err := rows.Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customer.Address,
		&customer.City,
		&customer.ZipCode,
		&customer.Country,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return customer, nil
}
