package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/thomas/order-management-api/infrastructure/database/postgres"
	"github.com/thomas/order-management-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

var orderColumns = []string{
	"o.id",
	"o.order_number",
	"o.customer_id",
	"o.order_date",
	"o.status",
	"o.total_amount",
	"o.notes",
	"o.shipping_address",
	"o.billing_address",
	"o.created_at",
	"o.updated_at",
}

type OrderRepository interface {
	ListOrders() ([]*domain.Order, error)
	GetOrderByID(id int64) (*domain.Order, error)
	GetOrderByNumber(orderNumber string) (*domain.Order, error)
	CreateOrder(order *domain.Order) (*domain.Order, error)
	UpdateOrder(order *domain.Order) (*domain.Order, error)
	UpdateOrderStatus(id int64, status domain.OrderStatus) error
	DeleteOrder(id int64) error
	CountOrders() (int, error)
	CountOrdersByStatus() (map[domain.OrderStatus]int, error)
	SumTotalAmountByStatus(status domain.OrderStatus) (float64, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) ListOrders() ([]*domain.Order, error) {
	sqlQuery, args, err := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		OrderBy("o.order_date DESC").
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if err := r.attachItems(orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) GetOrderByID(id int64) (*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"o.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOrder(query, args...)
}

func (r *orderRepository) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	query, args, err := squirrel.
		Select(orderColumns...).
		From(ordersTable).
		Where(squirrel.Eq{"o.order_number": orderNumber}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.getOrder(query, args...)
}

// CreateOrder insere o pedido e seus itens em uma única transação
func (r *orderRepository) CreateOrder(order *domain.Order) (*domain.Order, error) {
	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		query, args, err := squirrel.
			Insert("orders").
			Columns(
				"order_number",
				"customer_id",
				"order_date",
				"status",
				"total_amount",
				"notes",
				"shipping_address",
				"billing_address",
			).
			Values(
				order.OrderNumber,
				order.CustomerID,
				order.OrderDate,
				order.Status,
				order.TotalAmount,
				order.Notes,
				order.ShippingAddress,
				order.BillingAddress,
			).
			Suffix("RETURNING id, created_at, updated_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de inserção: %w", err)
		}

		row := tx.QueryRow(query, args...)
		if err := row.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return fmt.Errorf("erro ao inserir pedido: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			itemQuery, itemArgs, err := squirrel.
				Insert("order_items").
				Columns("order_id", "product_id", "quantity", "unit_price").
				Values(item.OrderID, item.ProductID, item.Quantity, item.UnitPrice).
				Suffix("RETURNING id").
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção de item: %w", err)
			}

			if err := tx.QueryRow(itemQuery, itemArgs...).Scan(&item.ID); err != nil {
				return fmt.Errorf("erro ao inserir item do pedido: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) UpdateOrder(order *domain.Order) (*domain.Order, error) {
	query, args, err := squirrel.
		Update("orders").
		Set("status", order.Status).
		Set("notes", order.Notes).
		Set("shipping_address", order.ShippingAddress).
		Set("billing_address", order.BillingAddress).
		Set("total_amount", order.TotalAmount).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": order.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(&order.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao atualizar pedido: %w", err)
	}

	return order, nil
}

func (r *orderRepository) UpdateOrderStatus(id int64, status domain.OrderStatus) error {
	query, args, err := squirrel.
		Update("orders").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status do pedido: %w", err)
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

// DeleteOrder remove o pedido e seus itens na mesma transação
func (r *orderRepository) DeleteOrder(id int64) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		itemsQuery, itemsArgs, err := squirrel.
			Delete("order_items").
			Where(squirrel.Eq{"order_id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de exclusão de itens: %w", err)
		}

		if _, err := tx.Exec(itemsQuery, itemsArgs...); err != nil {
			return fmt.Errorf("erro ao excluir itens do pedido: %w", err)
		}

		query, args, err := squirrel.
			Delete("orders").
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir query de exclusão: %w", err)
		}

		result, err := tx.Exec(query, args...)
		if err != nil {
			return fmt.Errorf("erro ao excluir pedido: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		return nil
	})
}

func (r *orderRepository) CountOrders() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("orders").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	return count, nil
}

func (r *orderRepository) CountOrdersByStatus() (map[domain.OrderStatus]int, error) {
	sqlQuery, args, err := squirrel.
		Select("o.status", "COUNT(*)").
		From(ordersTable).
		GroupBy("o.status").
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

	counts := make(map[domain.OrderStatus]int)
	for rows.Next() {
		var status domain.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("erro ao escanear contagem por status: %w", err)
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return counts, nil
}

func (r *orderRepository) SumTotalAmountByStatus(status domain.OrderStatus) (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(o.total_amount), 0)").
		From(ordersTable).
		Where(squirrel.Eq{"o.status": status}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar valores dos pedidos: %w", err)
	}

	return total, nil
}

func (r *orderRepository) scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	err := rows.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.OrderDate,
		&order.Status,
		&order.TotalAmount,
		&order.Notes,
		&order.ShippingAddress,
		&order.BillingAddress,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) getOrder(query string, args ...interface{}) (*domain.Order, error) {
	row := r.conn.QueryRow(query, args...)

	order := &domain.Order{}
	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.OrderDate,
		&order.Status,
		&order.TotalAmount,
		&order.Notes,
		&order.ShippingAddress,
		&order.BillingAddress,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
	}

	if err := r.attachItems([]*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// attachItems carrega os itens de todos os pedidos informados em uma única query
func (r *orderRepository) attachItems(orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, order := range orders {
		order.Items = make([]domain.OrderItem, 0)
		orderIDs = append(orderIDs, order.ID)
		byID[order.ID] = order
	}

	sqlQuery, args, err := squirrel.
		Select("oi.id", "oi.order_id", "oi.product_id", "oi.quantity", "oi.unit_price").
		From("order_items oi").
		Where(squirrel.Eq{"oi.order_id": orderIDs}).
		OrderBy("oi.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de itens: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens dos pedidos: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("erro ao escanear item do pedido: %w", err)
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return nil
}
