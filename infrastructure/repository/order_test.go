package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomas/order-management-api/infrastructure/database/postgres"
	"github.com/thomas/order-management-api/internal/domain"
)

var orderRowColumns = []string{
	"id",
	"order_number",
	"customer_id",
	"order_date",
	"status",
	"total_amount",
	"notes",
	"shipping_address",
	"billing_address",
	"created_at",
	"updated_at",
}

func newOrderRepositoryWithMock(t *testing.T) (OrderRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewOrderRepository(&postgres.Connection{DB: db}), mock
}

func TestListOrders(t *testing.T) {
	now := time.Now()
	notes := "Bitte klingeln"

	t.Run("deve listar pedidos com seus itens", func(t *testing.T) {
		repo, mock := newOrderRepositoryWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM orders o ORDER BY o.order_date DESC").
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow(int64(2), "ORD-2024-002", int64(5), now, "PROCESSING", 259.98, notes, nil, nil, now, now).
				AddRow(int64(1), "ORD-2024-001", int64(3), now.AddDate(0, 0, -1), "DELIVERED", 1299.99, nil, nil, nil, now, now))

		mock.ExpectQuery("SELECT (.+) FROM order_items oi WHERE oi.order_id IN (.+) ORDER BY oi.id ASC").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price"}).
				AddRow(int64(10), int64(1), int64(7), 1, 1299.99).
				AddRow(int64(11), int64(2), int64(9), 2, 129.99))

		orders, err := repo.ListOrders()
		require.NoError(t, err)
		require.Len(t, orders, 2)

		assert.Equal(t, "ORD-2024-002", orders[0].OrderNumber)
		assert.Equal(t, int64(5), orders[0].CustomerID)
		assert.Equal(t, domain.OrderStatusProcessing, orders[0].Status)
		assert.Equal(t, 259.98, orders[0].TotalAmount)
		require.NotNil(t, orders[0].Notes)
		assert.Equal(t, notes, *orders[0].Notes)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, int64(9), orders[0].Items[0].ProductID)
		assert.Equal(t, 2, orders[0].Items[0].Quantity)

		assert.Equal(t, "ORD-2024-001", orders[1].OrderNumber)
		assert.Nil(t, orders[1].Notes)
		require.Len(t, orders[1].Items, 1)
		assert.Equal(t, 1299.99, orders[1].Items[0].UnitPrice)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve retornar lista vazia sem consultar itens", func(t *testing.T) {
		repo, mock := newOrderRepositoryWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM orders o ORDER BY o.order_date DESC").
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		orders, err := repo.ListOrders()
		require.NoError(t, err)
		assert.Empty(t, orders)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deve propagar erro de escaneamento", func(t *testing.T) {
		repo, mock := newOrderRepositoryWithMock(t)

		mock.ExpectQuery("SELECT (.+) FROM orders o ORDER BY o.order_date DESC").
			WillReturnRows(sqlmock.NewRows(orderRowColumns).
				AddRow(int64(1), "ORD-2024-001", int64(3), "data-invalida", "DELIVERED", 1299.99, nil, nil, nil, now, now))

		orders, err := repo.ListOrders()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao escanear pedido")
		assert.Nil(t, orders)
	})
}
