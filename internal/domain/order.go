package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lista todos os status válidos de um pedido
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order é o agregado de pedido. Os itens pertencem ao pedido como uma
// coleção filha referenciada por IDs estáveis, sem ponteiros de volta
type Order struct {
	ID              int64       `json:"id"`
	OrderNumber     string      `json:"order_number"`
	CustomerID      int64       `json:"customer_id"`
	OrderDate       time.Time   `json:"order_date"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	Notes           *string     `json:"notes,omitempty"`
	ShippingAddress *string     `json:"shipping_address,omitempty"`
	BillingAddress  *string     `json:"billing_address,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CalculateTotalAmount soma quantidade vezes preço unitário de todos os itens
func (o Order) CalculateTotalAmount() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
