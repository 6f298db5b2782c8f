package domain

import "time"

// Order representa um pedido de cliente com seus itens e taxas adicionais.
// O valor total é calculado na criação (itens + taxas) e não é revalidado
// em atualizações posteriores.
type Order struct {
	ID             string           `json:"id"`
	CustomerName   string           `json:"customer_name"`
	Description    *string          `json:"description,omitempty"`
	Address        string           `json:"address"`
	DeliveryTime   time.Time        `json:"delivery_time"`
	IsCompleted    bool             `json:"is_completed"`
	TotalAmount    float64          `json:"total_amount"`
	OrderItems     []*OrderItem     `json:"order_items"`
	AdditionalFees []*AdditionalFee `json:"additional_fees"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// OrderItem representa um item de um pedido
type OrderItem struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// AdditionalFee representa uma taxa adicional aplicada a um pedido (entrega, embalagem, etc.)
type AdditionalFee struct {
	ID      string  `json:"id"`
	OrderID string  `json:"order_id"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
}

// CreateOrderRequest é o payload de criação de pedido. Os totais dos itens
// e o valor total do pedido são sempre calculados pelo servidor.
type CreateOrderRequest struct {
	CustomerName   string                 `json:"customer_name"`
	Description    *string                `json:"description"`
	Address        string                 `json:"address"`
	DeliveryTime   time.Time              `json:"delivery_time"`
	OrderItems     []OrderItemRequest     `json:"order_items"`
	AdditionalFees []AdditionalFeeRequest `json:"additional_fees"`
}

type OrderItemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type AdditionalFeeRequest struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// UpdateOrderRequest é o payload de atualização parcial de pedido.
// Campos nulos são ignorados. Itens e taxas não são editáveis após a criação.
type UpdateOrderRequest struct {
	CustomerName *string    `json:"customer_name"`
	Description  *string    `json:"description"`
	Address      *string    `json:"address"`
	DeliveryTime *time.Time `json:"delivery_time"`
}
