package ordering

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de pedidos
var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("missing required order fields")
	ErrInvalidOrderItem    = errors.New("invalid order item")
	ErrOrderNotFound       = errors.New("order not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating order ID")
)

// OrderError é um erro com contexto adicional para pedidos
type OrderError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	OrderID string // ID do pedido envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *OrderError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError cria um novo OrderError
func NewOrderError(err error, code string, details string) *OrderError {
	return &OrderError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewOrderErrorWithID cria um novo OrderError com ID do pedido
func NewOrderErrorWithID(err error, code string, orderID string, details string) *OrderError {
	return &OrderError{
		Err:     err,
		Code:    code,
		OrderID: orderID,
		Details: details,
	}
}
