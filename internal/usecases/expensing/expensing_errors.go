package expensing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de despesas
var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("missing required expense fields")
	ErrInvalidDate         = errors.New("invalid expense date")
	ErrExpenseNotFound     = errors.New("expense not found")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")
	ErrGenerateID        = errors.New("error generating expense ID")
)

// ExpenseError é um erro com contexto adicional para despesas
type ExpenseError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ExpenseID string // ID da despesa envolvida (quando aplicável)
	Details   string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ExpenseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError cria um novo ExpenseError
func NewExpenseError(err error, code string, details string) *ExpenseError {
	return &ExpenseError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewExpenseErrorWithID cria um novo ExpenseError com ID da despesa
func NewExpenseErrorWithID(err error, code string, expenseID string, details string) *ExpenseError {
	return &ExpenseError{
		Err:       err,
		Code:      code,
		ExpenseID: expenseID,
		Details:   details,
	}
}
