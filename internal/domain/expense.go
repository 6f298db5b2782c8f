package domain

import "time"

// Categorias de despesa aceitas pelo formulário
const (
	ExpenseCategorySupplies  = "Supplies"
	ExpenseCategoryRent      = "Rent"
	ExpenseCategoryUtilities = "Utilities"
	ExpenseCategoryMarketing = "Marketing"
	ExpenseCategoryOther     = "Other"
)

// Expense representa uma despesa do negócio com seus itens.
// O valor (amount) é informado pelo cliente e não é conferido contra a soma
// dos itens no servidor.
type Expense struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Category    string         `json:"category"`
	Vendor      string         `json:"vendor"`
	Date        time.Time      `json:"date"`
	Items       []*ExpenseItem `json:"items"`
	Notes       *string        `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ExpenseItem representa um item de uma despesa
type ExpenseItem struct {
	ID          string  `json:"id"`
	ExpenseID   string  `json:"expense_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// CreateExpenseRequest é o payload de criação de despesa.
// A data é enviada no formato "2006-01-02".
type CreateExpenseRequest struct {
	Description string               `json:"description"`
	Amount      float64              `json:"amount"`
	Category    string               `json:"category"`
	Vendor      string               `json:"vendor"`
	Date        string               `json:"date"`
	Items       []ExpenseItemRequest `json:"items"`
	Notes       *string              `json:"notes"`
}

type ExpenseItemRequest struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
