package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/dlourenco/business-ops-api/infrastructure/database/postgres"
	"github.com/dlourenco/business-ops-api/internal/domain"
)

const (
	expensesTable     = "expenses"
	expenseItemsTable = "expense_items"
)

type ExpenseRepository interface {
	// ListExpenses retorna as despesas mais recentes (date desc) com seus
	// itens. limit <= 0 retorna todas as despesas.
	ListExpenses(limit int) ([]*domain.Expense, error)
	CreateExpense(expense *domain.Expense) error
	DeleteExpense(id string) (int64, error)

	// SumExpenseAmounts soma o valor de todas as despesas registradas.
	// Usado pela reconstrução de métricas.
	SumExpenseAmounts() (float64, error)
}

type expenseRepository struct {
	conn *postgres.Connection
}

func NewExpenseRepository(conn *postgres.Connection) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) ListExpenses(limit int) ([]*domain.Expense, error) {
	queryBuilder := squirrel.
		Select("e.id, e.description, e.amount, e.category, e.vendor, e.date, e.notes, e.created_at").
		From(expensesTable + " e").
		OrderBy("e.date DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense := &domain.Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&expense.Amount,
			&expense.Category,
			&expense.Vendor,
			&expense.Date,
			&expense.Notes,
			&expense.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	if err := r.loadExpenseItems(expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

func (r *expenseRepository) CreateExpense(expense *domain.Expense) error {
	return r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		expenseSQL, expenseArgs, err := squirrel.
			Insert(expensesTable).
			Columns("id", "description", "amount", "category", "vendor", "date", "notes").
			Values(expense.ID, expense.Description, expense.Amount, expense.Category, expense.Vendor, expense.Date, expense.Notes).
			Suffix("RETURNING created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		err = tx.QueryRow(expenseSQL, expenseArgs...).Scan(&expense.CreatedAt)
		if err != nil {
			return fmt.Errorf("erro ao inserir despesa: %w", err)
		}

		for _, item := range expense.Items {
			itemSQL, itemArgs, err := squirrel.
				Insert(expenseItemsTable).
				Columns("id", "expense_id", "description", "quantity", "unit_price", "total_price").
				Values(item.ID, expense.ID, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			if _, err := tx.Exec(itemSQL, itemArgs...); err != nil {
				return fmt.Errorf("erro ao inserir item da despesa: %w", err)
			}
		}

		return nil
	})
}

func (r *expenseRepository) DeleteExpense(id string) (int64, error) {
	query, args, err := squirrel.
		Delete(expensesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *expenseRepository) SumExpenseAmounts() (float64, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(amount), 0)").
		From(expensesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar despesas: %w", err)
	}

	return total, nil
}

func (r *expenseRepository) loadExpenseItems(expenses []*domain.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	expensesByID := make(map[string]*domain.Expense, len(expenses))
	expenseIDs := make([]string, 0, len(expenses))
	for _, expense := range expenses {
		expense.Items = make([]*domain.ExpenseItem, 0)
		expensesByID[expense.ID] = expense
		expenseIDs = append(expenseIDs, expense.ID)
	}

	itemsSQL, itemsArgs, err := squirrel.
		Select("id, expense_id, description, quantity, unit_price, total_price").
		From(expenseItemsTable).
		Where(squirrel.Eq{"expense_id": expenseIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(itemsSQL, itemsArgs...)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens das despesas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.ExpenseItem{}
		err := rows.Scan(&item.ID, &item.ExpenseID, &item.Description, &item.Quantity, &item.UnitPrice, &item.TotalPrice)
		if err != nil {
			return fmt.Errorf("erro ao escanear item da despesa: %w", err)
		}

		if expense, ok := expensesByID[item.ExpenseID]; ok {
			expense.Items = append(expense.Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return nil
}
