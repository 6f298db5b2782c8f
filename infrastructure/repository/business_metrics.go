package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/dlourenco/business-ops-api/infrastructure/database/postgres"
	"github.com/dlourenco/business-ops-api/internal/domain"
)

const businessMetricsTable = "business_metrics"

type BusinessMetricsRepository interface {
	GetMetrics() (*domain.BusinessMetrics, error)
	// UpsertMetrics grava o resumo financeiro na linha única. Último escritor
	// vence: não há verificação de versão porque a reconstrução é idempotente.
	UpsertMetrics(metrics *domain.BusinessMetrics) error
}

type businessMetricsRepository struct {
	conn *postgres.Connection
}

func NewBusinessMetricsRepository(conn *postgres.Connection) BusinessMetricsRepository {
	return &businessMetricsRepository{
		conn: conn,
	}
}

func (r *businessMetricsRepository) GetMetrics() (*domain.BusinessMetrics, error) {
	query, args, err := squirrel.
		Select("id, revenue, expenses, profit, updated_at").
		From(businessMetricsTable).
		Where(squirrel.Eq{"id": domain.BusinessMetricsID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	metrics := &domain.BusinessMetrics{}
	err = r.conn.QueryRow(query, args...).Scan(
		&metrics.ID,
		&metrics.Revenue,
		&metrics.Expenses,
		&metrics.Profit,
		&metrics.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear métricas: %w", err)
	}

	return metrics, nil
}

func (r *businessMetricsRepository) UpsertMetrics(metrics *domain.BusinessMetrics) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(businessMetricsTable).
		Columns("id", "revenue", "expenses", "profit").
		Values(domain.BusinessMetricsID, metrics.Revenue, metrics.Expenses, metrics.Profit).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				revenue = EXCLUDED.revenue,
				expenses = EXCLUDED.expenses,
				profit = EXCLUDED.profit,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
