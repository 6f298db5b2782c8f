package metrics

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/pkg/utils"
)

// Recomputer define a interface do agregador de métricas do negócio
type Recomputer interface {
	// Recompute reconstrói o resumo financeiro a partir do conjunto completo
	// de pedidos concluídos e despesas, e grava o resultado por upsert
	Recompute() (*domain.BusinessMetrics, error)

	// CurrentMetrics retorna o último resumo gravado, ou um resumo zerado
	// quando nenhuma recomputação aconteceu ainda
	CurrentMetrics() (*domain.BusinessMetrics, error)
}

type Service struct {
	orderRepository   repository.OrderRepository
	expenseRepository repository.ExpenseRepository
	metricsRepository repository.BusinessMetricsRepository
}

func NewService(
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
	metricsRepo repository.BusinessMetricsRepository,
) Recomputer {
	return &Service{
		orderRepository:   orderRepo,
		expenseRepository: expenseRepo,
		metricsRepository: metricsRepo,
	}
}

// Recompute varre as tabelas inteiras a cada chamada: receita é a soma dos
// pedidos concluídos, despesa é a soma de todas as despesas. Não há
// manutenção incremental; rodar duas vezes seguidas produz o mesmo resultado.
func (s *Service) Recompute() (*domain.BusinessMetrics, error) {
	completedOrders, err := s.orderRepository.ListCompletedOrders()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	var revenue float64
	for _, order := range completedOrders {
		revenue += order.TotalAmount
	}

	expenses, err := s.expenseRepository.SumExpenseAmounts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchExpenses, err)
	}

	metrics := &domain.BusinessMetrics{
		ID:       domain.BusinessMetricsID,
		Revenue:  utils.RoundWithTwoDecimalPlace(revenue),
		Expenses: utils.RoundWithTwoDecimalPlace(expenses),
		Profit:   utils.RoundWithTwoDecimalPlace(revenue - expenses),
	}

	if err := s.metricsRepository.UpsertMetrics(metrics); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveMetrics, err)
	}

	logrus.WithFields(logrus.Fields{
		"revenue":  metrics.Revenue,
		"expenses": metrics.Expenses,
		"profit":   metrics.Profit,
	}).Debug("Métricas do negócio recalculadas")

	return metrics, nil
}

func (s *Service) CurrentMetrics() (*domain.BusinessMetrics, error) {
	metrics, err := s.metricsRepository.GetMetrics()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}

	if metrics == nil {
		// Nenhuma mutação disparou a recomputação ainda
		return &domain.BusinessMetrics{ID: domain.BusinessMetricsID}, nil
	}

	return metrics, nil
}
