package metrics

import "errors"

// Erros específicos para o contexto de métricas do negócio
var (
	ErrFetchOrders       = errors.New("error fetching completed orders from database")
	ErrFetchExpenses     = errors.New("error summing expenses from database")
	ErrSaveMetrics       = errors.New("error saving business metrics")
	ErrDatabaseOperation = errors.New("database operation error")
)
