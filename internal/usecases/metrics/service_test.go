package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/dlourenco/business-ops-api/infrastructure/repository/mocks"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_Recompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)

	service := &Service{
		orderRepository:   mockOrderRepo,
		expenseRepository: mockExpenseRepo,
		metricsRepository: mockMetricsRepo,
	}

	completedOrders := []*domain.Order{
		{ID: "ORD001", TotalAmount: 50.0, IsCompleted: true},
		{ID: "ORD002", TotalAmount: 25.0, IsCompleted: true},
	}

	mockOrderRepo.EXPECT().ListCompletedOrders().Return(completedOrders, nil)
	mockExpenseRepo.EXPECT().SumExpenseAmounts().Return(30.0, nil)
	mockMetricsRepo.EXPECT().UpsertMetrics(gomock.Any()).DoAndReturn(func(m *domain.BusinessMetrics) error {
		assert.Equal(t, domain.BusinessMetricsID, m.ID)
		assert.Equal(t, 75.0, m.Revenue)
		assert.Equal(t, 30.0, m.Expenses)
		assert.Equal(t, 45.0, m.Profit)
		return nil
	})

	result, err := service.Recompute()
	assert.NoError(t, err)
	assert.Equal(t, 75.0, result.Revenue)
	assert.Equal(t, 30.0, result.Expenses)
	assert.Equal(t, 45.0, result.Profit)
}

// Recomputar duas vezes sobre os mesmos dados produz o mesmo resumo
func TestService_Recompute_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)

	service := &Service{
		orderRepository:   mockOrderRepo,
		expenseRepository: mockExpenseRepo,
		metricsRepository: mockMetricsRepo,
	}

	completedOrders := []*domain.Order{
		{ID: "ORD001", TotalAmount: 100.0, IsCompleted: true},
	}

	mockOrderRepo.EXPECT().ListCompletedOrders().Return(completedOrders, nil).Times(2)
	mockExpenseRepo.EXPECT().SumExpenseAmounts().Return(40.0, nil).Times(2)
	mockMetricsRepo.EXPECT().UpsertMetrics(gomock.Any()).Return(nil).Times(2)

	first, err := service.Recompute()
	assert.NoError(t, err)

	second, err := service.Recompute()
	assert.NoError(t, err)

	assert.Equal(t, first.Revenue, second.Revenue)
	assert.Equal(t, first.Expenses, second.Expenses)
	assert.Equal(t, first.Profit, second.Profit)
}

func TestService_Recompute_Rounding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)

	service := &Service{
		orderRepository:   mockOrderRepo,
		expenseRepository: mockExpenseRepo,
		metricsRepository: mockMetricsRepo,
	}

	completedOrders := []*domain.Order{
		{ID: "ORD001", TotalAmount: 10.105, IsCompleted: true},
		{ID: "ORD002", TotalAmount: 20.207, IsCompleted: true},
	}

	mockOrderRepo.EXPECT().ListCompletedOrders().Return(completedOrders, nil)
	mockExpenseRepo.EXPECT().SumExpenseAmounts().Return(0.0, nil)
	mockMetricsRepo.EXPECT().UpsertMetrics(gomock.Any()).Return(nil)

	result, err := service.Recompute()
	assert.NoError(t, err)
	assert.Equal(t, 30.31, result.Revenue)
	assert.Equal(t, 0.0, result.Expenses)
	assert.Equal(t, 30.31, result.Profit)
}

func TestService_Recompute_Errors(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name     string
		setup    func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, m *mocks.MockBusinessMetricsRepository)
		expected error
	}{
		{
			name: "Falha ao listar pedidos concluídos",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, m *mocks.MockBusinessMetricsRepository) {
				o.EXPECT().ListCompletedOrders().Return(nil, dbErr)
			},
			expected: ErrFetchOrders,
		},
		{
			name: "Falha ao somar despesas",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, m *mocks.MockBusinessMetricsRepository) {
				o.EXPECT().ListCompletedOrders().Return([]*domain.Order{}, nil)
				e.EXPECT().SumExpenseAmounts().Return(0.0, dbErr)
			},
			expected: ErrFetchExpenses,
		},
		{
			name: "Falha ao gravar o resumo",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, m *mocks.MockBusinessMetricsRepository) {
				o.EXPECT().ListCompletedOrders().Return([]*domain.Order{}, nil)
				e.EXPECT().SumExpenseAmounts().Return(0.0, nil)
				m.EXPECT().UpsertMetrics(gomock.Any()).Return(dbErr)
			},
			expected: ErrSaveMetrics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
			mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
			mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)

			service := &Service{
				orderRepository:   mockOrderRepo,
				expenseRepository: mockExpenseRepo,
				metricsRepository: mockMetricsRepo,
			}

			tt.setup(mockOrderRepo, mockExpenseRepo, mockMetricsRepo)

			result, err := service.Recompute()
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_CurrentMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)
	service := &Service{metricsRepository: mockMetricsRepo}

	stored := &domain.BusinessMetrics{
		ID:       domain.BusinessMetricsID,
		Revenue:  500.0,
		Expenses: 200.0,
		Profit:   300.0,
	}

	mockMetricsRepo.EXPECT().GetMetrics().Return(stored, nil)

	result, err := service.CurrentMetrics()
	assert.NoError(t, err)
	assert.Equal(t, stored, result)
}

func TestService_CurrentMetrics_NoRecordYet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMetricsRepo := mocks.NewMockBusinessMetricsRepository(ctrl)
	service := &Service{metricsRepository: mockMetricsRepo}

	mockMetricsRepo.EXPECT().GetMetrics().Return(nil, nil)

	result, err := service.CurrentMetrics()
	assert.NoError(t, err)
	assert.Equal(t, domain.BusinessMetricsID, result.ID)
	assert.Equal(t, 0.0, result.Revenue)
	assert.Equal(t, 0.0, result.Expenses)
	assert.Equal(t, 0.0, result.Profit)
}
