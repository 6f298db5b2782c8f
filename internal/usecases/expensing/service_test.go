package expensing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/dlourenco/business-ops-api/infrastructure/repository/mocks"
	"github.com/dlourenco/business-ops-api/internal/domain"
	metricsmocks "github.com/dlourenco/business-ops-api/internal/usecases/metrics/mocks"
	"go.uber.org/mock/gomock"
)

func TestService_CreateExpense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

	service := &Service{
		expenseRepository: mockExpenseRepo,
		metricsService:    mockRecomputer,
	}

	req := &domain.CreateExpenseRequest{
		Description: "Compra de farinha",
		Amount:      120.50,
		Category:    domain.ExpenseCategorySupplies,
		Vendor:      "Mercado Central",
		Date:        "2025-08-15",
		Items: []domain.ExpenseItemRequest{
			{Description: "Farinha de trigo 25kg", Quantity: 2, UnitPrice: 60.25},
		},
	}

	mockExpenseRepo.EXPECT().CreateExpense(gomock.Any()).DoAndReturn(func(expense *domain.Expense) error {
		assert.NotEmpty(t, expense.ID)
		assert.Equal(t, "Compra de farinha", expense.Description)
		assert.Equal(t, 120.50, expense.Amount)
		assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), expense.Date)
		assert.Len(t, expense.Items, 1)
		assert.Equal(t, 120.50, expense.Items[0].TotalPrice)
		return nil
	})

	// A criação dispara a recomputação de métricas
	mockRecomputer.EXPECT().Recompute().Return(&domain.BusinessMetrics{ID: domain.BusinessMetricsID}, nil)

	expense, err := service.CreateExpense(req)
	assert.NoError(t, err)
	assert.Equal(t, domain.ExpenseCategorySupplies, expense.Category)
}

// O amount do cliente é aceito mesmo quando diverge da soma dos itens
func TestService_CreateExpense_AmountNotReconciled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

	service := &Service{
		expenseRepository: mockExpenseRepo,
		metricsService:    mockRecomputer,
	}

	req := &domain.CreateExpenseRequest{
		Description: "Despesa com valor divergente",
		Amount:      999.0, // itens somam 10.0
		Category:    domain.ExpenseCategoryOther,
		Vendor:      "Fornecedor",
		Date:        "2025-08-01",
		Items: []domain.ExpenseItemRequest{
			{Description: "Item", Quantity: 1, UnitPrice: 10.0},
		},
	}

	mockExpenseRepo.EXPECT().CreateExpense(gomock.Any()).Return(nil)
	mockRecomputer.EXPECT().Recompute().Return(&domain.BusinessMetrics{ID: domain.BusinessMetricsID}, nil)

	expense, err := service.CreateExpense(req)
	assert.NoError(t, err)
	assert.Equal(t, 999.0, expense.Amount)
}

func TestService_CreateExpense_RecomputeFailureTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

	service := &Service{
		expenseRepository: mockExpenseRepo,
		metricsService:    mockRecomputer,
	}

	req := &domain.CreateExpenseRequest{
		Description: "Conta de luz",
		Amount:      80.0,
		Category:    domain.ExpenseCategoryUtilities,
		Vendor:      "Companhia Elétrica",
		Date:        "2025-08-20",
		Items: []domain.ExpenseItemRequest{
			{Description: "Consumo de agosto", Quantity: 1, UnitPrice: 80.0},
		},
	}

	mockExpenseRepo.EXPECT().CreateExpense(gomock.Any()).Return(nil)
	mockRecomputer.EXPECT().Recompute().Return(nil, errors.New("connection refused"))

	// A falha na recomputação não desfaz a criação da despesa
	expense, err := service.CreateExpense(req)
	assert.NoError(t, err)
	assert.NotNil(t, expense)
}

func TestService_CreateExpense_Validation(t *testing.T) {
	validItems := []domain.ExpenseItemRequest{
		{Description: "Item", Quantity: 1, UnitPrice: 10.0},
	}

	tests := []struct {
		name     string
		req      *domain.CreateExpenseRequest
		expected error
	}{
		{
			name: "Sem descrição",
			req: &domain.CreateExpenseRequest{
				Amount:   10.0,
				Category: domain.ExpenseCategoryOther,
				Vendor:   "Fornecedor",
				Date:     "2025-08-01",
				Items:    validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Sem categoria",
			req: &domain.CreateExpenseRequest{
				Description: "Despesa",
				Amount:      10.0,
				Vendor:      "Fornecedor",
				Date:        "2025-08-01",
				Items:       validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Sem data",
			req: &domain.CreateExpenseRequest{
				Description: "Despesa",
				Amount:      10.0,
				Category:    domain.ExpenseCategoryOther,
				Vendor:      "Fornecedor",
				Items:       validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Data em formato inválido",
			req: &domain.CreateExpenseRequest{
				Description: "Despesa",
				Amount:      10.0,
				Category:    domain.ExpenseCategoryOther,
				Vendor:      "Fornecedor",
				Date:        "15/08/2025",
				Items:       validItems,
			},
			expected: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
			service := &Service{expenseRepository: mockExpenseRepo}

			expense, err := service.CreateExpense(tt.req)
			assert.Nil(t, expense)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_DeleteExpense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	service := &Service{expenseRepository: mockExpenseRepo}

	mockExpenseRepo.EXPECT().DeleteExpense("EXP001").Return(int64(1), nil)
	assert.NoError(t, service.DeleteExpense("EXP001"))

	mockExpenseRepo.EXPECT().DeleteExpense("NOP001").Return(int64(0), nil)
	err := service.DeleteExpense("NOP001")
	assert.ErrorIs(t, err, ErrExpenseNotFound)

	var expenseErr *ExpenseError
	assert.ErrorAs(t, err, &expenseErr)
	assert.Equal(t, "NOP001", expenseErr.ExpenseID)
}
