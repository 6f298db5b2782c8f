package dashboarding

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/dlourenco/business-ops-api/infrastructure/repository/mocks"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newTestService(ctrl *gomock.Controller) (*Service, *mocks.MockOrderRepository, *mocks.MockExpenseRepository, *mocks.MockSettingsRepository) {
	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockExpenseRepo := mocks.NewMockExpenseRepository(ctrl)
	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)

	service := &Service{
		orderRepository:    mockOrderRepo,
		expenseRepository:  mockExpenseRepo,
		settingsRepository: mockSettingsRepo,
	}

	return service, mockOrderRepo, mockExpenseRepo, mockSettingsRepo
}

func TestService_BuildDashboardView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	may10 := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	may20 := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	june5 := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)

	orders := []*domain.Order{
		{ID: "ORD001", CustomerName: "Maria", TotalAmount: 100.0, IsCompleted: true, CreatedAt: may10},
		{ID: "ORD002", CustomerName: "João", TotalAmount: 50.0, IsCompleted: false, CreatedAt: may20},
		{ID: "ORD003", CustomerName: "Ana", TotalAmount: 200.0, IsCompleted: false, CreatedAt: june5},
	}

	expenses := []*domain.Expense{
		{ID: "EXP001", Description: "Aluguel da loja", Amount: 250.0, Category: domain.ExpenseCategoryRent, Date: may10.Add(time.Hour)},
		{ID: "EXP002", Description: "Material de limpeza", Amount: 10.0, Category: domain.ExpenseCategoryOther, Date: june5.Add(-time.Hour)},
		{ID: "EXP003", Description: "Aluguel do depósito", Amount: 30.0, Category: domain.ExpenseCategoryRent, Date: may20.Add(time.Hour)},
	}

	service, mockOrderRepo, mockExpenseRepo, mockSettingsRepo := newTestService(ctrl)

	mockOrderRepo.EXPECT().ListOrders(10).Return(orders, nil)
	mockExpenseRepo.EXPECT().ListExpenses(10).Return(expenses, nil)
	mockSettingsRepo.EXPECT().GetSettings().Return(&domain.Settings{
		ID:              domain.SettingsID,
		Currency:        "XCD",
		BusinessFunding: 1000.0,
	}, nil)

	view, err := service.BuildDashboardView(0)
	assert.NoError(t, err)
	assert.NotNil(t, view)

	// Números de topo: calculados sobre o recorte retornado pelos repositórios
	assert.Equal(t, 350.0, view.Metrics.TotalRevenue)
	assert.Equal(t, 290.0, view.Metrics.TotalExpenses)
	assert.Equal(t, 1060.0, view.Metrics.CurrentFunding) // 1000 + 350 - 290
	assert.Equal(t, 3, view.Metrics.TotalOrders)
	assert.Equal(t, 2, view.Metrics.PendingOrders)

	// Agrupamento mensal: ordem do primeiro encontro (pedidos antes de despesas)
	assert.Len(t, view.RevenueByMonth, 2)
	assert.Equal(t, "May 2025", view.RevenueByMonth[0].Month)
	assert.Equal(t, 150.0, view.RevenueByMonth[0].Revenue)
	assert.Equal(t, 280.0, view.RevenueByMonth[0].Expenses)
	assert.Equal(t, "Jun 2025", view.RevenueByMonth[1].Month)
	assert.Equal(t, 200.0, view.RevenueByMonth[1].Revenue)
	assert.Equal(t, 10.0, view.RevenueByMonth[1].Expenses)

	// Despesas por categoria, na ordem do primeiro encontro
	assert.Len(t, view.ExpensesByCategory, 2)
	assert.Equal(t, domain.ExpenseCategoryRent, view.ExpensesByCategory[0].Category)
	assert.Equal(t, 280.0, view.ExpensesByCategory[0].Amount)
	assert.Equal(t, domain.ExpenseCategoryOther, view.ExpensesByCategory[1].Category)
	assert.Equal(t, 10.0, view.ExpensesByCategory[1].Amount)

	// Feed de atividade: mesclado e ordenado por data decrescente
	assert.Len(t, view.RecentActivity, 6)
	assert.Equal(t, domain.ActivityTypeOrder, view.RecentActivity[0].Type)
	assert.Equal(t, "New order from Ana", view.RecentActivity[0].Title)
	assert.Equal(t, domain.ActivityTypeExpense, view.RecentActivity[1].Type)
	assert.Equal(t, "Material de limpeza", view.RecentActivity[1].Title)
	assert.Equal(t, "Aluguel do depósito", view.RecentActivity[2].Title)
	assert.Equal(t, "New order from João", view.RecentActivity[3].Title)
	assert.Equal(t, "Aluguel da loja", view.RecentActivity[4].Title)
	assert.Equal(t, "New order from Maria", view.RecentActivity[5].Title)
}

func TestService_BuildDashboardView_TruncatesActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	orders := make([]*domain.Order, 0, 2)
	for i := 0; i < 2; i++ {
		orders = append(orders, &domain.Order{
			ID:           "ORD00" + string(rune('1'+i)),
			CustomerName: "Cliente",
			TotalAmount:  10.0,
			CreatedAt:    base.Add(time.Duration(i) * time.Hour),
		})
	}

	expenses := []*domain.Expense{
		{ID: "EXP001", Description: "Despesa", Amount: 5.0, Category: domain.ExpenseCategoryOther, Date: base.Add(30 * time.Minute)},
	}

	service, mockOrderRepo, mockExpenseRepo, mockSettingsRepo := newTestService(ctrl)

	mockOrderRepo.EXPECT().ListOrders(2).Return(orders, nil)
	mockExpenseRepo.EXPECT().ListExpenses(2).Return(expenses, nil)
	mockSettingsRepo.EXPECT().GetSettings().Return(nil, nil)

	view, err := service.BuildDashboardView(2)
	assert.NoError(t, err)

	// 3 entradas candidatas, truncadas no limite
	assert.Len(t, view.RecentActivity, 2)

	// Sem registro de configurações o funding parte de zero
	assert.Equal(t, 15.0, view.Metrics.CurrentFunding) // 0 + 20 - 5
}

func TestService_BuildDashboardView_Errors(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name     string
		setup    func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, s *mocks.MockSettingsRepository)
		expected error
	}{
		{
			name: "Falha ao listar pedidos aborta a montagem",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, s *mocks.MockSettingsRepository) {
				o.EXPECT().ListOrders(10).Return(nil, dbErr)
			},
			expected: ErrFetchOrders,
		},
		{
			name: "Falha ao listar despesas aborta a montagem",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, s *mocks.MockSettingsRepository) {
				o.EXPECT().ListOrders(10).Return([]*domain.Order{}, nil)
				e.EXPECT().ListExpenses(10).Return(nil, dbErr)
			},
			expected: ErrFetchExpenses,
		},
		{
			name: "Falha ao ler configurações aborta a montagem",
			setup: func(o *mocks.MockOrderRepository, e *mocks.MockExpenseRepository, s *mocks.MockSettingsRepository) {
				o.EXPECT().ListOrders(10).Return([]*domain.Order{}, nil)
				e.EXPECT().ListExpenses(10).Return([]*domain.Expense{}, nil)
				s.EXPECT().GetSettings().Return(nil, dbErr)
			},
			expected: ErrFetchSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service, mockOrderRepo, mockExpenseRepo, mockSettingsRepo := newTestService(ctrl)
			tt.setup(mockOrderRepo, mockExpenseRepo, mockSettingsRepo)

			view, err := service.BuildDashboardView(10)
			assert.Nil(t, view)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_ComputeTrends(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	currentStart := now.Add(-trendWindow)
	previousStart := now.Add(-2 * trendWindow)

	service, mockOrderRepo, _, _ := newTestService(ctrl)

	mockOrderRepo.EXPECT().SumCompletedOrderAmounts(currentStart, now).Return(150.0, nil)
	mockOrderRepo.EXPECT().SumCompletedOrderAmounts(previousStart, currentStart).Return(100.0, nil)
	mockOrderRepo.EXPECT().CountOrders(currentStart, now).Return(5, nil)
	mockOrderRepo.EXPECT().CountOrders(previousStart, currentStart).Return(10, nil)
	mockOrderRepo.EXPECT().CountDistinctCustomers(currentStart, now).Return(3, nil)
	mockOrderRepo.EXPECT().CountDistinctCustomers(previousStart, currentStart).Return(0, nil)

	trends, err := service.ComputeTrends(now)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, trends.Revenue)
	assert.Equal(t, -50.0, trends.Orders)
	assert.Equal(t, 100.0, trends.Customers) // período anterior zerado
}

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{"Crescimento de 50%", 150, 100, 50},
		{"Queda de 50%", 50, 100, -50},
		{"Sem variação", 100, 100, 0},
		{"Período anterior zerado", 42, 0, 100},
		{"Ambos os períodos zerados", 0, 0, 100},
		{"Queda total", 0, 80, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentageChange(tt.current, tt.previous))
		})
	}
}
