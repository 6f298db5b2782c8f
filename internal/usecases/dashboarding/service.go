package dashboarding

import (
	"fmt"
	"sort"
	"time"

	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/pkg/utils"
)

// DefaultRecentLimit é a quantidade de registros recentes considerada pelo
// dashboard. Os totais de topo são calculados sobre esse recorte, não sobre o
// histórico completo — comportamento do produto, não corrigir aqui.
const DefaultRecentLimit = 10

// monthLabelFormat produz rótulos como "May 2025"
const monthLabelFormat = "Jan 2006"

// trendWindow é o tamanho das janelas de comparação de tendências
const trendWindow = 30 * 24 * time.Hour

// Dashboarder define a interface do agregador de dashboard e de tendências
type Dashboarder interface {
	// BuildDashboardView monta o read-model do dashboard a partir dos últimos
	// `limit` pedidos e despesas. limit <= 0 usa DefaultRecentLimit.
	BuildDashboardView(limit int) (*domain.DashboardView, error)

	// ComputeTrends compara a janela [now-30d, now) com [now-60d, now-30d)
	ComputeTrends(now time.Time) (*domain.Trends, error)
}

type Service struct {
	orderRepository    repository.OrderRepository
	expenseRepository  repository.ExpenseRepository
	settingsRepository repository.SettingsRepository
}

func NewService(
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingsRepository,
) Dashboarder {
	return &Service{
		orderRepository:    orderRepo,
		expenseRepository:  expenseRepo,
		settingsRepository: settingsRepo,
	}
}

// BuildDashboardView é uma função pura dos conjuntos lidos: nada é cacheado
// entre chamadas. Qualquer falha de leitura aborta a montagem inteira — o
// chamador devolve um dashboard zerado em vez de dados parciais.
func (s *Service) BuildDashboardView(limit int) (*domain.DashboardView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	orders, err := s.orderRepository.ListOrders(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	expenses, err := s.expenseRepository.ListExpenses(limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchExpenses, err)
	}

	settings, err := s.settingsRepository.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchSettings, err)
	}

	var funding float64
	if settings != nil {
		funding = settings.BusinessFunding
	}

	var totalRevenue, totalExpenses float64
	pendingOrders := 0
	for _, order := range orders {
		totalRevenue += order.TotalAmount
		if !order.IsCompleted {
			pendingOrders++
		}
	}
	for _, expense := range expenses {
		totalExpenses += expense.Amount
	}

	view := &domain.DashboardView{
		Metrics: domain.DashboardMetrics{
			CurrentFunding: utils.RoundWithTwoDecimalPlace(funding + totalRevenue - totalExpenses),
			TotalRevenue:   utils.RoundWithTwoDecimalPlace(totalRevenue),
			TotalExpenses:  utils.RoundWithTwoDecimalPlace(totalExpenses),
			TotalOrders:    len(orders),
			PendingOrders:  pendingOrders,
		},
		RevenueByMonth:     groupByMonth(orders, expenses),
		ExpensesByCategory: groupByCategory(expenses),
		RecentActivity:     mergeRecentActivity(orders, expenses, limit),
	}

	return view, nil
}

func (s *Service) ComputeTrends(now time.Time) (*domain.Trends, error) {
	currentStart := now.Add(-trendWindow)
	previousStart := now.Add(-2 * trendWindow)

	currentRevenue, err := s.orderRepository.SumCompletedOrderAmounts(currentStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	previousRevenue, err := s.orderRepository.SumCompletedOrderAmounts(previousStart, currentStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	currentOrders, err := s.orderRepository.CountOrders(currentStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	previousOrders, err := s.orderRepository.CountOrders(previousStart, currentStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	currentCustomers, err := s.orderRepository.CountDistinctCustomers(currentStart, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	previousCustomers, err := s.orderRepository.CountDistinctCustomers(previousStart, currentStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchOrders, err)
	}

	return &domain.Trends{
		Revenue:   PercentageChange(currentRevenue, previousRevenue),
		Orders:    PercentageChange(float64(currentOrders), float64(previousOrders)),
		Customers: PercentageChange(float64(currentCustomers), float64(previousCustomers)),
	}, nil
}

// PercentageChange retorna a variação percentual entre dois períodos.
// Quando o período anterior é zero o resultado é sempre +100, inclusive no
// caso 0 → 0. A convenção achata "saiu do zero" em +100% independente da
// magnitude; é comportamento documentado do produto, não um bug.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return ((current - previous) / previous) * 100
}

// groupByMonth agrupa receita (pedidos) e despesas por mês de calendário.
// A ordem dos meses é a ordem do primeiro encontro iterando pedidos e depois
// despesas, preservando a paridade com o comportamento original da tela.
func groupByMonth(orders []*domain.Order, expenses []*domain.Expense) []*domain.MonthlyRevenue {
	months := make([]*domain.MonthlyRevenue, 0)
	byLabel := make(map[string]*domain.MonthlyRevenue)

	entryFor := func(label string) *domain.MonthlyRevenue {
		if entry, ok := byLabel[label]; ok {
			return entry
		}
		entry := &domain.MonthlyRevenue{Month: label}
		byLabel[label] = entry
		months = append(months, entry)
		return entry
	}

	for _, order := range orders {
		entry := entryFor(order.CreatedAt.Format(monthLabelFormat))
		entry.Revenue += order.TotalAmount
	}

	for _, expense := range expenses {
		entry := entryFor(expense.Date.Format(monthLabelFormat))
		entry.Expenses += expense.Amount
	}

	return months
}

// groupByCategory soma as despesas por categoria, na ordem do primeiro encontro
func groupByCategory(expenses []*domain.Expense) []*domain.CategoryExpense {
	categories := make([]*domain.CategoryExpense, 0)
	byCategory := make(map[string]*domain.CategoryExpense)

	for _, expense := range expenses {
		entry, ok := byCategory[expense.Category]
		if !ok {
			entry = &domain.CategoryExpense{Category: expense.Category}
			byCategory[expense.Category] = entry
			categories = append(categories, entry)
		}
		entry.Amount += expense.Amount
	}

	return categories
}

// mergeRecentActivity combina pedidos e despesas em um único feed ordenado
// por data decrescente, truncado em `limit` entradas
func mergeRecentActivity(orders []*domain.Order, expenses []*domain.Expense, limit int) []*domain.ActivityEntry {
	activity := make([]*domain.ActivityEntry, 0, len(orders)+len(expenses))

	for _, order := range orders {
		activity = append(activity, &domain.ActivityEntry{
			Type:   domain.ActivityTypeOrder,
			Title:  fmt.Sprintf("New order from %s", order.CustomerName),
			Amount: order.TotalAmount,
			Date:   order.CreatedAt,
		})
	}

	for _, expense := range expenses {
		activity = append(activity, &domain.ActivityEntry{
			Type:   domain.ActivityTypeExpense,
			Title:  expense.Description,
			Amount: expense.Amount,
			Date:   expense.Date,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Date.After(activity[j].Date)
	})

	if len(activity) > limit {
		activity = activity[:limit]
	}

	return activity
}
