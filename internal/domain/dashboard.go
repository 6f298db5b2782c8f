package domain

import "time"

// Tipos de entrada do feed de atividade recente
const (
	ActivityTypeOrder   = "order"
	ActivityTypeExpense = "expense"
)

// DashboardMetrics são os números de topo do dashboard, calculados sobre o
// conjunto limitado de registros mais recentes (não sobre o histórico completo)
type DashboardMetrics struct {
	CurrentFunding float64 `json:"current_funding"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalExpenses  float64 `json:"total_expenses"`
	TotalOrders    int     `json:"total_orders"`
	PendingOrders  int     `json:"pending_orders"`
}

// MonthlyRevenue agrupa receita e despesas de um mês ("Jan 2006")
type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// CategoryExpense é o total de despesas de uma categoria
type CategoryExpense struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ActivityEntry é uma entrada do feed de atividade recente (pedido ou despesa)
type ActivityEntry struct {
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// DashboardView é o read-model composto consumido pela tela principal
type DashboardView struct {
	Metrics            DashboardMetrics   `json:"metrics"`
	RevenueByMonth     []*MonthlyRevenue  `json:"revenue_by_month"`
	ExpensesByCategory []*CategoryExpense `json:"expenses_by_category"`
	RecentActivity     []*ActivityEntry   `json:"recent_activity"`
}

// EmptyDashboardView retorna um dashboard zerado, usado quando qualquer
// leitura falha: a degradação é tudo-ou-nada, nunca dados parciais
func EmptyDashboardView() *DashboardView {
	return &DashboardView{
		RevenueByMonth:     []*MonthlyRevenue{},
		ExpensesByCategory: []*CategoryExpense{},
		RecentActivity:     []*ActivityEntry{},
	}
}

// Trends são as variações percentuais entre a janela dos últimos 30 dias e a
// janela dos 30 dias anteriores
type Trends struct {
	Revenue   float64 `json:"revenue"`
	Orders    float64 `json:"orders"`
	Customers float64 `json:"customers"`
}
