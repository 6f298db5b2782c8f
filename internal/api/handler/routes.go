package handler

import (
	"net/http"

	"github.com/dlourenco/business-ops-api/internal/api/handler/router"
	"github.com/dlourenco/business-ops-api/internal/usecases/authenticating"
	"github.com/dlourenco/business-ops-api/internal/usecases/dashboarding"
	"github.com/dlourenco/business-ops-api/internal/usecases/expensing"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/internal/usecases/ordering"
	"github.com/dlourenco/business-ops-api/internal/usecases/settings"
	"github.com/dlourenco/business-ops-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Orders(service ordering.OrderService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/orders",
			Method:      http.MethodGet,
			Handler:     ListOrders(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders",
			Method:      http.MethodPost,
			Handler:     CreateOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodGet,
			Handler:     GetOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodPut,
			Handler:     UpdateOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteOrder(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/orders/:id/toggle",
			Method:      http.MethodPatch,
			Handler:     ToggleOrderCompletion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Expenses(service expensing.ExpenseService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/expenses",
			Method:      http.MethodPost,
			Handler:     CreateExpense(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Settings(service settings.SettingsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/settings",
			Method:      http.MethodGet,
			Handler:     GetSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/settings",
			Method:      http.MethodPut,
			Handler:     SaveSettings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Dashboard(dashboardService dashboarding.Dashboarder, metricsService metrics.Recomputer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(dashboardService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/trends",
			Method:      http.MethodGet,
			Handler:     GetDashboardTrends(dashboardService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/metrics",
			Method:      http.MethodGet,
			Handler:     GetBusinessMetrics(metricsService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
