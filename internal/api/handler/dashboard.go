package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/internal/usecases/dashboarding"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/pkg/apiErrors"
)

// GetDashboard retorna o read-model agregado do dashboard. Em caso de
// falha responde 500 com a estrutura zerada, para que o cliente consiga
// renderizar a tela mesmo sem dados.
func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := dashboarding.DefaultRecentLimit
		if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
			parsed, err := strconv.Atoi(rawLimit)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		view, err := service.BuildDashboardView(limit)
		if err != nil {
			logrus.Error("Erro ao montar dashboard:", err)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(domain.EmptyDashboardView())
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(view); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetDashboardTrends compara os últimos 30 dias com os 30 dias anteriores
func GetDashboardTrends(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trends, err := service.ComputeTrends(time.Now())
		if err != nil {
			logrus.Error("Erro ao calcular tendências:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular tendências do dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(trends); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// GetBusinessMetrics retorna o último resumo financeiro materializado
func GetBusinessMetrics(service metrics.Recomputer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.CurrentMetrics()
		if err != nil {
			logrus.Error("Erro ao buscar métricas do negócio:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar métricas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(summary); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}
