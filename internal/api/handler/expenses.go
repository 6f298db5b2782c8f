package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/internal/usecases/expensing"
	"github.com/dlourenco/business-ops-api/pkg/apiErrors"
)

func ListExpenses(service expensing.ExpenseService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expenses, err := service.ListExpenses()
		if err != nil {
			logrus.Error("Erro ao listar despesas:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar despesas no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(expenses); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func CreateExpense(service expensing.ExpenseService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateExpense")

		var req domain.CreateExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		expense, err := service.CreateExpense(&req)
		if err != nil {
			logrus.Error("Erro ao criar despesa:", err)
			writeExpenseError(w, err, "")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(expense); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func DeleteExpense(service expensing.ExpenseService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteExpense")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da despesa é obrigatório", nil)
			return
		}

		if err := service.DeleteExpense(id); err != nil {
			logrus.Error("Erro ao excluir despesa:", err)
			writeExpenseError(w, err, id)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// writeExpenseError traduz erros do serviço de despesas em respostas HTTP
func writeExpenseError(w http.ResponseWriter, err error, expenseID string) {
	// Verificar se é um ExpenseError para obter detalhes específicos do erro
	var expenseErr *expensing.ExpenseError
	if errors.As(err, &expenseErr) {
		var details map[string]interface{}
		if expenseErr.ExpenseID != "" {
			details = map[string]interface{}{"expense_id": expenseErr.ExpenseID}
		}
		apiErrors.WriteError(w, expenseErr.Code, expenseErr.Error(), details)
		return
	}

	// Caso não seja um ExpenseError específico, verificar erros comuns
	switch {
	case errors.Is(err, expensing.ErrExpenseNotFound):
		apiErrors.WriteError(w, apiErrors.ErrExpenseNotFound, "Despesa não encontrada", map[string]interface{}{
			"expense_id": expenseID,
		})

	case errors.Is(err, expensing.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, expensing.ErrInvalidDate):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data da despesa inválida, use o formato YYYY-MM-DD", nil)

	case errors.Is(err, expensing.ErrGenerateID):
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificadores únicos", nil)

	case errors.Is(err, expensing.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar despesas no banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar despesa", nil)
	}
}
