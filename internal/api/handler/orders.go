package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/internal/usecases/ordering"
	"github.com/dlourenco/business-ops-api/pkg/apiErrors"
)

func ListOrders(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders, err := service.ListOrders()
		if err != nil {
			logrus.Error("Erro ao listar pedidos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar pedidos no banco de dados", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(orders); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func GetOrder(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido é obrigatório", nil)
			return
		}

		order, err := service.GetOrder(id)
		if err != nil {
			logrus.Error("Erro ao buscar pedido:", err)
			writeOrderError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(order); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func CreateOrder(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOrder")

		var req domain.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		order, err := service.CreateOrder(&req)
		if err != nil {
			logrus.Error("Erro ao criar pedido:", err)
			writeOrderError(w, err, "")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(order); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func UpdateOrder(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateOrder")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido é obrigatório", nil)
			return
		}

		var req domain.UpdateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		order, err := service.UpdateOrder(id, &req)
		if err != nil {
			logrus.Error("Erro ao atualizar pedido:", err)
			writeOrderError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(order); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

func DeleteOrder(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DeleteOrder")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido é obrigatório", nil)
			return
		}

		if err := service.DeleteOrder(id); err != nil {
			logrus.Error("Erro ao excluir pedido:", err)
			writeOrderError(w, err, id)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// ToggleOrderCompletion inverte o status de conclusão de um pedido
func ToggleOrderCompletion(service ordering.OrderService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ToggleOrderCompletion")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do pedido é obrigatório", nil)
			return
		}

		order, err := service.ToggleCompletion(id)
		if err != nil {
			logrus.Error("Erro ao alternar conclusão do pedido:", err)
			writeOrderError(w, err, id)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(order); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao codificar resposta", nil)
		}
	})
}

// writeOrderError traduz erros do serviço de pedidos em respostas HTTP
func writeOrderError(w http.ResponseWriter, err error, orderID string) {
	// Verificar se é um OrderError para obter detalhes específicos do erro
	var orderErr *ordering.OrderError
	if errors.As(err, &orderErr) {
		var details map[string]interface{}
		if orderErr.OrderID != "" {
			details = map[string]interface{}{"order_id": orderErr.OrderID}
		}
		apiErrors.WriteError(w, orderErr.Code, orderErr.Error(), details)
		return
	}

	// Caso não seja um OrderError específico, verificar erros comuns
	switch {
	case errors.Is(err, ordering.ErrOrderNotFound):
		apiErrors.WriteError(w, apiErrors.ErrOrderNotFound, "Pedido não encontrado", map[string]interface{}{
			"order_id": orderID,
		})

	case errors.Is(err, ordering.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, ordering.ErrInvalidOrderItem):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, ordering.ErrGenerateID):
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar identificadores únicos", nil)

	case errors.Is(err, ordering.ErrDatabaseOperation):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar pedidos no banco de dados", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar pedido", nil)
	}
}
