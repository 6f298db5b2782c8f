package ordering

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/pkg/apiErrors"
	"github.com/dlourenco/business-ops-api/pkg/utils"
)

type OrderService interface {
	ListOrders() ([]*domain.Order, error)
	GetOrder(orderID string) (*domain.Order, error)
	CreateOrder(req *domain.CreateOrderRequest) (*domain.Order, error)
	UpdateOrder(orderID string, req *domain.UpdateOrderRequest) (*domain.Order, error)
	DeleteOrder(orderID string) error

	// ToggleCompletion inverte a flag de conclusão do pedido. Quando o pedido
	// passa de pendente para concluído, dispara a recomputação de métricas em
	// modo melhor-esforço: falhas são apenas logadas, nunca propagadas.
	ToggleCompletion(orderID string) (*domain.Order, error)
}

type Service struct {
	orderRepository repository.OrderRepository
	metricsService  metrics.Recomputer
}

func NewService(orderRepo repository.OrderRepository, metricsService metrics.Recomputer) OrderService {
	return &Service{
		orderRepository: orderRepo,
		metricsService:  metricsService,
	}
}

func (s *Service) ListOrders() ([]*domain.Order, error) {
	orders, err := s.orderRepository.ListOrders(0)
	if err != nil {
		return nil, NewOrderError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return orders, nil
}

func (s *Service) GetOrder(orderID string) (*domain.Order, error) {
	order, err := s.orderRepository.GetOrderByID(orderID)
	if err != nil {
		return nil, NewOrderErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, orderID, err.Error())
	}

	if order == nil {
		return nil, NewOrderErrorWithID(ErrOrderNotFound, apiErrors.ErrOrderNotFound, orderID, "")
	}

	return order, nil
}

// CreateOrder valida os campos obrigatórios e calcula os totais no servidor:
// total de cada item = quantidade × preço unitário, e o total do pedido é a
// soma dos itens mais as taxas adicionais. Valores enviados pelo cliente para
// esses campos são ignorados.
func (s *Service) CreateOrder(req *domain.CreateOrderRequest) (*domain.Order, error) {
	if req.CustomerName == "" || req.Address == "" || req.DeliveryTime.IsZero() || len(req.OrderItems) == 0 {
		return nil, NewOrderError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData,
			"customer_name, address, delivery_time e ao menos um item são obrigatórios")
	}

	orderID, err := utils.GenerateID()
	if err != nil {
		return nil, NewOrderError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	order := &domain.Order{
		ID:             orderID,
		CustomerName:   req.CustomerName,
		Description:    req.Description,
		Address:        req.Address,
		DeliveryTime:   req.DeliveryTime,
		OrderItems:     make([]*domain.OrderItem, 0, len(req.OrderItems)),
		AdditionalFees: make([]*domain.AdditionalFee, 0, len(req.AdditionalFees)),
	}

	var itemsTotal float64
	for _, itemReq := range req.OrderItems {
		if itemReq.Name == "" || itemReq.Quantity < 1 || itemReq.UnitPrice < 0 {
			return nil, NewOrderError(ErrInvalidOrderItem, apiErrors.ErrInvalidFormat,
				fmt.Sprintf("item %q com quantidade ou preço inválido", itemReq.Name))
		}

		itemID, err := utils.GenerateID()
		if err != nil {
			return nil, NewOrderError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
		}

		totalPrice := float64(itemReq.Quantity) * itemReq.UnitPrice
		order.OrderItems = append(order.OrderItems, &domain.OrderItem{
			ID:         itemID,
			OrderID:    orderID,
			Name:       itemReq.Name,
			Quantity:   itemReq.Quantity,
			UnitPrice:  itemReq.UnitPrice,
			TotalPrice: totalPrice,
		})
		itemsTotal += totalPrice
	}

	var feesTotal float64
	for _, feeReq := range req.AdditionalFees {
		feeID, err := utils.GenerateID()
		if err != nil {
			return nil, NewOrderError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
		}

		order.AdditionalFees = append(order.AdditionalFees, &domain.AdditionalFee{
			ID:      feeID,
			OrderID: orderID,
			Name:    feeReq.Name,
			Amount:  feeReq.Amount,
		})
		feesTotal += feeReq.Amount
	}

	order.TotalAmount = utils.RoundWithTwoDecimalPlace(itemsTotal + feesTotal)

	if err := s.orderRepository.CreateOrder(order); err != nil {
		return nil, NewOrderErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, orderID, err.Error())
	}

	return order, nil
}

// UpdateOrder aplica uma atualização parcial. O valor total não é recalculado:
// itens e taxas são imutáveis após a criação.
func (s *Service) UpdateOrder(orderID string, req *domain.UpdateOrderRequest) (*domain.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}

	if req.Description != nil {
		order.Description = req.Description
	}

	if req.Address != nil {
		order.Address = *req.Address
	}

	if req.DeliveryTime != nil {
		order.DeliveryTime = *req.DeliveryTime
	}

	if err := s.orderRepository.UpdateOrder(order); err != nil {
		return nil, NewOrderErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, orderID, err.Error())
	}

	return s.GetOrder(orderID)
}

// DeleteOrder remove o pedido. A exclusão NÃO dispara recomputação de
// métricas — janela de inconsistência aceita, curada pela reconciliação
// agendada.
func (s *Service) DeleteOrder(orderID string) error {
	rowsAffected, err := s.orderRepository.DeleteOrder(orderID)
	if err != nil {
		return NewOrderErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, orderID, err.Error())
	}

	if rowsAffected == 0 {
		return NewOrderErrorWithID(ErrOrderNotFound, apiErrors.ErrOrderNotFound, orderID, "")
	}

	return nil
}

func (s *Service) ToggleCompletion(orderID string) (*domain.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepository.UpdateOrderCompletion(orderID, !order.IsCompleted); err != nil {
		return nil, NewOrderErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, orderID, err.Error())
	}

	updated, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if updated.IsCompleted {
		if _, err := s.metricsService.Recompute(); err != nil {
			logrus.WithError(err).WithField("order_id", orderID).
				Error("Erro ao recalcular métricas após conclusão de pedido; métricas podem ficar defasadas até a próxima recomputação")
		}
	}

	return updated, nil
}
