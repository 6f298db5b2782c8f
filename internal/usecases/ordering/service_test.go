package ordering

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

func TestService_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	service := &Service{orderRepository: mockOrderRepo}

	deliveryTime := time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)

	req := &domain.CreateOrderRequest{
		CustomerName: "Maria",
		Address:      "Rua das Flores, 123",
		DeliveryTime: deliveryTime,
		OrderItems: []domain.OrderItemRequest{
			{Name: "Bolo de chocolate", Quantity: 2, UnitPrice: 25.50},
			{Name: "Torta de limão", Quantity: 1, UnitPrice: 30.00},
		},
		AdditionalFees: []domain.AdditionalFeeRequest{
			{Name: "Entrega", Amount: 8.00},
		},
	}

	mockOrderRepo.EXPECT().CreateOrder(gomock.Any()).DoAndReturn(func(order *domain.Order) error {
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "Maria", order.CustomerName)
		assert.Len(t, order.OrderItems, 2)
		assert.Len(t, order.AdditionalFees, 1)

		// Totais calculados no servidor: 2×25.50 + 30.00 + 8.00
		assert.Equal(t, 51.0, order.OrderItems[0].TotalPrice)
		assert.Equal(t, 30.0, order.OrderItems[1].TotalPrice)
		assert.Equal(t, 89.0, order.TotalAmount)
		return nil
	})

	order, err := service.CreateOrder(req)
	assert.NoError(t, err)
	assert.False(t, order.IsCompleted)
	assert.Equal(t, 89.0, order.TotalAmount)
}

func TestService_CreateOrder_Validation(t *testing.T) {
	deliveryTime := time.Date(2025, 9, 1, 14, 0, 0, 0, time.UTC)

	validItems := []domain.OrderItemRequest{
		{Name: "Bolo", Quantity: 1, UnitPrice: 10.0},
	}

	tests := []struct {
		name     string
		req      *domain.CreateOrderRequest
		expected error
	}{
		{
			name: "Sem nome do cliente",
			req: &domain.CreateOrderRequest{
				Address:      "Rua A",
				DeliveryTime: deliveryTime,
				OrderItems:   validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Sem endereço",
			req: &domain.CreateOrderRequest{
				CustomerName: "Maria",
				DeliveryTime: deliveryTime,
				OrderItems:   validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Sem horário de entrega",
			req: &domain.CreateOrderRequest{
				CustomerName: "Maria",
				Address:      "Rua A",
				OrderItems:   validItems,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Sem itens",
			req: &domain.CreateOrderRequest{
				CustomerName: "Maria",
				Address:      "Rua A",
				DeliveryTime: deliveryTime,
			},
			expected: ErrMissingRequiredData,
		},
		{
			name: "Item com quantidade zero",
			req: &domain.CreateOrderRequest{
				CustomerName: "Maria",
				Address:      "Rua A",
				DeliveryTime: deliveryTime,
				OrderItems: []domain.OrderItemRequest{
					{Name: "Bolo", Quantity: 0, UnitPrice: 10.0},
				},
			},
			expected: ErrInvalidOrderItem,
		},
		{
			name: "Item com preço negativo",
			req: &domain.CreateOrderRequest{
				CustomerName: "Maria",
				Address:      "Rua A",
				DeliveryTime: deliveryTime,
				OrderItems: []domain.OrderItemRequest{
					{Name: "Bolo", Quantity: 1, UnitPrice: -5.0},
				},
			},
			expected: ErrInvalidOrderItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
			service := &Service{orderRepository: mockOrderRepo}

			order, err := service.CreateOrder(tt.req)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestService_GetOrder_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	service := &Service{orderRepository: mockOrderRepo}

	mockOrderRepo.EXPECT().GetOrderByID("NOP001").Return(nil, nil)

	order, err := service.GetOrder("NOP001")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	var orderErr *OrderError
	assert.ErrorAs(t, err, &orderErr)
	assert.Equal(t, "NOP001", orderErr.OrderID)
}

func TestService_DeleteOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	service := &Service{orderRepository: mockOrderRepo}

	mockOrderRepo.EXPECT().DeleteOrder("ORD001").Return(int64(1), nil)
	assert.NoError(t, service.DeleteOrder("ORD001"))

	mockOrderRepo.EXPECT().DeleteOrder("NOP001").Return(int64(0), nil)
	assert.ErrorIs(t, service.DeleteOrder("NOP001"), ErrOrderNotFound)
}

func TestService_ToggleCompletion(t *testing.T) {
	tests := []struct {
		name  string
		setup func(o *mocks.MockOrderRepository, m *metricsmocks.MockRecomputer)
	}{
		{
			name: "Concluir pedido dispara recomputação de métricas",
			setup: func(o *mocks.MockOrderRepository, m *metricsmocks.MockRecomputer) {
				pending := &domain.Order{ID: "ORD001", CustomerName: "Maria", TotalAmount: 75.0, IsCompleted: false}
				completed := &domain.Order{ID: "ORD001", CustomerName: "Maria", TotalAmount: 75.0, IsCompleted: true}

				o.EXPECT().GetOrderByID("ORD001").Return(pending, nil)
				o.EXPECT().UpdateOrderCompletion("ORD001", true).Return(nil)
				o.EXPECT().GetOrderByID("ORD001").Return(completed, nil)

				m.EXPECT().Recompute().Return(&domain.BusinessMetrics{
					ID:      domain.BusinessMetricsID,
					Revenue: 75.0,
					Profit:  75.0,
				}, nil)
			},
		},
		{
			name: "Falha na recomputação não desfaz a conclusão",
			setup: func(o *mocks.MockOrderRepository, m *metricsmocks.MockRecomputer) {
				pending := &domain.Order{ID: "ORD001", IsCompleted: false}
				completed := &domain.Order{ID: "ORD001", IsCompleted: true}

				o.EXPECT().GetOrderByID("ORD001").Return(pending, nil)
				o.EXPECT().UpdateOrderCompletion("ORD001", true).Return(nil)
				o.EXPECT().GetOrderByID("ORD001").Return(completed, nil)

				m.EXPECT().Recompute().Return(nil, errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
			mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

			service := &Service{
				orderRepository: mockOrderRepo,
				metricsService:  mockRecomputer,
			}

			tt.setup(mockOrderRepo, mockRecomputer)

			order, err := service.ToggleCompletion("ORD001")
			assert.NoError(t, err)
			assert.True(t, order.IsCompleted)
		})
	}
}

// Reabrir um pedido concluído não dispara recomputação
func TestService_ToggleCompletion_Reopen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	mockRecomputer := metricsmocks.NewMockRecomputer(ctrl)

	service := &Service{
		orderRepository: mockOrderRepo,
		metricsService:  mockRecomputer,
	}

	completed := &domain.Order{ID: "ORD001", IsCompleted: true}
	reopened := &domain.Order{ID: "ORD001", IsCompleted: false}

	mockOrderRepo.EXPECT().GetOrderByID("ORD001").Return(completed, nil)
	mockOrderRepo.EXPECT().UpdateOrderCompletion("ORD001", false).Return(nil)
	mockOrderRepo.EXPECT().GetOrderByID("ORD001").Return(reopened, nil)
	// Nenhuma chamada a Recompute esperada

	order, err := service.ToggleCompletion("ORD001")
	assert.NoError(t, err)
	assert.False(t, order.IsCompleted)
}

func TestService_UpdateOrder_PartialFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrderRepo := mocks.NewMockOrderRepository(ctrl)
	service := &Service{orderRepository: mockOrderRepo}

	existing := &domain.Order{
		ID:           "ORD001",
		CustomerName: "Maria",
		Address:      "Rua A",
		TotalAmount:  50.0,
	}

	newName := "Maria Silva"

	mockOrderRepo.EXPECT().GetOrderByID("ORD001").Return(existing, nil)
	mockOrderRepo.EXPECT().UpdateOrder(gomock.Any()).DoAndReturn(func(order *domain.Order) error {
		assert.Equal(t, "Maria Silva", order.CustomerName)
		assert.Equal(t, "Rua A", order.Address) // campo não enviado permanece
		assert.Equal(t, 50.0, order.TotalAmount)
		return nil
	})
	mockOrderRepo.EXPECT().GetOrderByID("ORD001").Return(&domain.Order{
		ID:           "ORD001",
		CustomerName: newName,
		Address:      "Rua A",
		TotalAmount:  50.0,
	}, nil)

	order, err := service.UpdateOrder("ORD001", &domain.UpdateOrderRequest{CustomerName: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "Maria Silva", order.CustomerName)
}
