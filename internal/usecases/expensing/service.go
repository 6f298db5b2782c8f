package expensing

import (
	"github.com/sirupsen/logrus"
	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"github.com/dlourenco/business-ops-api/internal/usecases/metrics"
	"github.com/dlourenco/business-ops-api/pkg/apiErrors"
	"github.com/dlourenco/business-ops-api/pkg/utils"
)

type ExpenseService interface {
	ListExpenses() ([]*domain.Expense, error)

	// CreateExpense registra a despesa e dispara a recomputação de métricas
	// em modo melhor-esforço: falha na recomputação não desfaz a criação.
	CreateExpense(req *domain.CreateExpenseRequest) (*domain.Expense, error)

	// DeleteExpense remove a despesa sem recomputar métricas (janela de
	// inconsistência aceita, curada pela reconciliação agendada)
	DeleteExpense(expenseID string) error
}

type Service struct {
	expenseRepository repository.ExpenseRepository
	metricsService    metrics.Recomputer
}

func NewService(expenseRepo repository.ExpenseRepository, metricsService metrics.Recomputer) ExpenseService {
	return &Service{
		expenseRepository: expenseRepo,
		metricsService:    metricsService,
	}
}

func (s *Service) ListExpenses() ([]*domain.Expense, error) {
	expenses, err := s.expenseRepository.ListExpenses(0)
	if err != nil {
		return nil, NewExpenseError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return expenses, nil
}

func (s *Service) CreateExpense(req *domain.CreateExpenseRequest) (*domain.Expense, error) {
	if req.Description == "" || req.Category == "" || req.Vendor == "" || req.Date == "" || len(req.Items) == 0 {
		return nil, NewExpenseError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData,
			"description, category, vendor, date e ao menos um item são obrigatórios")
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, NewExpenseError(ErrInvalidDate, apiErrors.ErrInvalidFormat, err.Error())
	}

	expenseID, err := utils.GenerateID()
	if err != nil {
		return nil, NewExpenseError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	expense := &domain.Expense{
		ID:          expenseID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Vendor:      req.Vendor,
		Date:        *date,
		Notes:       req.Notes,
		Items:       make([]*domain.ExpenseItem, 0, len(req.Items)),
	}

	// O amount informado pelo cliente é aceito como está: a igualdade com a
	// soma dos itens não é um invariante do sistema hoje
	for _, itemReq := range req.Items {
		itemID, err := utils.GenerateID()
		if err != nil {
			return nil, NewExpenseError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
		}

		expense.Items = append(expense.Items, &domain.ExpenseItem{
			ID:          itemID,
			ExpenseID:   expenseID,
			Description: itemReq.Description,
			Quantity:    itemReq.Quantity,
			UnitPrice:   itemReq.UnitPrice,
			TotalPrice:  float64(itemReq.Quantity) * itemReq.UnitPrice,
		})
	}

	if err := s.expenseRepository.CreateExpense(expense); err != nil {
		return nil, NewExpenseErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, expenseID, err.Error())
	}

	if _, err := s.metricsService.Recompute(); err != nil {
		logrus.WithError(err).WithField("expense_id", expenseID).
			Error("Erro ao recalcular métricas após criação de despesa; métricas podem ficar defasadas até a próxima recomputação")
	}

	return expense, nil
}

func (s *Service) DeleteExpense(expenseID string) error {
	rowsAffected, err := s.expenseRepository.DeleteExpense(expenseID)
	if err != nil {
		return NewExpenseErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, expenseID, err.Error())
	}

	if rowsAffected == 0 {
		return NewExpenseErrorWithID(ErrExpenseNotFound, apiErrors.ErrExpenseNotFound, expenseID, "")
	}

	return nil
}
