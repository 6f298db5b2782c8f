package dashboarding

import "errors"

// Erros específicos para o contexto do dashboard
var (
	ErrFetchOrders   = errors.New("error fetching orders from database")
	ErrFetchExpenses = errors.New("error fetching expenses from database")
	ErrFetchSettings = errors.New("error fetching settings from database")
)
