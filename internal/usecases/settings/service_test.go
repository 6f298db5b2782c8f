package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/dlourenco/business-ops-api/infrastructure/repository/mocks"
	"github.com/dlourenco/business-ops-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_GetSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	stored := &domain.Settings{
		ID:              domain.SettingsID,
		BusinessName:    "Doces da Maria",
		Currency:        "BRL",
		BusinessFunding: 5000.0,
	}

	mockSettingsRepo.EXPECT().GetSettings().Return(stored, nil)

	result, err := service.GetSettings()
	assert.NoError(t, err)
	assert.Equal(t, stored, result)
}

// Quando o registro ainda não existe, os padrões são retornados sem gravar nada
func TestService_GetSettings_DefaultsWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	mockSettingsRepo.EXPECT().GetSettings().Return(nil, nil)

	result, err := service.GetSettings()
	assert.NoError(t, err)
	assert.Equal(t, domain.SettingsID, result.ID)
	assert.Equal(t, "XCD", result.Currency)
	assert.True(t, result.NotificationsEnabled)
	assert.True(t, result.EmailNotifications)
}

func TestService_GetSettings_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	mockSettingsRepo.EXPECT().GetSettings().Return(nil, errors.New("connection refused"))

	result, err := service.GetSettings()
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrFetchSettings)
}

func TestService_SaveSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	req := &domain.SaveSettingsRequest{
		BusinessName:         "Doces da Maria",
		BusinessEmail:        "contato@docesdamaria.com",
		Currency:             "BRL",
		BusinessFunding:      2500.0,
		NotificationsEnabled: true,
		EmailNotifications:   false,
	}

	mockSettingsRepo.EXPECT().UpsertSettings(gomock.Any()).DoAndReturn(func(settings *domain.Settings) error {
		// A chave do registro único é sempre forçada no servidor
		assert.Equal(t, domain.SettingsID, settings.ID)
		assert.Equal(t, "Doces da Maria", settings.BusinessName)
		assert.Equal(t, "BRL", settings.Currency)
		return nil
	})

	result, err := service.SaveSettings(req)
	assert.NoError(t, err)
	assert.Equal(t, 2500.0, result.BusinessFunding)
	assert.False(t, result.EmailNotifications)
}

func TestService_SaveSettings_DefaultCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	mockSettingsRepo.EXPECT().UpsertSettings(gomock.Any()).Return(nil)

	result, err := service.SaveSettings(&domain.SaveSettingsRequest{
		BusinessName: "Doces da Maria",
	})
	assert.NoError(t, err)
	assert.Equal(t, "XCD", result.Currency)
}

func TestService_SaveSettings_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSettingsRepo := mocks.NewMockSettingsRepository(ctrl)
	service := &Service{settingsRepository: mockSettingsRepo}

	mockSettingsRepo.EXPECT().UpsertSettings(gomock.Any()).Return(errors.New("connection refused"))

	result, err := service.SaveSettings(&domain.SaveSettingsRequest{Currency: "XCD"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSaveSettings)
}
