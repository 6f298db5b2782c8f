package settings

import (
	"errors"
	"fmt"

	"github.com/dlourenco/business-ops-api/infrastructure/repository"
	"github.com/dlourenco/business-ops-api/internal/domain"
)

// Erros específicos para o contexto de configurações
var (
	ErrFetchSettings = errors.New("error fetching settings from database")
	ErrSaveSettings  = errors.New("error saving settings")
)

type SettingsService interface {
	// GetSettings retorna o registro único de configurações. Quando ele ainda
	// não existe, retorna os padrões sem criar nada no banco.
	GetSettings() (*domain.Settings, error)
	SaveSettings(req *domain.SaveSettingsRequest) (*domain.Settings, error)
}

type Service struct {
	settingsRepository repository.SettingsRepository
}

func NewService(settingsRepo repository.SettingsRepository) SettingsService {
	return &Service{
		settingsRepository: settingsRepo,
	}
}

func (s *Service) GetSettings() (*domain.Settings, error) {
	settings, err := s.settingsRepository.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchSettings, err)
	}

	if settings == nil {
		return domain.DefaultSettings(), nil
	}

	return settings, nil
}

func (s *Service) SaveSettings(req *domain.SaveSettingsRequest) (*domain.Settings, error) {
	settings := &domain.Settings{
		ID:                   domain.SettingsID,
		BusinessName:         req.BusinessName,
		BusinessEmail:        req.BusinessEmail,
		Currency:             req.Currency,
		BusinessFunding:      req.BusinessFunding,
		NotificationsEnabled: req.NotificationsEnabled,
		EmailNotifications:   req.EmailNotifications,
	}

	if settings.Currency == "" {
		settings.Currency = domain.DefaultSettings().Currency
	}

	if err := s.settingsRepository.UpsertSettings(settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveSettings, err)
	}

	return settings, nil
}
