package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/dlourenco/business-ops-api/infrastructure/database/postgres"
	"github.com/dlourenco/business-ops-api/internal/domain"
)

const settingsTable = "settings"

type SettingsRepository interface {
	// GetSettings retorna o registro único de configurações, ou nil quando
	// ele ainda não foi criado
	GetSettings() (*domain.Settings, error)
	UpsertSettings(settings *domain.Settings) error
}

type settingsRepository struct {
	conn *postgres.Connection
}

func NewSettingsRepository(conn *postgres.Connection) SettingsRepository {
	return &settingsRepository{
		conn: conn,
	}
}

func (r *settingsRepository) GetSettings() (*domain.Settings, error) {
	query, args, err := squirrel.
		Select("id, business_name, business_email, currency, business_funding, notifications_enabled, email_notifications, updated_at").
		From(settingsTable).
		Where(squirrel.Eq{"id": domain.SettingsID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	settings := &domain.Settings{}
	err = r.conn.QueryRow(query, args...).Scan(
		&settings.ID,
		&settings.BusinessName,
		&settings.BusinessEmail,
		&settings.Currency,
		&settings.BusinessFunding,
		&settings.NotificationsEnabled,
		&settings.EmailNotifications,
		&settings.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear configurações: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) UpsertSettings(settings *domain.Settings) error {
	query, args, err := squirrel.StatementBuilder.
		Insert(settingsTable).
		Columns("id", "business_name", "business_email", "currency", "business_funding", "notifications_enabled", "email_notifications").
		Values(
			domain.SettingsID,
			settings.BusinessName,
			settings.BusinessEmail,
			settings.Currency,
			settings.BusinessFunding,
			settings.NotificationsEnabled,
			settings.EmailNotifications,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				business_name = EXCLUDED.business_name,
				business_email = EXCLUDED.business_email,
				currency = EXCLUDED.currency,
				business_funding = EXCLUDED.business_funding,
				notifications_enabled = EXCLUDED.notifications_enabled,
				email_notifications = EXCLUDED.email_notifications,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
