package domain

import "time"

// SettingsID é a chave fixa do registro único de configurações do negócio
const SettingsID = 1

// Settings representa as configurações do negócio. Existe no máximo um
// registro, sempre gravado com a chave SettingsID.
type Settings struct {
	ID                   int       `json:"id"`
	BusinessName         string    `json:"business_name"`
	BusinessEmail        string    `json:"business_email"`
	Currency             string    `json:"currency"`
	BusinessFunding      float64   `json:"business_funding"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	EmailNotifications   bool      `json:"email_notifications"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DefaultSettings retorna as configurações padrão usadas quando o registro
// ainda não existe no banco
func DefaultSettings() *Settings {
	return &Settings{
		ID:                   SettingsID,
		Currency:             "XCD",
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
}

// SaveSettingsRequest é o payload de gravação das configurações
type SaveSettingsRequest struct {
	BusinessName         string  `json:"business_name"`
	BusinessEmail        string  `json:"business_email"`
	Currency             string  `json:"currency"`
	BusinessFunding      float64 `json:"business_funding"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	EmailNotifications   bool    `json:"email_notifications"`
}
