package domain

import "time"

// BusinessMetricsID é a chave fixa do registro único de métricas do negócio
const BusinessMetricsID = "default"

// BusinessMetrics é o resumo financeiro derivado do conjunto completo de
// pedidos e despesas. É sempre reconstruído do zero e gravado por upsert,
// nunca atualizado de forma incremental.
type BusinessMetrics struct {
	ID        string    `json:"id"`
	Revenue   float64   `json:"revenue"`
	Expenses  float64   `json:"expenses"`
	Profit    float64   `json:"profit"`
	UpdatedAt time.Time `json:"updated_at"`
}
