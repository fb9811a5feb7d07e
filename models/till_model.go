package models

import "time"

// TillState es el único estado persistido de la caja: el par
// {apertura, montoApertura} por cajero. Su presencia define que la caja está
// abierta; al cerrar se elimina el documento.
type TillState struct {
	Usuario     string    `bson:"usuario" json:"usuario"`
	OpenedAt    time.Time `bson:"apertura" json:"apertura"`
	OpeningCash Money     `bson:"montoApertura" json:"montoApertura"`
}

// Reconciliation es el resumen que produce el corte de caja. No se persiste
// como entidad propia: se entrega al módulo de reportes para exportar.
type Reconciliation struct {
	Usuario         string    `json:"usuario"`
	OpeningCash     Money     `json:"montoApertura"`
	ComputedRevenue Money     `json:"ingresos"`
	HandIn          Money     `json:"entrega"`
	Desvio          Money     `json:"desvio"`
	ClosedAt        time.Time `json:"cierre"`
	LineItemSummary string    `json:"productosVendidos"`
}
