package till

import (
	"context"
	"time"

	"abarrotes-pos/models"
)

// CatalogStore son las operaciones de catálogo que necesita el flujo de
// ventas. DecrementStock debe ser un read-modify-write atómico con piso en
// cero: nunca deja el stock negativo.
type CatalogStore interface {
	FindByCode(ctx context.Context, codigo string) (models.Product, error)
	FindByNameContains(ctx context.Context, q string) ([]models.Product, error)
	DecrementStock(ctx context.Context, codigo string, cantidad int) error
}

// SalesLedger es el libro de ventas, sólo de agregado.
type SalesLedger interface {
	Append(ctx context.Context, venta models.Sale) error
	QueryByCashierSince(ctx context.Context, usuario string, desde time.Time) ([]models.Sale, error)
}

// StateStore persiste el par {apertura, montoApertura} para que la sesión de
// caja sobreviva un reinicio del proceso.
type StateStore interface {
	// Load devuelve nil sin error cuando no hay caja abierta.
	Load(ctx context.Context, usuario string) (*models.TillState, error)
	Save(ctx context.Context, estado models.TillState) error
	Clear(ctx context.Context, usuario string) error
}
