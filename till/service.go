package till

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"abarrotes-pos/models"
)

// Service es la sesión de caja de un cajero. Todo el ciclo de vida pasa por
// Open/Checkout/Close; el estado nunca se muta por fuera de estas
// operaciones. Una instancia por cajero, serializada con un mutex.
type Service struct {
	mu      sync.Mutex
	usuario string
	estado  *models.TillState // nil cuando la caja está cerrada

	catalog CatalogStore
	ledger  SalesLedger
	states  StateStore

	log *logrus.Entry
	now func() time.Time
}

func NewService(usuario string, catalog CatalogStore, ledger SalesLedger, states StateStore) *Service {
	return &Service{
		usuario: usuario,
		catalog: catalog,
		ledger:  ledger,
		states:  states,
		log:     logrus.WithField("caja", usuario),
		now:     time.Now,
	}
}

// Resume recarga el par persistido {apertura, montoApertura}. Si existe, la
// sesión vuelve a quedar abierta con los mismos valores.
func (s *Service) Resume(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	estado, err := s.states.Load(ctx, s.usuario)
	if err != nil {
		return fmt.Errorf("recuperando estado de caja: %w", err)
	}
	s.estado = estado
	return nil
}

// Open abre la caja con el monto declarado por el operador. Sólo es válido
// desde el estado cerrado.
func (s *Service) Open(ctx context.Context, monto models.Money) error {
	if monto < 0 {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estado != nil {
		return ErrTillAlreadyOpen
	}

	estado := models.TillState{
		Usuario:     s.usuario,
		OpenedAt:    s.now(),
		OpeningCash: monto,
	}
	if err := s.states.Save(ctx, estado); err != nil {
		return fmt.Errorf("guardando apertura de caja: %w", err)
	}
	s.estado = &estado

	s.log.WithField("monto", monto.Format()).Info("caja abierta")
	return nil
}

// Status devuelve una copia del estado persistido, o nil si la caja está
// cerrada.
func (s *Service) Status() *models.TillState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estado == nil {
		return nil
	}
	copia := *s.estado
	return &copia
}

// Checkout convierte el carrito en una venta inmutable. Primero agrega al
// libro de ventas y después descuenta stock producto por producto; un
// descuento fallido no revierte la venta, se informa en pendientes y queda
// registrado para conciliar a mano.
func (s *Service) Checkout(ctx context.Context, carrito *Cart, metodo models.PaymentMethod) (*models.Sale, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estado == nil {
		return nil, nil, ErrTillNotOpen
	}
	if carrito == nil || carrito.Empty() {
		return nil, nil, ErrEmptyCart
	}
	if !metodo.Valid() {
		return nil, nil, fmt.Errorf("método de pago inválido: %q", metodo)
	}

	venta := models.Sale{
		Folio:      uuid.NewString(),
		Usuario:    s.usuario,
		Fecha:      s.now(),
		Productos:  carrito.Items(),
		Total:      carrito.Subtotal(),
		MetodoPago: metodo,
	}

	if err := s.ledger.Append(ctx, venta); err != nil {
		return nil, nil, fmt.Errorf("registrando venta: %w", err)
	}

	var pendientes []string
	for _, li := range venta.Productos {
		if err := s.catalog.DecrementStock(ctx, li.Codigo, li.Cantidad); err != nil {
			pendientes = append(pendientes, li.Codigo)
			s.log.WithFields(logrus.Fields{
				"folio":  venta.Folio,
				"codigo": li.Codigo,
				"error":  err,
			}).Warn("descuento de stock pendiente")
		}
	}

	s.log.WithFields(logrus.Fields{
		"folio": venta.Folio,
		"total": venta.Total.Format(),
	}).Info("venta registrada")
	return &venta, pendientes, nil
}

// Close cierra la caja contra el monto de entrega declarado y produce la
// conciliación del turno. Si el libro de ventas falla, la caja queda abierta
// y no se emite nada.
func (s *Service) Close(ctx context.Context, entrega models.Money) (*models.Reconciliation, error) {
	if entrega < 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estado == nil {
		return nil, ErrTillNotOpen
	}

	ventas, err := s.ledger.QueryByCashierSince(ctx, s.usuario, s.estado.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("consultando ventas del turno: %w", err)
	}

	var ingresos models.Money
	var resumen []string
	for _, v := range ventas {
		ingresos += v.Total
		for _, li := range v.Productos {
			resumen = append(resumen, fmt.Sprintf("%s (x%d)", li.Nombre, li.Cantidad))
		}
	}

	rec := models.Reconciliation{
		Usuario:         s.usuario,
		OpeningCash:     s.estado.OpeningCash,
		ComputedRevenue: ingresos,
		HandIn:          entrega,
		Desvio:          entrega - (s.estado.OpeningCash + ingresos),
		ClosedAt:        s.now(),
		LineItemSummary: strings.Join(resumen, ", "),
	}

	if err := s.states.Clear(ctx, s.usuario); err != nil {
		return nil, fmt.Errorf("limpiando estado de caja: %w", err)
	}
	s.estado = nil

	s.log.WithFields(logrus.Fields{
		"ingresos": rec.ComputedRevenue.Format(),
		"entrega":  rec.HandIn.Format(),
		"desvio":   rec.Desvio.Format(),
	}).Info("corte de caja realizado")
	return &rec, nil
}

// Revenue calcula los ingresos acumulados del turno en curso, para la
// pantalla de caja.
func (s *Service) Revenue(ctx context.Context) (models.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estado == nil {
		return 0, ErrTillNotOpen
	}
	ventas, err := s.ledger.QueryByCashierSince(ctx, s.usuario, s.estado.OpenedAt)
	if err != nil {
		return 0, fmt.Errorf("consultando ventas del turno: %w", err)
	}
	var total models.Money
	for _, v := range ventas {
		total += v.Total
	}
	return total, nil
}
