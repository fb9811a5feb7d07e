package till

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-pos/models"
)

type mockCatalog struct {
	productos    map[string]models.Product
	descuentos   map[string]int
	decrementErr error
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{
		productos:  make(map[string]models.Product),
		descuentos: make(map[string]int),
	}
}

func (m *mockCatalog) FindByCode(_ context.Context, codigo string) (models.Product, error) {
	p, ok := m.productos[codigo]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (m *mockCatalog) FindByNameContains(_ context.Context, _ string) ([]models.Product, error) {
	return nil, nil
}

func (m *mockCatalog) DecrementStock(_ context.Context, codigo string, cantidad int) error {
	if m.decrementErr != nil {
		return m.decrementErr
	}
	m.descuentos[codigo] += cantidad
	return nil
}

type mockLedger struct {
	ventas    []models.Sale
	appendErr error
	queryErr  error
}

func (m *mockLedger) Append(_ context.Context, venta models.Sale) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.ventas = append(m.ventas, venta)
	return nil
}

func (m *mockLedger) QueryByCashierSince(_ context.Context, usuario string, desde time.Time) ([]models.Sale, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	var out []models.Sale
	for _, v := range m.ventas {
		if v.Usuario == usuario && !v.Fecha.Before(desde) {
			out = append(out, v)
		}
	}
	return out, nil
}

type mockStateStore struct {
	estados  map[string]models.TillState
	saveErr  error
	clearErr error
	loadErr  error
}

func newMockStateStore() *mockStateStore {
	return &mockStateStore{estados: make(map[string]models.TillState)}
}

func (m *mockStateStore) Load(_ context.Context, usuario string) (*models.TillState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	estado, ok := m.estados[usuario]
	if !ok {
		return nil, nil
	}
	return &estado, nil
}

func (m *mockStateStore) Save(_ context.Context, estado models.TillState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.estados[estado.Usuario] = estado
	return nil
}

func (m *mockStateStore) Clear(_ context.Context, usuario string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.estados, usuario)
	return nil
}

const cajero = "cajera@tienda.mx"

var base = time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *mockCatalog, *mockLedger, *mockStateStore) {
	t.Helper()
	catalog := newMockCatalog()
	ledger := &mockLedger{}
	states := newMockStateStore()
	s := NewService(cajero, catalog, ledger, states)
	s.now = func() time.Time { return base }
	return s, catalog, ledger, states
}

func producto(codigo, nombre string, precio models.Money) models.Product {
	return models.Product{Codigo: codigo, Nombre: nombre, PrecioCliente: precio, Stock: 100}
}

func TestOpenRejectsNegativeAmount(t *testing.T) {
	s, _, _, states := setup(t)

	err := s.Open(context.Background(), -1)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, s.Status())
	assert.Empty(t, states.estados)
}

func TestOpenRecordsStateAndPersists(t *testing.T) {
	s, _, _, states := setup(t)

	err := s.Open(context.Background(), 10000)

	require.NoError(t, err)
	estado := s.Status()
	require.NotNil(t, estado)
	assert.Equal(t, models.Money(10000), estado.OpeningCash)
	assert.Equal(t, base, estado.OpenedAt)
	assert.Equal(t, cajero, estado.Usuario)

	persistido, ok := states.estados[cajero]
	require.True(t, ok)
	assert.Equal(t, *estado, persistido)
}

func TestOpenTwiceFails(t *testing.T) {
	s, _, _, _ := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))

	err := s.Open(context.Background(), 5000)

	assert.ErrorIs(t, err, ErrTillAlreadyOpen)
	assert.Equal(t, models.Money(10000), s.Status().OpeningCash)
}

func TestOpenFailsWhenStateStoreFails(t *testing.T) {
	s, _, _, states := setup(t)
	states.saveErr = errors.New("mongo caído")

	err := s.Open(context.Background(), 10000)

	require.Error(t, err)
	assert.Nil(t, s.Status())
}

func TestCheckoutRequiresOpenTill(t *testing.T) {
	s, catalog, ledger, _ := setup(t)
	catalog.productos["001"] = producto("001", "Pan", 2000)

	var carrito Cart
	require.NoError(t, carrito.Add(catalog.productos["001"], 1))

	_, _, err := s.Checkout(context.Background(), &carrito, models.PaymentCash)

	assert.ErrorIs(t, err, ErrTillNotOpen)
	// Fail fast: sin escritura al libro ni descuento de stock.
	assert.Empty(t, ledger.ventas)
	assert.Empty(t, catalog.descuentos)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	s, _, ledger, _ := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))

	_, _, err := s.Checkout(context.Background(), &Cart{}, models.PaymentCash)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, ledger.ventas)
}

func TestCheckoutAppendsLedgerAndDecrementsStock(t *testing.T) {
	s, catalog, ledger, _ := setup(t)
	catalog.productos["001"] = producto("001", "Pan", 2000)
	catalog.productos["002"] = producto("002", "Leche", 1550)
	require.NoError(t, s.Open(context.Background(), 10000))

	var carrito Cart
	require.NoError(t, carrito.Add(catalog.productos["001"], 2))
	require.NoError(t, carrito.Add(catalog.productos["002"], 1))

	venta, pendientes, err := s.Checkout(context.Background(), &carrito, models.PaymentCard)

	require.NoError(t, err)
	require.NotNil(t, venta)
	assert.Empty(t, pendientes)
	assert.NotEmpty(t, venta.Folio)
	assert.Equal(t, cajero, venta.Usuario)
	assert.Equal(t, base, venta.Fecha)
	assert.Equal(t, models.Money(2*2000+1550), venta.Total)
	assert.Equal(t, models.PaymentCard, venta.MetodoPago)

	require.Len(t, ledger.ventas, 1)
	assert.Equal(t, 2, catalog.descuentos["001"])
	assert.Equal(t, 1, catalog.descuentos["002"])
}

func TestCheckoutLedgerFailureLeavesStockUntouched(t *testing.T) {
	s, catalog, ledger, _ := setup(t)
	catalog.productos["001"] = producto("001", "Pan", 2000)
	ledger.appendErr = errors.New("mongo caído")
	require.NoError(t, s.Open(context.Background(), 10000))

	var carrito Cart
	require.NoError(t, carrito.Add(catalog.productos["001"], 1))

	_, _, err := s.Checkout(context.Background(), &carrito, models.PaymentCash)

	require.Error(t, err)
	assert.Empty(t, catalog.descuentos)
}

func TestCheckoutReportsPendingDecrements(t *testing.T) {
	s, catalog, ledger, _ := setup(t)
	catalog.productos["001"] = producto("001", "Pan", 2000)
	catalog.decrementErr = ErrInsufficientStock
	require.NoError(t, s.Open(context.Background(), 10000))

	var carrito Cart
	require.NoError(t, carrito.Add(catalog.productos["001"], 1))

	venta, pendientes, err := s.Checkout(context.Background(), &carrito, models.PaymentCash)

	// La venta queda asentada aunque el descuento quede pendiente.
	require.NoError(t, err)
	require.NotNil(t, venta)
	require.Len(t, ledger.ventas, 1)
	assert.Equal(t, []string{"001"}, pendientes)
}

func TestCloseRejectsInvalidHandIn(t *testing.T) {
	s, _, _, _ := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))

	rec, err := s.Close(context.Background(), -1)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Nil(t, rec)
	assert.NotNil(t, s.Status())
}

func TestCloseWithoutOpenTill(t *testing.T) {
	s, _, _, _ := setup(t)

	rec, err := s.Close(context.Background(), 10000)

	assert.ErrorIs(t, err, ErrTillNotOpen)
	assert.Nil(t, rec)
}

func TestCloseScenario(t *testing.T) {
	s, catalog, ledger, states := setup(t)
	catalog.productos["001"] = producto("001", "Pan", 2000)
	catalog.productos["002"] = producto("002", "Leche", 3550)
	require.NoError(t, s.Open(context.Background(), 10000))

	// Ventas ajenas al turno: otro cajero y una anterior a la apertura.
	ledger.ventas = append(ledger.ventas,
		models.Sale{Usuario: "otro@tienda.mx", Fecha: base.Add(time.Hour), Total: 99999},
		models.Sale{Usuario: cajero, Fecha: base.Add(-time.Hour), Total: 88888},
	)

	var c1 Cart
	require.NoError(t, c1.Add(catalog.productos["001"], 2))
	_, _, err := s.Checkout(context.Background(), &c1, models.PaymentCash)
	require.NoError(t, err)

	var c2 Cart
	require.NoError(t, c2.Add(catalog.productos["002"], 1))
	_, _, err = s.Checkout(context.Background(), &c2, models.PaymentCard)
	require.NoError(t, err)

	ingresos, err := s.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Money(2*2000+3550), ingresos)

	rec, err := s.Close(context.Background(), 15550)

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, cajero, rec.Usuario)
	assert.Equal(t, models.Money(10000), rec.OpeningCash)
	assert.Equal(t, models.Money(2*2000+3550), rec.ComputedRevenue)
	assert.Equal(t, models.Money(15550), rec.HandIn)
	assert.Equal(t, base, rec.ClosedAt)
	assert.Equal(t, "Pan (x2), Leche (x1)", rec.LineItemSummary)

	// Cerrada: estado limpio en memoria y en el storage.
	assert.Nil(t, s.Status())
	assert.Empty(t, states.estados)

	// Idempotencia: un segundo corte no emite otra conciliación.
	rec2, err := s.Close(context.Background(), 15550)
	assert.ErrorIs(t, err, ErrTillNotOpen)
	assert.Nil(t, rec2)
}

func TestCloseLedgerFailureKeepsTillOpen(t *testing.T) {
	s, _, ledger, states := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))
	ledger.queryErr = errors.New("mongo caído")

	rec, err := s.Close(context.Background(), 10000)

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.NotNil(t, s.Status())
	assert.Contains(t, states.estados, cajero)
}

func TestCloseClearFailureKeepsTillOpen(t *testing.T) {
	s, _, _, states := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))
	states.clearErr = errors.New("mongo caído")

	rec, err := s.Close(context.Background(), 10000)

	require.Error(t, err)
	assert.Nil(t, rec)
	assert.NotNil(t, s.Status())
}

func TestResumeRestoresOpenState(t *testing.T) {
	s, catalog, ledger, states := setup(t)
	require.NoError(t, s.Open(context.Background(), 10000))

	// Proceso nuevo: otra instancia sobre el mismo storage.
	s2 := NewService(cajero, catalog, ledger, states)
	require.NoError(t, s2.Resume(context.Background()))

	estado := s2.Status()
	require.NotNil(t, estado)
	assert.Equal(t, models.Money(10000), estado.OpeningCash)
	assert.Equal(t, base, estado.OpenedAt)
}

func TestRegistryReusesSession(t *testing.T) {
	catalog := newMockCatalog()
	ledger := &mockLedger{}
	states := newMockStateStore()
	registry := NewRegistry(catalog, ledger, states)

	s1, err := registry.ForCashier(context.Background(), cajero)
	require.NoError(t, err)
	s2, err := registry.ForCashier(context.Background(), cajero)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
}
