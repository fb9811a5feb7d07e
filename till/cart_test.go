package till

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abarrotes-pos/models"
)

func TestCartFixesPriceAtAddTime(t *testing.T) {
	p := models.Product{Codigo: "001", Nombre: "Pan", PrecioCliente: 2000}

	var c Cart
	require.NoError(t, c.Add(p, 1))

	// Un cambio de precio de catálogo posterior no afecta el renglón.
	p.PrecioCliente = 9999

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.Money(2000), items[0].PrecioUnitario)
}

func TestCartSubtotal(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(models.Product{Codigo: "001", Nombre: "Pan", PrecioCliente: 2000}, 2))
	require.NoError(t, c.Add(models.Product{Codigo: "002", Nombre: "Leche", PrecioCliente: 1550}, 3))

	assert.Equal(t, models.Money(2*2000+3*1550), c.Subtotal())
}

func TestCartRejectsInvalidQuantity(t *testing.T) {
	var c Cart
	assert.Error(t, c.Add(models.Product{Codigo: "001"}, 0))
	assert.Error(t, c.Add(models.Product{Codigo: "001"}, -2))
	assert.True(t, c.Empty())
}

func TestCartRemove(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(models.Product{Codigo: "001", PrecioCliente: 2000}, 1))
	require.NoError(t, c.Add(models.Product{Codigo: "002", PrecioCliente: 1550}, 1))

	require.NoError(t, c.Remove(0))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "002", items[0].Codigo)

	assert.Error(t, c.Remove(5))
}

func TestCartKeepsDuplicateLines(t *testing.T) {
	p := models.Product{Codigo: "001", Nombre: "Pan", PrecioCliente: 2000}

	var c Cart
	require.NoError(t, c.Add(p, 1))
	require.NoError(t, c.Add(p, 1))

	// Escanear dos veces agrega dos renglones, no se fusionan.
	assert.Len(t, c.Items(), 2)
	assert.Equal(t, models.Money(4000), c.Subtotal())
}
