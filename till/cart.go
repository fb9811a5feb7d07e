package till

import (
	"fmt"

	"abarrotes-pos/models"
)

// Cart es la secuencia ordenada de renglones en memoria de una venta en
// curso. No se persiste: al cobrar se convierte en una Sale.
type Cart struct {
	items []models.LineItem
}

// Add agrega un producto al carrito copiando el precio cliente vigente.
// Cambios posteriores de catálogo no afectan el renglón.
func (c *Cart) Add(p models.Product, cantidad int) error {
	if cantidad < 1 {
		return fmt.Errorf("cantidad inválida: %d", cantidad)
	}
	c.items = append(c.items, models.LineItem{
		Codigo:         p.Codigo,
		Nombre:         p.Nombre,
		PrecioUnitario: p.PrecioCliente,
		Cantidad:       cantidad,
	})
	return nil
}

// Remove quita el renglón en la posición i.
func (c *Cart) Remove(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("renglón fuera de rango: %d", i)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return nil
}

func (c *Cart) Items() []models.LineItem {
	return c.items
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Subtotal suma precioUnitario × cantidad de todos los renglones.
func (c *Cart) Subtotal() models.Money {
	var total models.Money
	for _, li := range c.items {
		total += li.Subtotal()
	}
	return total
}
