package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Efectivo"
	PaymentCard PaymentMethod = "Tarjeta"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// LineItem es un renglón de una venta. El precio unitario queda fijado al
// momento de agregar el producto; cambios posteriores de catálogo no lo
// afectan.
type LineItem struct {
	Codigo         string `bson:"codigo" json:"codigo"`
	Nombre         string `bson:"nombre" json:"nombre"`
	PrecioUnitario Money  `bson:"precioUnitario" json:"precioUnitario"`
	Cantidad       int    `bson:"cantidad" json:"cantidad"`
}

func (li LineItem) Subtotal() Money {
	return li.PrecioUnitario * Money(li.Cantidad)
}

// Sale es un registro inmutable del libro de ventas. Se crea exactamente una
// vez por cobro y nunca se modifica.
type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Folio      string             `bson:"folio" json:"folio"`
	Usuario    string             `bson:"usuario" json:"usuario"` // email del cajero
	Fecha      time.Time          `bson:"fecha" json:"fecha"`
	Productos  []LineItem         `bson:"productos" json:"productos"`
	Total      Money              `bson:"total" json:"total"`
	MetodoPago PaymentMethod      `bson:"metodoPago" json:"metodoPago"`
}
