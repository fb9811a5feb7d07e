package till

import "errors"

var (
	// ErrInvalidAmount rechaza montos negativos o no numéricos tipeados por
	// el operador.
	ErrInvalidAmount = errors.New("monto inválido")
	// ErrTillNotOpen se devuelve al vender o cerrar sin caja abierta.
	ErrTillNotOpen = errors.New("caja no aperturada")
	// ErrTillAlreadyOpen impide abrir dos veces el mismo turno.
	ErrTillAlreadyOpen = errors.New("la caja ya está abierta")
	// ErrProductNotFound indica una búsqueda de catálogo sin resultado.
	ErrProductNotFound = errors.New("producto no encontrado")
	// ErrInsufficientStock indica que el descuento dejaría el stock negativo.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrEmptyCart rechaza un cobro sin renglones.
	ErrEmptyCart = errors.New("el carrito está vacío")
)
