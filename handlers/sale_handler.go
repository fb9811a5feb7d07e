package handlers

import (
	"errors"
	"net/http"
	"time"

	"abarrotes-pos/database"
	"abarrotes-pos/models"
	"abarrotes-pos/till"

	"github.com/gin-gonic/gin"
)

type saleInput struct {
	Productos []struct {
		Codigo   string `json:"codigo"`
		Cantidad int    `json:"cantidad"`
	} `json:"productos"`
	MetodoPago models.PaymentMethod `json:"metodoPago"`
}

// CreateSaleHandler es el cobro: arma el carrito resolviendo cada código
// contra el catálogo (el precio queda fijado ahí) y lo cobra a través de la
// sesión de caja del cajero.
func CreateSaleHandler(registry *till.Registry, catalog *database.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no identificado"})
			return
		}

		var input saleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
			return
		}
		if len(input.Productos) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío"})
			return
		}
		if !input.MetodoPago.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Método de pago inválido"})
			return
		}

		ctx := c.Request.Context()

		var carrito till.Cart
		for _, item := range input.Productos {
			producto, err := catalog.FindByCode(ctx, item.Codigo)
			if errors.Is(err, till.ErrProductNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado: " + item.Codigo})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar producto"})
				return
			}
			if err := carrito.Add(producto, item.Cantidad); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cantidad inválida para " + item.Codigo})
				return
			}
		}

		caja, err := registry.ForCashier(ctx, email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al recuperar la caja"})
			return
		}

		venta, pendientes, err := caja.Checkout(ctx, &carrito, input.MetodoPago)
		switch {
		case errors.Is(err, till.ErrTillNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "Debes aperturar la caja antes de registrar ventas"})
			return
		case errors.Is(err, till.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "El carrito está vacío"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al registrar venta"})
			return
		}

		resp := gin.H{"venta": venta}
		if len(pendientes) > 0 {
			resp["pendientes"] = pendientes
			resp["warning"] = "Algunos descuentos de stock quedaron pendientes"
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// GetSalesHandler devuelve el historial de ventas con filtros opcionales por
// usuario y día. Un cajero sólo ve las suyas; el administrador puede filtrar
// por cualquier usuario.
func GetSalesHandler(ledger *database.SalesLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		isAdmin := c.GetBool("isAdmin")

		usuario := c.Query("usuario")
		if !isAdmin {
			usuario = email
		}

		var dia *time.Time
		if dateParam := c.Query("fecha"); dateParam != "" {
			parsed, err := time.Parse("2006-01-02", dateParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, usar YYYY-MM-DD"})
				return
			}
			dia = &parsed
		}

		ventas, err := ledger.QueryHistory(c.Request.Context(), usuario, dia)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener ventas"})
			return
		}

		c.JSON(http.StatusOK, ventas)
	}
}
