package handlers

import (
	"errors"
	"net/http"
	"time"

	"abarrotes-pos/models"
	"abarrotes-pos/reports"
	"abarrotes-pos/till"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type amountInput struct {
	Monto string `json:"monto"`
}

// OpenTillHandler abre la caja con el monto de apertura declarado.
func OpenTillHandler(registry *till.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var input amountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
			return
		}

		monto, err := models.ParseAmount(input.Monto)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa un monto válido"})
			return
		}

		caja, err := registry.ForCashier(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al recuperar la caja"})
			return
		}

		err = caja.Open(c.Request.Context(), monto)
		switch {
		case errors.Is(err, till.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa un monto válido"})
			return
		case errors.Is(err, till.ErrTillAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "La caja ya está abierta"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al abrir caja"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Caja abierta correctamente",
			"estado":  caja.Status(),
		})
	}
}

// TillStatusHandler devuelve el estado de la caja y, si está abierta, los
// ingresos acumulados del turno.
func TillStatusHandler(registry *till.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		caja, err := registry.ForCashier(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al recuperar la caja"})
			return
		}

		estado := caja.Status()
		if estado == nil {
			c.JSON(http.StatusOK, gin.H{"abierta": false})
			return
		}

		ingresos, err := caja.Revenue(c.Request.Context())
		if err != nil && !errors.Is(err, till.ErrTillNotOpen) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular ingresos"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"abierta":       true,
			"apertura":      estado.OpenedAt,
			"montoApertura": estado.OpeningCash,
			"ingresos":      ingresos,
		})
	}
}

// CloseTillHandler hace el corte de caja. Por defecto responde la
// conciliación en JSON; con ?formato=xlsx descarga el resumen como el
// original.
func CloseTillHandler(registry *till.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")

		var input struct {
			Entrega string `json:"entrega"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
			return
		}

		entrega, err := models.ParseAmount(input.Entrega)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa el monto de entrega"})
			return
		}

		caja, err := registry.ForCashier(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al recuperar la caja"})
			return
		}

		rec, err := caja.Close(c.Request.Context(), entrega)
		switch {
		case errors.Is(err, till.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa el monto de entrega"})
			return
		case errors.Is(err, till.ErrTillNotOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "No hay caja abierta para cerrar"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cerrar caja"})
			return
		}

		if c.Query("formato") == "xlsx" {
			f, err := reports.BuildTillReconciliation(*rec)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar resumen"})
				return
			}
			filename := reports.ReconciliationFilename(rec.Usuario, time.Now())
			c.Header("Content-Type", xlsxContentType)
			c.Header("Content-Disposition", "attachment; filename="+filename)
			if err := f.Write(c.Writer); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al escribir archivo"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Corte de caja realizado",
			"conciliacion": rec,
		})
	}
}
