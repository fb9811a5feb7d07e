package handlers

import (
	"context"
	"net/http"
	"time"

	"abarrotes-pos/database"
	"abarrotes-pos/models"
	"abarrotes-pos/reports"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// SalesReportHandler descarga el reporte de ventas del período
// (dia/semana/mes/año) que contiene a la fecha base, hoy si no se indica.
func SalesReportHandler(ledger *database.SalesLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		periodo := c.DefaultQuery("periodo", reports.PeriodDay)

		base := time.Now()
		if fechaParam := c.Query("fecha"); fechaParam != "" {
			parsed, err := time.Parse("2006-01-02", fechaParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida, usar YYYY-MM-DD"})
				return
			}
			base = parsed
		}

		desde, hasta, err := reports.PeriodWindow(periodo, base)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Período inválido: usar dia, semana, mes o año"})
			return
		}

		ventas, err := ledger.QueryBetween(c.Request.Context(), desde, hasta)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener ventas"})
			return
		}

		f, err := reports.BuildSalesReport(ventas)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar reporte"})
			return
		}

		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Disposition", "attachment; filename="+reports.SalesReportFilename(periodo, time.Now()))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al escribir archivo"})
		}
	}
}

// InventoryReportHandler descarga el inventario, opcionalmente filtrado por
// categoría.
func InventoryReportHandler(c *gin.Context) {
	filter := bson.M{}
	if categoria := c.Query("categoria"); categoria != "" {
		filter["categoria"] = categoria
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener productos"})
		return
	}
	defer cursor.Close(ctx)

	var productos []models.Product
	if err := cursor.All(ctx, &productos); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al decodificar productos"})
		return
	}

	f, err := reports.BuildInventoryReport(productos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar reporte"})
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename="+reports.InventoryReportFilename(time.Now()))
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al escribir archivo"})
	}
}
