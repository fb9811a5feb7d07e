package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"abarrotes-pos/database"
	"abarrotes-pos/models"
	"abarrotes-pos/till"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type productInput struct {
	Codigo          string `json:"codigo"`
	Nombre          string `json:"nombre"`
	PrecioProveedor string `json:"precioProveedor"`
	PrecioCliente   string `json:"precioCliente"`
	Stock           *int   `json:"stock"`
	Categoria       string `json:"categoria"`
}

// CreateProductHandler registra un producto nuevo. Todos los campos son
// requeridos, como en la pantalla de inventario.
func CreateProductHandler(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	input.Codigo = strings.TrimSpace(input.Codigo)
	input.Nombre = strings.TrimSpace(input.Nombre)
	if input.Codigo == "" || input.Nombre == "" || input.PrecioProveedor == "" ||
		input.PrecioCliente == "" || input.Stock == nil || input.Categoria == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completa todos los campos"})
		return
	}

	precioProveedor, err := models.ParseAmount(input.PrecioProveedor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Precio proveedor inválido"})
		return
	}
	precioCliente, err := models.ParseAmount(input.PrecioCliente)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Precio cliente inválido"})
		return
	}
	if *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El stock no puede ser negativo"})
		return
	}

	producto := models.Product{
		ID:              primitive.NewObjectID(),
		Codigo:          input.Codigo,
		Nombre:          input.Nombre,
		PrecioProveedor: precioProveedor,
		PrecioCliente:   precioCliente,
		Stock:           *input.Stock,
		Categoria:       input.Categoria,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.ProductCollection.InsertOne(ctx, producto); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "El código ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al registrar producto"})
		return
	}

	c.JSON(http.StatusCreated, producto)
}

// ListProductsHandler devuelve el inventario, con filtros opcionales por
// categoría exacta o nombre exacto (pantalla de consultas de inventario).
func ListProductsHandler(c *gin.Context) {
	filter := bson.M{}
	if categoria := c.Query("categoria"); categoria != "" {
		filter["categoria"] = categoria
	}
	if nombre := c.Query("nombre"); nombre != "" {
		filter["nombre"] = nombre
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
	if productos == nil {
		productos = []models.Product{}
	}

	c.JSON(http.StatusOK, productos)
}

// GetProductByCodeHandler es el escaneo de código de barras de la pantalla
// de ventas.
func GetProductByCodeHandler(catalog *database.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		producto, err := catalog.FindByCode(c.Request.Context(), c.Param("codigo"))
		if errors.Is(err, till.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar producto"})
			return
		}
		c.JSON(http.StatusOK, producto)
	}
}

// SearchProductsHandler busca por contención de nombre, sin distinguir
// mayúsculas.
func SearchProductsHandler(catalog *database.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		productos, err := catalog.FindByNameContains(c.Request.Context(), c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar productos"})
			return
		}
		c.JSON(http.StatusOK, productos)
	}
}

// UpdateProductHandler actualiza campos sueltos de un producto.
func UpdateProductHandler(c *gin.Context) {
	idStr := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	var input struct {
		Nombre          *string `json:"nombre"`
		PrecioProveedor *string `json:"precioProveedor"`
		PrecioCliente   *string `json:"precioCliente"`
		Stock           *int    `json:"stock"`
		Categoria       *string `json:"categoria"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos"})
		return
	}

	update := bson.M{}
	if input.Nombre != nil {
		update["nombre"] = strings.TrimSpace(*input.Nombre)
	}
	if input.PrecioProveedor != nil {
		monto, err := models.ParseAmount(*input.PrecioProveedor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Precio proveedor inválido"})
			return
		}
		update["precioProveedor"] = monto
	}
	if input.PrecioCliente != nil {
		monto, err := models.ParseAmount(*input.PrecioCliente)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Precio cliente inválido"})
			return
		}
		update["precioCliente"] = monto
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El stock no puede ser negativo"})
			return
		}
		update["stock"] = *input.Stock
	}
	if input.Categoria != nil {
		update["categoria"] = *input.Categoria
	}

	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se enviaron datos para actualizar"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.ProductCollection.UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": update},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar producto"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto actualizado correctamente"})
}

// DeleteProductHandler elimina un producto del catálogo.
func DeleteProductHandler(c *gin.Context) {
	idStr := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de producto inválido"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar producto"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado correctamente"})
}

// ListCategoriesHandler devuelve las categorías precargadas.
func ListCategoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultCategories)
}
