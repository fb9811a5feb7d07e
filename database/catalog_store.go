package database

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"abarrotes-pos/models"
	"abarrotes-pos/till"
)

// CatalogStore implementa till.CatalogStore sobre la colección productos.
type CatalogStore struct {
	col *mongo.Collection
}

func NewCatalogStore(col *mongo.Collection) *CatalogStore {
	return &CatalogStore{col: col}
}

func (s *CatalogStore) FindByCode(ctx context.Context, codigo string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"codigo": codigo}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, till.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// FindByNameContains busca por contención de nombre sin distinguir
// mayúsculas. Una búsqueda en blanco no devuelve resultados.
func (s *CatalogStore) FindByNameContains(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"nombre": primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}}
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var productos []models.Product
	if err := cursor.All(ctx, &productos); err != nil {
		return nil, err
	}
	if productos == nil {
		productos = []models.Product{}
	}
	return productos, nil
}

// DecrementStock descuenta stock en una sola operación atómica con piso en
// cero: el filtro exige stock suficiente, así dos cobros concurrentes del
// mismo producto quedan serializados por el storage.
func (s *CatalogStore) DecrementStock(ctx context.Context, codigo string, cantidad int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"codigo": codigo, "stock": bson.M{"$gte": cantidad}}
	update := bson.M{"$inc": bson.M{"stock": -cantidad}}

	err := s.col.FindOneAndUpdate(ctx, filter, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguir producto inexistente de stock insuficiente.
		count, countErr := s.col.CountDocuments(ctx, bson.M{"codigo": codigo})
		if countErr != nil {
			return countErr
		}
		if count == 0 {
			return till.ErrProductNotFound
		}
		return till.ErrInsufficientStock
	}
	return err
}
