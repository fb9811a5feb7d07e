package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"abarrotes-pos/models"
)

// SalesLedger implementa till.SalesLedger sobre la colección ventas. El
// libro es sólo de agregado: nunca se actualiza ni se borra un documento.
type SalesLedger struct {
	col *mongo.Collection
}

func NewSalesLedger(col *mongo.Collection) *SalesLedger {
	return &SalesLedger{col: col}
}

func (l *SalesLedger) Append(ctx context.Context, venta models.Sale) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if venta.ID.IsZero() {
		venta.ID = primitive.NewObjectID()
	}
	_, err := l.col.InsertOne(ctx, venta)
	return err
}

func (l *SalesLedger) QueryByCashierSince(ctx context.Context, usuario string, desde time.Time) ([]models.Sale, error) {
	filter := bson.M{
		"usuario": usuario,
		"fecha":   bson.M{"$gte": desde},
	}
	return l.find(ctx, filter)
}

// QueryBetween devuelve las ventas en [desde, hasta), para los reportes por
// período.
func (l *SalesLedger) QueryBetween(ctx context.Context, desde, hasta time.Time) ([]models.Sale, error) {
	filter := bson.M{
		"fecha": bson.M{"$gte": desde, "$lt": hasta},
	}
	return l.find(ctx, filter)
}

// QueryHistory filtra el historial por usuario y/o día (ambos opcionales).
func (l *SalesLedger) QueryHistory(ctx context.Context, usuario string, dia *time.Time) ([]models.Sale, error) {
	filter := bson.M{}
	if usuario != "" {
		filter["usuario"] = usuario
	}
	if dia != nil {
		filter["fecha"] = bson.M{
			"$gte": *dia,
			"$lt":  dia.Add(24 * time.Hour),
		}
	}
	return l.find(ctx, filter)
}

func (l *SalesLedger) find(ctx context.Context, filter bson.M) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}})
	cursor, err := l.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ventas []models.Sale
	if err := cursor.All(ctx, &ventas); err != nil {
		return nil, err
	}
	if ventas == nil {
		ventas = []models.Sale{}
	}
	return ventas, nil
}
