package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"abarrotes-pos/models"
)

// TillStateStore implementa till.StateStore: un documento por cajero en
// caja_estado mientras la caja está abierta.
type TillStateStore struct {
	col *mongo.Collection
}

func NewTillStateStore(col *mongo.Collection) *TillStateStore {
	return &TillStateStore{col: col}
}

func (s *TillStateStore) Load(ctx context.Context, usuario string) (*models.TillState, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var estado models.TillState
	err := s.col.FindOne(ctx, bson.M{"usuario": usuario}).Decode(&estado)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &estado, nil
}

func (s *TillStateStore) Save(ctx context.Context, estado models.TillState) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.col.ReplaceOne(
		ctx,
		bson.M{"usuario": estado.Usuario},
		estado,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *TillStateStore) Clear(ctx context.Context, usuario string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.col.DeleteOne(ctx, bson.M{"usuario": usuario})
	return err
}
