package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var UserCollection *mongo.Collection
var ProductCollection *mongo.Collection
var SalesCollection *mongo.Collection
var TillCollection *mongo.Collection

func Connect(uri string, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	Client = client
	db := client.Database(dbName)
	UserCollection = db.Collection("users")
	ProductCollection = db.Collection("productos")
	SalesCollection = db.Collection("ventas")
	TillCollection = db.Collection("caja_estado")

	if err := ensureIndexes(ctx); err != nil {
		logrus.Warnf("no se pudieron crear los índices: %v", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := ProductCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "codigo", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = SalesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "usuario", Value: 1}, {Key: "fecha", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = TillCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "usuario", Value: 1}},
		Options: unique,
	})
	return err
}
