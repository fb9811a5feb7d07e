package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Categorías precargadas de la tienda.
var DefaultCategories = []string{
	"Hogar",
	"Limpieza",
	"Alimentos",
	"Mascotas",
	"Medicina",
}

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Codigo          string             `bson:"codigo" json:"codigo"` // Código de barras, único
	Nombre          string             `bson:"nombre" json:"nombre"`
	PrecioProveedor Money              `bson:"precioProveedor" json:"precioProveedor"`
	PrecioCliente   Money              `bson:"precioCliente" json:"precioCliente"`
	Stock           int                `bson:"stock" json:"stock"`
	Categoria       string             `bson:"categoria" json:"categoria"`
}
