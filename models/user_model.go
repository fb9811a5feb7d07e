package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCajero Role = "cajero"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
	Username string             `bson:"username" json:"username"`
	Role     Role               `bson:"role" json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
