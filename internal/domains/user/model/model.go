package model

import (
	"booktable/shared/model"
	"booktable/shared/role"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
)

type User struct {
	ID       string    `db:"id"`
	Name     string    `db:"name"`
	Email    string    `db:"email"`
	Password string    `db:"password"`
	Role     role.Role `db:"role"`
	model.Metadata
}
