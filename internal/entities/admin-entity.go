package entities

import "chainsaw-registry/pkg/types"

type Admin struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	FullName     string `json:"full_name" db:"full_name"`
	PasswordHash string `json:"-" db:"password_hash"`

	types.BaseEntity
}
