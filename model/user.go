package model

import "time"

// UserEntity represents a marketplace end user document
type UserEntity struct {
	ID             string     `bson:"_id" json:"id"`
	Handle         string     `bson:"handle" json:"handle"`
	Name           string     `bson:"name" json:"name"`
	Phone          string     `bson:"phone" json:"phone"`
	PasswordHash   string     `bson:"password_hash" json:"-"`
	IDProofNumber  string     `bson:"id_proof_number,omitempty" json:"id_proof_number,omitempty"`
	IDProofImage   string     `bson:"id_proof_image,omitempty" json:"id_proof_image,omitempty"`
	ProfilePicture string     `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID     string
	Handle string
	Phone  string
}

// RegisterRequest for user registration. Exactly one of IDProofNumber and
// IDProofImage must be provided; the application layer enforces exclusivity.
type RegisterRequest struct {
	Handle        string `json:"handle" validate:"required,min=3,max=30"`
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Password      string `json:"password" validate:"required,min=6"`
	IDProofNumber string `json:"id_proof_number,omitempty"`
	IDProofImage  string `json:"id_proof_image,omitempty"`
}

// LoginRequest for user login (accepts handle or phone)
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // handle or phone
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Token  string `json:"token"`
}

type RegisterResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// UpdateProfileRequest for self-service profile edits
type UpdateProfileRequest struct {
	Name           string `json:"name,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}
