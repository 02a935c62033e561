package model

import "time"

// Operator is an invigilator account with access to the live monitor feed.
type Operator struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// OperatorLoginRequest is the payload for operator authentication.
type OperatorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}
