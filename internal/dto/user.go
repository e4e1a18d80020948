package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	FirstName   string   `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string   `json:"last_name" binding:"omitempty,max=100"`
	Email       *string  `json:"email" binding:"omitempty,email,max=255"`
	PhoneNumber *string  `json:"phone_number" binding:"omitempty,max=20"`
	DateOfBirth DateTime `json:"date_of_birth"`
	Gender      *string  `json:"gender" binding:"omitempty,max=10"`
	Address     *string  `json:"address" binding:"omitempty,max=200"`
	City        *string  `json:"city" binding:"omitempty,max=100"`
	PostalCode  *string  `json:"postal_code" binding:"omitempty,max=20"`
	Country     *string  `json:"country" binding:"omitempty,max=100"`
}

// UpdateUserRequest is a partial update: nil fields keep their stored value.
type UpdateUserRequest struct {
	FirstName   *string   `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string   `json:"last_name" binding:"omitempty,max=100"`
	Email       *string   `json:"email" binding:"omitempty,email,max=255"`
	PhoneNumber *string   `json:"phone_number" binding:"omitempty,max=20"`
	DateOfBirth *DateTime `json:"date_of_birth"`
	Gender      *string   `json:"gender" binding:"omitempty,max=10"`
	Address     *string   `json:"address" binding:"omitempty,max=200"`
	City        *string   `json:"city" binding:"omitempty,max=100"`
	PostalCode  *string   `json:"postal_code" binding:"omitempty,max=20"`
	Country     *string   `json:"country" binding:"omitempty,max=100"`
	IsActive    *bool     `json:"is_active"`
}

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       *string    `json:"email"`
	PhoneNumber *string    `json:"phone_number"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `json:"gender"`
	Address     *string    `json:"address"`
	City        *string    `json:"city"`
	PostalCode  *string    `json:"postal_code"`
	Country     *string    `json:"country"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListUsersResponse struct {
	Items []UserResponse `json:"items"`
}
