package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a household member. Email is optional but unique when present.
type User struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       *string
	PhoneNumber *string
	DateOfBirth *time.Time
	Gender      *string
	Address     *string
	City        *string
	PostalCode  *string
	Country     *string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
