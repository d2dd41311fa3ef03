package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Profile struct {
	ID        uuid.UUID
	Email     string
	FullName  *string
	Phone     *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type ProfileUpdate struct {
	FullName *string
	Phone    *string
}

// User is the identity returned by the external identity provider.
type User struct {
	ID    uuid.UUID
	Email string
}

type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         User
}
