package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/coinvault/internal/domain"
)

// IdentityProvider is the external authentication service.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (domain.User, error)
	SignOut(ctx context.Context, accessToken string) error
	User(ctx context.Context, accessToken string) (domain.User, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (domain.Profile, error)
}
