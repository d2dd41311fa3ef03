// Package auth signs users in and out against the identity provider and
// keeps their session and profile for request authentication.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/coinvault/internal/domain"
	"github.com/nikolayk812/coinvault/internal/port"
	"go.uber.org/zap"
)

// recheckAfter bounds how long a token validated through the provider
// is trusted locally.
const recheckAfter = 5 * time.Minute

type Service struct {
	idp      port.IdentityProvider
	profiles port.ProfileRepository
	sessions *Sessions
	logger   *zap.Logger
}

func NewService(idp port.IdentityProvider, profiles port.ProfileRepository, sessions *Sessions, logger *zap.Logger) (*Service, error) {
	if idp == nil {
		return nil, fmt.Errorf("idp is nil")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profiles is nil")
	}
	if sessions == nil {
		sessions = NewSessions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		idp:      idp,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (State, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return State{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	session, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return State{}, fmt.Errorf("idp.SignIn: %w", err)
	}

	state := State{
		Session: session,
		Profile: s.loadProfile(ctx, session.User),
	}
	s.sessions.Put(state)

	return state, nil
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.idp.SignUp(ctx, email, password, strings.TrimSpace(fullName))
	if err != nil {
		return domain.User{}, fmt.Errorf("idp.SignUp: %w", err)
	}

	return user, nil
}

// SignOut drops the local session first; a failing provider call is only
// logged.
func (s *Service) SignOut(ctx context.Context, accessToken string) {
	s.sessions.Delete(accessToken)

	if accessToken == "" {
		return
	}

	if err := s.idp.SignOut(ctx, accessToken); err != nil {
		s.logger.Warn("provider sign out failed", zap.Error(err))
	}
}

// Authenticate resolves an access token to a signed-in state.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (State, error) {
	if accessToken == "" {
		return State{}, fmt.Errorf("%w: access token is empty", domain.ErrUnauthorized)
	}

	if state, ok := s.sessions.Get(accessToken); ok {
		return state, nil
	}

	user, err := s.idp.User(ctx, accessToken)
	if err != nil {
		return State{}, fmt.Errorf("idp.User: %w", err)
	}

	state := State{
		Session: domain.Session{
			AccessToken: accessToken,
			ExpiresAt:   s.sessions.now().Add(recheckAfter),
			User:        user,
		},
		Profile: s.loadProfile(ctx, user),
	}
	s.sessions.Put(state)

	return state, nil
}

func (s *Service) UpdateProfile(ctx context.Context, accessToken string, update domain.ProfileUpdate) (domain.Profile, error) {
	state, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return domain.Profile{}, err
	}

	profile, err := s.profiles.UpdateProfile(ctx, state.Session.User.ID, update)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("profiles.UpdateProfile: %w", err)
	}

	state.Profile = &profile
	s.sessions.Put(state)

	return profile, nil
}

// loadProfile returns nil when the profile cannot be read; the user stays
// signed in without admin rights.
func (s *Service) loadProfile(ctx context.Context, user domain.User) *domain.Profile {
	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		s.logger.Warn("profile fetch failed",
			zap.Stringer("user_id", user.ID),
			zap.Error(err))
		return nil
	}
	return &profile
}
