package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"parking-service/internal/auth"
	"parking-service/internal/domain/parking"
)

// IdentityService resolves token claims to a user record. Users are
// created on first authentication with an empty role; roles are assigned
// out of band.
type IdentityService struct {
	users UserStore
	log   zerolog.Logger
}

func NewIdentityService(users UserStore, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, log: log}
}

func (s *IdentityService) ResolveCaller(ctx context.Context, claims *auth.Claims) (*parking.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.users.FindBySubject(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up caller: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &parking.User{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user on first authentication: %w", err)
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("created user on first authentication")

	return user, nil
}
