package ports

import (
	"context"

	"github.com/superheromanager/hero-service/internal/core/domain"
)

type AuthService interface {
	// Register creates an account and returns a signed session token alongside
	// the public user view. An empty role defaults to editor.
	Register(ctx context.Context, username, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	// SetRole changes a user's role. Caller must enforce admin access.
	SetRole(ctx context.Context, userID, role string) (*domain.User, error)
}
