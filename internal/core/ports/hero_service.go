package ports

import (
	"context"

	"github.com/superheromanager/hero-service/internal/core/domain"
)

// CreateHeroInput carries all data needed to create a new hero. ImagePath is
// the stored path of an uploaded file, or empty when nothing was uploaded.
type CreateHeroInput struct {
	Name            string
	Alias           string
	Universe        string
	Powers          []string
	Description     string
	Origin          string
	FirstAppearance string
	ImagePath       string
}

// UpdateHeroInput is a partial patch: zero-valued fields are left untouched.
type UpdateHeroInput struct {
	Name            string
	Alias           string
	Universe        string
	Powers          []string
	Description     string
	Origin          string
	FirstAppearance string
	ImagePath       string
}

// HeroService defines use-case operations for heroes.
type HeroService interface {
	List(ctx context.Context, filter ListHeroesFilter) ([]*domain.Hero, error)
	Get(ctx context.Context, id string) (*domain.Hero, error)
	Create(ctx context.Context, input CreateHeroInput) (*domain.Hero, error)
	Update(ctx context.Context, id string, patch UpdateHeroInput) (*domain.Hero, error)
	Delete(ctx context.Context, id string) error
}
