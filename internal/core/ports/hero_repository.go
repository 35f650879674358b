package ports

import (
	"context"

	"github.com/superheromanager/hero-service/internal/core/domain"
)

// ListHeroesFilter carries the query parameters for listing heroes.
type ListHeroesFilter struct {
	Search   string // case-insensitive substring match over nom OR alias
	Universe string // exact match; empty or "all" means no filter
	Sort     string // "" = newest first, "name" = nom ascending, "oldest" = oldest first
}

// HeroRepository defines persistence operations for heroes.
type HeroRepository interface {
	// List returns every hero matching filter, already sorted. No pagination.
	List(ctx context.Context, filter ListHeroesFilter) ([]*domain.Hero, error)
	FindByID(ctx context.Context, id string) (*domain.Hero, error)
	Insert(ctx context.Context, hero *domain.Hero) (*domain.Hero, error)
	// Replace overwrites the stored document for hero.ID.
	Replace(ctx context.Context, hero *domain.Hero) error
	Delete(ctx context.Context, id string) error

	// UpdateImage sets only the image field. Used by the offline repair tool.
	UpdateImage(ctx context.Context, id, image string) error
	// DeleteAll and InsertMany support the one-shot seed import.
	DeleteAll(ctx context.Context) error
	InsertMany(ctx context.Context, heroes []*domain.Hero) error
}
