package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/api/metrics"
	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

// ImageCleaner abstracts the background sweeper that removes upload files the
// service no longer references.
type ImageCleaner interface {
	Enqueue(path string)
}

// ListCache abstracts the Redis-backed hero list cache. A miss is (nil, nil).
type ListCache interface {
	Get(ctx context.Context, filter ports.ListHeroesFilter) ([]*domain.Hero, error)
	Set(ctx context.Context, filter ports.ListHeroesFilter, heroes []*domain.Hero) error
	Invalidate(ctx context.Context) error
}

// HeroService implements the hero record lifecycle.
type HeroService struct {
	repo    ports.HeroRepository
	cleaner ImageCleaner
	cache   ListCache
	logger  zerolog.Logger
}

// NewHeroService returns a HeroService. cleaner and cache may be nil; the
// service then skips cleanup scheduling and caching respectively.
func NewHeroService(repo ports.HeroRepository, cleaner ImageCleaner, cache ListCache, logger zerolog.Logger) *HeroService {
	return &HeroService{repo: repo, cleaner: cleaner, cache: cache, logger: logger}
}

func (s *HeroService) List(ctx context.Context, filter ports.ListHeroesFilter) ([]*domain.Hero, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, filter)
		if err != nil {
			s.logger.Warn().Err(err).Msg("hero cache read failed, falling back to store")
		} else if cached != nil {
			metrics.ListCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			metrics.ListCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	heroes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, filter, heroes); err != nil {
			s.logger.Warn().Err(err).Msg("hero cache write failed")
		}
	}
	return heroes, nil
}

func (s *HeroService) Get(ctx context.Context, id string) (*domain.Hero, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *HeroService) Create(ctx context.Context, input ports.CreateHeroInput) (*domain.Hero, error) {
	if err := validateRequired(input); err != nil {
		return nil, err
	}

	image := input.ImagePath
	if image == "" {
		image = domain.PlaceholderImage
	}

	hero := &domain.Hero{
		Name:            strings.TrimSpace(input.Name),
		Alias:           strings.TrimSpace(input.Alias),
		Universe:        domain.NormalizeUniverse(input.Universe),
		Powers:          domain.NormalizePowers(input.Powers),
		Description:     strings.TrimSpace(input.Description),
		Image:           image,
		Origin:          strings.TrimSpace(input.Origin),
		FirstAppearance: strings.TrimSpace(input.FirstAppearance),
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.repo.Insert(ctx, hero)
	if err != nil {
		s.logger.Error().Err(err).Str("nom", hero.Name).Msg("failed to create hero")
		return nil, err
	}

	metrics.HeroesCreatedTotal.WithLabelValues(string(created.Universe)).Inc()
	s.invalidate(ctx)
	s.logger.Info().Str("id", created.ID).Str("nom", created.Name).Msg("hero created")
	return created, nil
}

// Update applies a partial patch: only non-zero fields of patch change the
// stored record. When the patch replaces an uploaded image, the previous file
// is scheduled for removal.
func (s *HeroService) Update(ctx context.Context, id string, patch ports.UpdateHeroInput) (*domain.Hero, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousImage := existing.Image
	hadUpload := existing.HasUploadedImage()

	overlay := domain.Hero{
		Name:            strings.TrimSpace(patch.Name),
		Alias:           strings.TrimSpace(patch.Alias),
		Description:     strings.TrimSpace(patch.Description),
		Origin:          strings.TrimSpace(patch.Origin),
		FirstAppearance: strings.TrimSpace(patch.FirstAppearance),
		Image:           patch.ImagePath,
	}
	if patch.Universe != "" {
		overlay.Universe = domain.NormalizeUniverse(patch.Universe)
	}
	if patch.Powers != nil {
		overlay.Powers = domain.NormalizePowers(patch.Powers)
	}

	if err := mergo.Merge(existing, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("apply hero patch: %w", err)
	}

	if err := s.repo.Replace(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update hero")
		return nil, err
	}

	if hadUpload && existing.Image != previousImage && s.cleaner != nil {
		s.cleaner.Enqueue(previousImage)
	}

	s.invalidate(ctx)
	s.logger.Info().Str("id", id).Msg("hero updated")
	return existing, nil
}

// Delete removes the record immediately. The stored upload file, if any, is
// handed to the sweeper; the record itself is gone regardless of the outcome.
func (s *HeroService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete hero")
		return err
	}

	if existing.HasUploadedImage() && s.cleaner != nil {
		s.cleaner.Enqueue(existing.Image)
	}

	metrics.HeroesDeletedTotal.Inc()
	s.invalidate(ctx)
	s.logger.Info().Str("id", id).Str("nom", existing.Name).Msg("hero deleted")
	return nil
}

func (s *HeroService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("hero cache invalidation failed")
	}
}

func validateRequired(input ports.CreateHeroInput) error {
	required := []struct {
		field string
		value string
	}{
		{"nom", input.Name},
		{"alias", input.Alias},
		{"universe", input.Universe},
		{"description", input.Description},
		{"origine", input.Origin},
		{"premiereApparition", input.FirstAppearance},
	}
	missing := make([]string, 0, len(required))
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
