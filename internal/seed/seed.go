// Package seed imports the legacy superhero JSON dump into the hero
// collection. One-shot tooling: it drops the collection and re-creates it.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

// legacyHero tolerates both French and English field names, since the dump
// was assembled from several sources.
type legacyHero struct {
	Nom                string   `json:"nom"`
	Name               string   `json:"name"`
	Alias              string   `json:"alias"`
	Universe           string   `json:"universe"`
	Univers            string   `json:"univers"`
	Pouvoirs           []string `json:"pouvoirs"`
	Powers             []string `json:"powers"`
	Description        string   `json:"description"`
	Desc               string   `json:"desc"`
	Image              string   `json:"image"`
	ImageURL           string   `json:"imageUrl"`
	Origine            string   `json:"origine"`
	Origin             string   `json:"origin"`
	PremiereApparition string   `json:"premiereApparition"`
	FirstAppearance    string   `json:"firstAppearance"`
}

type dump struct {
	Superheros []legacyHero `json:"superheros"`
}

// Report summarises one import run.
type Report struct {
	Imported int
	Marvel   int
	DC       int
	Other    int
}

// Import reads the dump at path, wipes the hero collection and re-imports
// every record with normalized universes and defaulted images.
func Import(ctx context.Context, repo ports.HeroRepository, path string, log zerolog.Logger) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var d dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	log.Info().Int("count", len(d.Superheros)).Str("file", path).Msg("dump loaded")

	now := time.Now().UTC()
	report := &Report{}
	heroes := make([]*domain.Hero, 0, len(d.Superheros))
	for _, lh := range d.Superheros {
		hero := toDomain(lh, now)
		switch hero.Universe {
		case domain.UniverseMarvel:
			report.Marvel++
		case domain.UniverseDC:
			report.DC++
		default:
			report.Other++
		}
		heroes = append(heroes, hero)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear collection: %w", err)
	}
	if err := repo.InsertMany(ctx, heroes); err != nil {
		return nil, fmt.Errorf("insert heroes: %w", err)
	}

	report.Imported = len(heroes)
	log.Info().
		Int("imported", report.Imported).
		Int("marvel", report.Marvel).
		Int("dc", report.DC).
		Int("other", report.Other).
		Msg("import complete")
	return report, nil
}

func toDomain(lh legacyHero, now time.Time) *domain.Hero {
	name := first(lh.Nom, lh.Name)
	if name == "" {
		name = "Héros sans nom"
	}
	powers := lh.Pouvoirs
	if len(powers) == 0 {
		powers = lh.Powers
	}
	image := first(lh.Image, lh.ImageURL)
	if image == "" {
		image = domain.PlaceholderImage
	}

	return &domain.Hero{
		Name:            name,
		Alias:           lh.Alias,
		Universe:        domain.NormalizeUniverse(first(lh.Universe, lh.Univers)),
		Powers:          domain.NormalizePowers(powers),
		Description:     first(lh.Description, lh.Desc),
		Image:           image,
		Origin:          first(lh.Origine, lh.Origin),
		FirstAppearance: first(lh.PremiereApparition, lh.FirstAppearance),
		CreatedAt:       now,
	}
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
