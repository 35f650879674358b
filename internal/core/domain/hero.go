package domain

import (
	"strings"
	"time"
)

// Universe is the comic universe a hero belongs to.
type Universe string

const (
	UniverseMarvel Universe = "Marvel"
	UniverseDC     Universe = "DC"
	UniverseOther  Universe = "Autre"
)

// PlaceholderImage is the sentinel path assigned to heroes without a real image.
const PlaceholderImage = "/uploads/default-hero.jpg"

// NormalizeUniverse maps free-form universe input onto the enum. Unknown or
// empty input falls back to UniverseOther, so a stored universe is always one
// of the three values.
func NormalizeUniverse(raw string) Universe {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lower == "":
		return UniverseOther
	case strings.Contains(lower, "marvel"):
		return UniverseMarvel
	case strings.Contains(lower, "dc"), strings.Contains(lower, "detective comics"):
		return UniverseDC
	default:
		return UniverseOther
	}
}

// NormalizePowers drops empty entries while preserving order.
func NormalizePowers(powers []string) []string {
	out := make([]string, 0, len(powers))
	for _, p := range powers {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Hero is the core aggregate. JSON wire names follow the public API contract
// inherited from the legacy dataset, hence the French field names.
type Hero struct {
	ID              string    `json:"_id"`
	Name            string    `json:"nom"`
	Alias           string    `json:"alias"`
	Universe        Universe  `json:"universe"`
	Powers          []string  `json:"pouvoirs"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	Origin          string    `json:"origine"`
	FirstAppearance string    `json:"premiereApparition"`
	CreatedAt       time.Time `json:"createdAt"`
}

// HasUploadedImage reports whether the hero references a file under /uploads
// other than the placeholder, i.e. a file the service itself wrote and owns.
func (h *Hero) HasUploadedImage() bool {
	return h.Image != "" && h.Image != PlaceholderImage && strings.HasPrefix(h.Image, "/uploads/")
}
