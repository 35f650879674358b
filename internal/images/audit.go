package images

import (
	"context"
	"path"
	"strings"

	"github.com/superheromanager/hero-service/internal/core/ports"
)

// AuditReport classifies stored image references across the hero collection.
type AuditReport struct {
	Total       int
	NoImage     int            // empty image value
	Placeholder int            // still carrying the default sentinel
	WithImage   int            // pointing at a real file or URL
	ByDirectory map[string]int // real images grouped by parent directory (lg, md, ...)
	ToFix       []string       // hero names that still need a repair pass
}

// Audit scans every hero and reports where its image reference points.
func Audit(ctx context.Context, repo ports.HeroRepository) (*AuditReport, error) {
	heroes, err := repo.List(ctx, ports.ListHeroesFilter{})
	if err != nil {
		return nil, err
	}

	report := &AuditReport{
		Total:       len(heroes),
		ByDirectory: make(map[string]int),
	}
	for _, hero := range heroes {
		switch {
		case strings.TrimSpace(hero.Image) == "":
			report.NoImage++
			report.ToFix = append(report.ToFix, hero.Name)
		case strings.Contains(hero.Image, sentinelMarker):
			report.Placeholder++
			report.ToFix = append(report.ToFix, hero.Name)
		default:
			report.WithImage++
			if dir := path.Base(path.Dir(hero.Image)); dir != "." && dir != "/" {
				report.ByDirectory[dir]++
			}
		}
	}
	return report, nil
}
