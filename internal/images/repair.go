package images

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/api/metrics"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

// imageExtensions are the catalog file types the index considers.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// sentinelMarker identifies heroes still carrying the default image.
const sentinelMarker = "default-hero"

// RepairReport summarises one repair run.
type RepairReport struct {
	Scanned    int      // heroes examined
	Candidates int      // heroes with an empty or sentinel image
	Fixed      int      // heroes whose image was rewritten
	Unresolved []string // names of heroes no catalog image matched
}

// BuildIndex walks the catalog root and maps each image file's normalized
// name to its serving path under /images/. On key collisions the first file
// found wins.
func BuildIndex(root string) (map[string]string, error) {
	index := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		key := NormalizeName(name)
		if _, taken := index[key]; !taken {
			index[key] = ImageBasePath + filepath.ToSlash(rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// Repairer links heroes carrying the placeholder sentinel to real catalog
// images by normalized-name matching. Strictly an offline tool: serving-time
// resolution never guesses, it only uses the stored path.
type Repairer struct {
	Repo   ports.HeroRepository
	Root   string // catalog root directory on disk
	DryRun bool
	Logger zerolog.Logger
}

// Run performs one repair pass. Idempotent: a second run over the same data
// fixes nothing, because repaired heroes no longer carry the sentinel.
func (r *Repairer) Run(ctx context.Context) (*RepairReport, error) {
	index, err := BuildIndex(r.Root)
	if err != nil {
		return nil, err
	}
	r.Logger.Info().Int("images", len(index)).Str("root", r.Root).Msg("catalog indexed")

	heroes, err := r.Repo.List(ctx, ports.ListHeroesFilter{})
	if err != nil {
		return nil, err
	}

	report := &RepairReport{Scanned: len(heroes)}
	for _, hero := range heroes {
		if !needsRepair(hero.Image) {
			continue
		}
		report.Candidates++

		found := r.match(index, hero.Name)
		if found == "" {
			report.Unresolved = append(report.Unresolved, hero.Name)
			metrics.ImageRepairsTotal.WithLabelValues("unresolved").Inc()
			r.Logger.Warn().Str("nom", hero.Name).Msg("no catalog image found")
			continue
		}

		if !r.DryRun {
			if err := r.Repo.UpdateImage(ctx, hero.ID, found); err != nil {
				return nil, err
			}
		}
		report.Fixed++
		metrics.ImageRepairsTotal.WithLabelValues("fixed").Inc()
		r.Logger.Info().Str("nom", hero.Name).Str("old", hero.Image).Str("new", found).Msg("image repaired")
	}
	return report, nil
}

// match finds a catalog path for the hero name: exact normalized-name lookup
// first, then a probe of each size-variant directory for <name>.jpg on disk.
func (r *Repairer) match(index map[string]string, heroName string) string {
	key := NormalizeName(heroName)
	if key == "" {
		return ""
	}
	if p, ok := index[key]; ok {
		return p
	}
	for _, size := range SizeDirs {
		candidate := filepath.Join(r.Root, size, key+".jpg")
		if _, err := os.Stat(candidate); err == nil {
			return path.Join(ImageBasePath, size, key+".jpg")
		}
	}
	return ""
}

func needsRepair(image string) bool {
	return strings.TrimSpace(image) == "" || strings.Contains(image, sentinelMarker)
}
