package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/superheromanager/hero-service/internal/core/domain"
	"github.com/superheromanager/hero-service/internal/core/ports"
)

type fakeHeroRepo struct {
	heroes []*domain.Hero
}

func (r *fakeHeroRepo) List(_ context.Context, _ ports.ListHeroesFilter) ([]*domain.Hero, error) {
	return r.heroes, nil
}

func (r *fakeHeroRepo) FindByID(_ context.Context, id string) (*domain.Hero, error) {
	for _, h := range r.heroes {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, domain.ErrHeroNotFound
}

func (r *fakeHeroRepo) Insert(_ context.Context, hero *domain.Hero) (*domain.Hero, error) {
	r.heroes = append(r.heroes, hero)
	return hero, nil
}

func (r *fakeHeroRepo) Replace(_ context.Context, _ *domain.Hero) error { return nil }
func (r *fakeHeroRepo) Delete(_ context.Context, _ string) error        { return nil }

func (r *fakeHeroRepo) UpdateImage(_ context.Context, id, image string) error {
	for _, h := range r.heroes {
		if h.ID == id {
			h.Image = image
			return nil
		}
	}
	return domain.ErrHeroNotFound
}

func (r *fakeHeroRepo) DeleteAll(_ context.Context) error { return nil }

func (r *fakeHeroRepo) InsertMany(_ context.Context, heroes []*domain.Hero) error {
	r.heroes = append(r.heroes, heroes...)
	return nil
}

// writeCatalog creates a catalog tree under a temp dir and returns its root.
func writeCatalog(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return root
}

func TestBuildIndex(t *testing.T) {
	root := writeCatalog(t,
		"lg/spiderman.jpg",
		"md/spiderman.jpg",
		"lg/wonder-woman.png",
		"lg/notes.txt",
	)

	index, err := BuildIndex(root)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	if got := index["wonderwoman"]; got != "/images/lg/wonder-woman.png" {
		t.Fatalf("wonderwoman = %q", got)
	}
	if _, ok := index["notes"]; ok {
		t.Fatalf("non-image file should not be indexed")
	}
	// lg sorts before md, so the lg variant wins the key collision.
	if got := index["spiderman"]; got != "/images/lg/spiderman.jpg" {
		t.Fatalf("spiderman = %q", got)
	}
}

func TestRepairer_Run(t *testing.T) {
	root := writeCatalog(t, "lg/spiderman.jpg", "lg/batman.jpg")
	repo := &fakeHeroRepo{heroes: []*domain.Hero{
		{ID: "1", Name: "Spider-Man", Image: domain.PlaceholderImage},
		{ID: "2", Name: "Batman", Image: ""},
		{ID: "3", Name: "Obscurio", Image: domain.PlaceholderImage},
		{ID: "4", Name: "Wolverine", Image: "/images/lg/wolverine.jpg"},
	}}

	repairer := Repairer{Repo: repo, Root: root, Logger: zerolog.Nop()}
	report, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Scanned != 4 {
		t.Fatalf("scanned = %d", report.Scanned)
	}
	if report.Candidates != 3 {
		t.Fatalf("candidates = %d", report.Candidates)
	}
	if report.Fixed != 2 {
		t.Fatalf("fixed = %d", report.Fixed)
	}
	if len(report.Unresolved) != 1 || report.Unresolved[0] != "Obscurio" {
		t.Fatalf("unresolved = %v", report.Unresolved)
	}

	if repo.heroes[0].Image != "/images/lg/spiderman.jpg" {
		t.Fatalf("spiderman image = %q", repo.heroes[0].Image)
	}
	if repo.heroes[1].Image != "/images/lg/batman.jpg" {
		t.Fatalf("batman image = %q", repo.heroes[1].Image)
	}
	// Hero with a real image stays untouched.
	if repo.heroes[3].Image != "/images/lg/wolverine.jpg" {
		t.Fatalf("wolverine image = %q", repo.heroes[3].Image)
	}
}

// A second pass over repaired data finds no candidates left to fix.
func TestRepairer_Run_Idempotent(t *testing.T) {
	root := writeCatalog(t, "lg/spiderman.jpg")
	repo := &fakeHeroRepo{heroes: []*domain.Hero{
		{ID: "1", Name: "Spider-Man", Image: domain.PlaceholderImage},
	}}
	repairer := Repairer{Repo: repo, Root: root, Logger: zerolog.Nop()}

	first, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Fixed != 1 {
		t.Fatalf("first run fixed = %d", first.Fixed)
	}

	second, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Candidates != 0 || second.Fixed != 0 {
		t.Fatalf("second run should be a no-op, got %+v", second)
	}
}

func TestRepairer_Run_DryRun(t *testing.T) {
	root := writeCatalog(t, "lg/spiderman.jpg")
	repo := &fakeHeroRepo{heroes: []*domain.Hero{
		{ID: "1", Name: "Spider-Man", Image: domain.PlaceholderImage},
	}}
	repairer := Repairer{Repo: repo, Root: root, DryRun: true, Logger: zerolog.Nop()}

	report, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Fixed != 1 {
		t.Fatalf("fixed = %d", report.Fixed)
	}
	if repo.heroes[0].Image != domain.PlaceholderImage {
		t.Fatalf("dry run must not write, image = %q", repo.heroes[0].Image)
	}
}

func TestAudit(t *testing.T) {
	repo := &fakeHeroRepo{heroes: []*domain.Hero{
		{ID: "1", Name: "Spider-Man", Image: "/images/lg/spiderman.jpg"},
		{ID: "2", Name: "Batman", Image: "/images/md/batman.jpg"},
		{ID: "3", Name: "Obscurio", Image: domain.PlaceholderImage},
		{ID: "4", Name: "Mystery", Image: ""},
	}}

	report, err := Audit(context.Background(), repo)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}

	if report.Total != 4 || report.WithImage != 2 || report.Placeholder != 1 || report.NoImage != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.ByDirectory["lg"] != 1 || report.ByDirectory["md"] != 1 {
		t.Fatalf("unexpected directory counts: %v", report.ByDirectory)
	}
	if len(report.ToFix) != 2 {
		t.Fatalf("ToFix = %v", report.ToFix)
	}
}
