// herotool is the offline maintenance CLI: audit image references, repair
// heroes stuck on the placeholder image, and import the legacy seed dump.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/superheromanager/hero-service/internal/images"
	mongodb "github.com/superheromanager/hero-service/internal/infrastructure/db/mongo"
	"github.com/superheromanager/hero-service/internal/pkg/config"
	"github.com/superheromanager/hero-service/internal/seed"
	"github.com/superheromanager/hero-service/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "herotool",
		Short:         "Offline maintenance for the superhero database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAuditCmd())
	root.AddCommand(newRepairCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// connect loads config, initialises logging and opens the hero repository.
// The returned cleanup func closes the Mongo client.
func connect(ctx context.Context) (*mongodb.HeroRepository, zerolog.Logger, func(), error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return mongodb.NewHeroRepository(db), log, cleanup, nil
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Report where every hero's image reference points",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, _, cleanup, err := connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := images.Audit(ctx, repo)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "heroes:      %d\n", report.Total)
			fmt.Fprintf(out, "with image:  %d\n", report.WithImage)
			fmt.Fprintf(out, "no image:    %d\n", report.NoImage)
			fmt.Fprintf(out, "placeholder: %d\n", report.Placeholder)

			dirs := make([]string, 0, len(report.ByDirectory))
			for dir := range report.ByDirectory {
				dirs = append(dirs, dir)
			}
			sort.Strings(dirs)
			for _, dir := range dirs {
				fmt.Fprintf(out, "  %s: %d\n", dir, report.ByDirectory[dir])
			}

			if len(report.ToFix) > 0 {
				fmt.Fprintf(out, "needing repair (%d):\n", len(report.ToFix))
				for _, name := range report.ToFix {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			return nil
		},
	}
}

func newRepairCmd() *cobra.Command {
	var (
		root   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Link placeholder heroes to real catalog images by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, log, cleanup, err := connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			repairer := images.Repairer{
				Repo:   repo,
				Root:   root,
				DryRun: dryRun,
				Logger: log,
			}
			report, err := repairer.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scanned:    %d\n", report.Scanned)
			fmt.Fprintf(out, "candidates: %d\n", report.Candidates)
			fmt.Fprintf(out, "fixed:      %d\n", report.Fixed)
			if len(report.Unresolved) > 0 {
				fmt.Fprintf(out, "unresolved (%d):\n", len(report.Unresolved))
				for _, name := range report.Unresolved {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			if dryRun {
				fmt.Fprintln(out, "dry run: no changes were written")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "images-dir", "public-images", "catalog root directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without writing")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <dump.json>",
		Short: "Wipe the hero collection and import the legacy JSON dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, log, cleanup, err := connect(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := seed.Import(ctx, repo, args[0], log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d heroes (marvel=%d dc=%d other=%d)\n",
				report.Imported, report.Marvel, report.DC, report.Other)
			return nil
		},
	}
}
