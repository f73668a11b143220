// Command loader seeds the marketplace catalog into the configured store.
// It assembles the built-in taxonomy, normalizes every record, and applies
// the result in a single transaction, printing a JSON summary on stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/agentbazaar/agentbazaar/loader/internal/catalog"
	"github.com/agentbazaar/agentbazaar/loader/internal/config"
	"github.com/agentbazaar/agentbazaar/loader/internal/loader"
	"github.com/agentbazaar/agentbazaar/loader/internal/store"
	"github.com/agentbazaar/agentbazaar/loader/internal/telemetry"
	"github.com/agentbazaar/agentbazaar/loader/pkg/models"
)

var (
	flagMode        string
	flagDryRun      bool
	flagCategories  []string
	flagCatalogFile string
	flagQuiet       bool
)

func main() {
	root := &cobra.Command{
		Use:           "loader",
		Short:         "Load the agent catalog into the marketplace store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVar(&flagMode, "mode", "incremental", "load mode: incremental or full-reset")
	root.Flags().BoolVar(&flagDryRun, "dry-run", false, "do everything except commit")
	root.Flags().StringArrayVar(&flagCategories, "only-category", nil, "restrict agents to a category (repeatable)")
	root.Flags().StringVar(&flagCatalogFile, "catalog-file", "", "TOML overlay merged into the built-in catalog")
	root.Flags().BoolVar(&flagQuiet, "quiet", false, "suppress log output, print only the summary")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitCode(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if flagQuiet {
		out = io.Discard
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	mode, err := parseMode(flagMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	src, err := buildSource()
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Database.URL, cfg.Database.MaxConnections)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	log.Info().
		Str("version", cfg.Version).
		Str("mode", string(mode)).
		Bool("dry_run", flagDryRun).
		Int("agents", len(src.Agents)).
		Int("bundles", len(src.Bundles)).
		Msg("starting catalog load")

	summary, err := loader.Run(ctx, st, src, loader.Options{
		Mode:   mode,
		DryRun: flagDryRun,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return err
	}

	log.Info().
		Int64("duration_ms", summary.DurationMs).
		Int("warnings", len(summary.Warnings)).
		Msg("catalog load complete")
	return nil
}

// buildSource assembles the built-in catalog, merges the optional overlay
// file, and applies the category restriction.
func buildSource() (*catalog.Source, error) {
	src, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	if flagCatalogFile != "" {
		overlay, err := catalog.LoadFile(flagCatalogFile)
		if err != nil {
			return nil, err
		}
		if err := src.Merge(overlay.Agents, overlay.Bundles); err != nil {
			return nil, err
		}
	}
	src.FilterCategories(flagCategories)
	return src, nil
}

func parseMode(s string) (models.Mode, error) {
	switch models.Mode(s) {
	case models.ModeIncremental, models.ModeFullReset:
		return models.Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want incremental or full-reset)", s)
	}
}

// exitCode maps error kinds onto the loader's exit contract: 1 for bad
// input data, 2 for store failures, 3 for unresolvable bundle membership.
func exitCode(err error) int {
	var (
		ve *models.ValidationError
		cc *models.CatalogConflict
		um *models.UnresolvedMember
		ie *models.IntegrityError
		se *models.StoreError
	)
	switch {
	case errors.As(err, &um):
		return 3
	case errors.As(err, &ie), errors.As(err, &se):
		return 2
	case errors.As(err, &ve), errors.As(err, &cc):
		return 1
	default:
		return 1
	}
}
