// Command migrate applies db/schema.sql declaratively against the configured
// database using Atlas. A dev database is required for diffing; by default a
// throwaway dockerized Postgres is used.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"stayflow/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	var (
		schemaURL = flag.String("schema", "file://db/schema.sql", "desired schema state")
		devURL    = flag.String("dev-url", "docker://postgres/16/dev", "dev database used for diffing")
		dryRun    = flag.Bool("dry-run", false, "print planned changes without applying")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.SchemaApply(context.Background(), &atlasexec.SchemaApplyParams{
		URL:    cfg.DB.BuildDSN(),
		To:     *schemaURL,
		DevURL: *devURL,
		DryRun: *dryRun,
	})
	if err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	slog.Info("schema apply finished",
		"applied", len(res.Changes.Applied),
		"pending", len(res.Changes.Pending),
		"dry_run", *dryRun,
	)
}
