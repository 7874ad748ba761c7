package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/secwatch/wafreport/pkg/export/docx"
	"github.com/secwatch/wafreport/pkg/export/terminal"
	"github.com/secwatch/wafreport/pkg/logging"
	"github.com/secwatch/wafreport/pkg/models/domain"
	"github.com/secwatch/wafreport/pkg/publish/webdav"
	"github.com/secwatch/wafreport/pkg/services/attacktype"
	"github.com/secwatch/wafreport/pkg/services/chart"
	"github.com/secwatch/wafreport/pkg/services/config"
	"github.com/secwatch/wafreport/pkg/services/report"
	"github.com/secwatch/wafreport/pkg/services/scheduler"
	"github.com/secwatch/wafreport/pkg/store/postgres"
)

type rootCmd struct {
	now     bool
	preview bool
	envFile string
}

func main() {
	rc := &rootCmd{}
	cmd := &cobra.Command{
		Use:          "wafreport",
		Short:        "Generate and publish the WAF weekly security report",
		RunE:         rc.run,
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&rc.now, "now", "n", false, "run one report immediately and exit")
	cmd.Flags().BoolVar(&rc.preview, "preview", false, "print the report to stdout instead of producing a document")
	cmd.Flags().StringVar(&rc.envFile, "env-file", ".env", "path to an optional .env file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (rc *rootCmd) run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(rc.envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "could not load %s: %v\n", rc.envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New("logs", cfg.LogLevel)
	ctx := logger.WithContext(cmd.Context())

	store, err := postgres.NewStore(postgres.Settings{
		DatabaseURL:  cfg.DatabaseURL,
		ExceptAppIDs: cfg.ExceptAppIDs,
		ExceptIPs:    cfg.ExceptIPs,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	generator := report.NewGenerator(report.Options{
		Store:    store,
		Resolver: attacktype.NewResolver(cfg.AttackTypes),
		Charts:   chart.NewRenderer(),
		Project:  cfg.ProjectName,
		Owner:    cfg.ReportOwner,
		ChartDir: cfg.ChartDir,
	})

	publisher, err := webdav.NewPublisher(webdav.Options{
		Hostname: cfg.WebDAV.Hostname,
		Login:    cfg.WebDAV.Login,
		Password: cfg.WebDAV.Password,
		Owner:    cfg.ReportOwner,
	})
	if err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		return runReport(ctx, cfg, generator, publisher, rc.preview)
	}

	sched := scheduler.New(job)
	if rc.now {
		return sched.RunNow(ctx)
	}
	return sched.RunDaily(ctx, cfg.ReportTime)
}

// runReport is one end-to-end pipeline pass: derive the period, build the
// report model, render it, publish it. Upload failure is not fatal; the
// local document remains the durable artifact.
func runReport(ctx context.Context, cfg *config.Config, generator *report.Generator, publisher *webdav.Publisher, preview bool) error {
	logger := zerolog.Ctx(ctx)

	period := domain.NewWeeklyPeriod(time.Now(), domain.Anchor(cfg.PeriodAnchor))
	logger.Info().
		Str("start", period.StartDate.Format("2006-01-02")).
		Str("end", period.EndDate.Format("2006-01-02")).
		Msg("generating weekly report")

	weekly := generator.Generate(ctx, period)

	if preview {
		return terminal.NewReporter(os.Stdout).Handle(weekly)
	}

	path, err := docx.NewExporter().Export(ctx, weekly, cfg.ReportDir)
	if err != nil {
		return fmt.Errorf("save report document: %w", err)
	}

	if err := publisher.Publish(ctx, path, time.Now()); err != nil {
		logger.Error().Err(err).Msg("upload failed, local copy retained")
	}

	logger.Info().Msg("weekly report run complete")
	return nil
}
