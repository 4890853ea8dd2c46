package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/Clapiton/socials/pkg/collector"
	"github.com/Clapiton/socials/pkg/config"
	"github.com/Clapiton/socials/pkg/content"
	"github.com/Clapiton/socials/pkg/llm"
	"github.com/Clapiton/socials/pkg/metrics"
	"github.com/Clapiton/socials/pkg/notify"
	"github.com/Clapiton/socials/pkg/pipeline"
	"github.com/Clapiton/socials/pkg/repository"
	"github.com/Clapiton/socials/pkg/scheduler"
	"github.com/Clapiton/socials/pkg/sentiment"
	"github.com/Clapiton/socials/pkg/service"
	"github.com/Clapiton/socials/pkg/source"
	"github.com/Clapiton/socials/pkg/task"
	"github.com/Clapiton/socials/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`

	Collect CollectCmd `command:"collect" description:"collect posts from sources once"`
	Analyze AnalyzeCmd `command:"analyze" description:"analyze unprocessed posts once"`
	Import  ImportCmd  `command:"import" description:"import text or csv as manual posts"`
	Server  ServerCmd  `command:"server" description:"run http api, the default command"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// CollectCmd options of collect command
type CollectCmd struct {
	Platforms []string `short:"p" long:"platform" description:"platform to collect from, repeat for several, all if not set"`
	Limit     int      `short:"l" long:"limit" default:"25" description:"max posts per source"`
}

// AnalyzeCmd options of analyze command
type AnalyzeCmd struct {
	Limit int `short:"l" long:"limit" default:"50" description:"max posts to analyze"`
}

// ImportCmd options of import command
type ImportCmd struct {
	File   string `short:"f" long:"file" description:"csv file with a content column"`
	Text   string `short:"t" long:"text" description:"text of a single post"`
	Author string `long:"author" description:"author of the text post"`
	Label  string `long:"label" description:"label of the text post"`
}

// ServerCmd options of server command
type ServerCmd struct {
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	command := "server"
	if parser.Active != nil {
		command = parser.Active.Name
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, command, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %s failed: %v", command, err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application and executes command
func run(ctx context.Context, opts Opts, command string, out io.Writer) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	setupLog(opts.Debug, cfg.Secrets()...)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	switch command {
	case "collect":
		return a.collect(ctx, opts.Collect, out)
	case "analyze":
		return a.analyze(ctx, opts.Analyze, out)
	case "import":
		return a.importPosts(ctx, opts.Import, out)
	case "server":
		if opts.Server.Listen != "" {
			cfg.Server.Listen = opts.Server.Listen
		}
		return a.serve(ctx, opts.Debug)
	}
	return fmt.Errorf("unknown command %q", command)
}

// app holds wired components shared by all commands
type app struct {
	cfg      *config.Config
	repos    *repository.Repositories
	registry *source.Registry
	importer *source.Importer
	webhook  *notify.Webhook
	metrics  *metrics.Metrics
	sweeps   *service.SweepService
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var registryOpts []source.RegistryOption
	if cfg.Extraction.Enabled {
		registryOpts = append(registryOpts, source.WithExtractor(content.NewHTTPExtractor(cfg.Extraction)))
	}
	registry := source.NewRegistry(cfg.Sources, registryOpts...)

	// analysis refuses to run without a classifier, collection and import still work
	var classifier pipeline.Classifier
	if cfg.LLM.APIKey != "" {
		classifier = llm.NewClassifier(cfg.GetLLMConfig())
	} else {
		lgr.Printf("[WARN] llm api key is not set, analysis is disabled")
	}

	tracker := task.NewTracker()
	webhook := notify.NewWebhook(cfg.Notify.Timeout)
	m := metrics.New()

	analyzer := pipeline.New(pipeline.Params{
		Posts:      repos.Post,
		Analyses:   repos.Analysis,
		Settings:   repos.Setting,
		Scorer:     sentiment.New(),
		Classifier: classifier,
		Promoter:   pipeline.NewPromoter(repos.Lead, webhook),
		Progress:   tracker,
	})

	sweeps := service.NewSweepService(ctx, service.Params{
		Collector: collector.New(registry, repos.Post, repos.Setting, tracker),
		Analyzer:  analyzer,
		Tracker:   tracker,
		Recorder:  m,
	})

	return &app{
		cfg:      cfg,
		repos:    repos,
		registry: registry,
		importer: source.NewImporter(repos.Post, source.NewNormalizer(time.Now)),
		webhook:  webhook,
		metrics:  m,
		sweeps:   sweeps,
	}, nil
}

// close waits for background work and releases the database
func (a *app) close() {
	a.sweeps.Wait()
	a.webhook.Wait()
	if err := a.repos.Close(); err != nil {
		lgr.Printf("[WARN] failed to close database: %v", err)
	}
}

func (a *app) collect(ctx context.Context, cmd CollectCmd, out io.Writer) error {
	res, err := a.sweeps.RunCollect(ctx, cmd.Platforms, cmd.Limit)
	for _, st := range res.Sources {
		status := fmt.Sprintf("fetched %d, inserted %d, duplicates %d, filtered %d, errors %d",
			st.Fetched, st.Inserted, st.Duplicates, st.Filtered, st.Errors)
		if st.Skipped {
			status = "skipped"
		}
		if st.Error != "" {
			status += ": " + st.Error
		}
		fmt.Fprintf(out, "%-12s %-28s %s\n", st.Platform, st.Source, status)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "collected %d new posts from %d sources\n", res.Total.Inserted, len(res.Sources))
	return nil
}

func (a *app) analyze(ctx context.Context, cmd AnalyzeCmd, out io.Writer) error {
	stats, err := a.sweeps.RunAnalyze(ctx, cmd.Limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "analyzed %d posts: %d passed sentiment, %d skipped, %d frustrated, %d not frustrated, %d errors\n",
		stats.Fetched, stats.SentimentPassed, stats.SentimentSkipped, stats.Frustrated, stats.NotFrustrated, stats.Errors)
	fmt.Fprintf(out, "leads created: %d\n", stats.LeadsCreated)
	return nil
}

func (a *app) importPosts(ctx context.Context, cmd ImportCmd, out io.Writer) error {
	if (cmd.File == "") == (strings.TrimSpace(cmd.Text) == "") {
		return errors.New("exactly one of --file or --text is required")
	}

	var res string
	if cmd.File != "" {
		fh, err := os.Open(cmd.File) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return fmt.Errorf("open %s: %w", cmd.File, err)
		}
		defer fh.Close()
		stats, err := a.importer.ImportCSV(ctx, fh)
		if err != nil {
			return fmt.Errorf("import csv: %w", err)
		}
		res = fmt.Sprintf("imported %d of %d rows, %d duplicates", stats.Inserted, stats.Fetched, stats.Duplicates)
	} else {
		stats, err := a.importer.ImportText(ctx, cmd.Text, cmd.Author, cmd.Label)
		if err != nil {
			return fmt.Errorf("import text: %w", err)
		}
		res = fmt.Sprintf("imported %d posts, %d duplicates", stats.Inserted, stats.Duplicates)
	}
	fmt.Fprintln(out, res)
	return nil
}

// serve runs the http api and, if enabled, the sweep scheduler until ctx is canceled
func (a *app) serve(ctx context.Context, debug bool) error {
	lgr.Printf("[INFO] starting socials version %s", revision)

	srv := server.New(server.Params{
		Config:    a.cfg,
		Database:  server.NewRepositoryAdapter(a.repos),
		Sweeper:   a.sweeps,
		Importer:  a.importer,
		Forwarder: a.webhook,
		Metrics:   a.metrics,
		BaseURL:   a.cfg.Server.BaseURL,
		Version:   revision,
		Debug:     debug,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })

	if a.cfg.Schedule.Enabled {
		sched := scheduler.NewScheduler(scheduler.Params{
			Sweeper:      a.sweeps,
			Settings:     a.repos.Setting,
			CollectLimit: a.cfg.Schedule.Limit,
			AnalyzeLimit: a.cfg.Schedule.Batch,
		})
		sched.Start(ctx)
		g.Go(func() error {
			<-ctx.Done()
			sched.Stop()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	lgr.Printf("[INFO] shutdown complete")
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
