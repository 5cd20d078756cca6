package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/kpauljoseph/pdfcheck/internal/config"
	"github.com/kpauljoseph/pdfcheck/internal/pdf"
	"github.com/kpauljoseph/pdfcheck/internal/report"
	"github.com/kpauljoseph/pdfcheck/internal/scanner"
	"github.com/kpauljoseph/pdfcheck/pkg/logger"
	"github.com/kpauljoseph/pdfcheck/pkg/models"
	"github.com/kpauljoseph/pdfcheck/pkg/pdfcheck"
	"github.com/kpauljoseph/pdfcheck/pkg/utils"
	"github.com/kpauljoseph/pdfcheck/pkg/version"
)

const defaultConfigPath = "config.yaml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		configPath  string
		backend     string
		scanDir     string
		timeout     time.Duration
		maxBodySize string
		verbose     bool
		debug       bool
		showVersion bool
		jsonOutput  bool
	)

	flags := pflag.NewFlagSet("pdfcheck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	flags.StringVarP(&backend, "backend", "b", "", fmt.Sprintf("parser backend (%v)", pdf.Backends()))
	flags.StringVarP(&scanDir, "dir", "d", "", "also check every .pdf file under this directory")
	flags.DurationVar(&timeout, "timeout", 0, "HTTP timeout (overrides config)")
	flags.StringVar(&maxBodySize, "max-body-size", "", "maximum download size, e.g. 50MB (overrides config)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&debug, "debug", false, "enable debug mode with trace logging")
	flags.BoolVar(&showVersion, "version", false, "print version and exit")
	flags.BoolVar(&jsonOutput, "json", false, "write results as JSON instead of a table")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s\nUsage: pdfcheck [flags] <file-or-url>...\n\n", version.GetVersionInfo())
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return report.ExitAllValid
		}
		return report.ExitUsage
	}

	if showVersion {
		fmt.Fprint(stdout, version.GetDetailedVersionInfo())
		return report.ExitAllValid
	}

	log := logger.New(
		logger.WithOutput(stderr),
		logger.WithPrefix("[pdfcheck] "),
	)

	cfg, err := loadConfig(configPath, flags.Changed("config"))
	if err != nil {
		log.Warn("Error loading config: %v", err)
		return report.ExitUsage
	}

	if backend != "" {
		cfg.Backend = backend
	}
	if scanDir != "" {
		cfg.ScanDir = scanDir
	}
	if timeout > 0 {
		cfg.HTTP.Timeout = timeout
	}
	if maxBodySize != "" {
		cfg.HTTP.MaxBodySize = maxBodySize
	}
	if err := cfg.Validate(); err != nil {
		log.Warn("Invalid configuration: %v", err)
		return report.ExitUsage
	}

	log.SetLevel(cfg.Level())
	if verbose {
		log.SetVerbose(true)
	}
	if debug {
		log.SetLevel(logger.LevelTrace)
	}
	log.Debug("Using backend %s, timeout %v", cfg.Backend, cfg.HTTP.Timeout)

	checker, err := pdfcheck.NewFromConfig(cfg, log)
	if err != nil {
		log.Warn("Error initializing checker: %v", err)
		return report.ExitUsage
	}

	inputs := flags.Args()
	if cfg.ScanDir != "" {
		found, err := scanner.New(log).FindPDFs(ctx, cfg.ScanDir)
		if err != nil {
			log.Warn("Error scanning %s: %v", cfg.ScanDir, err)
			return report.ExitUsage
		}
		log.Info("Found %d PDFs in %s", len(found), cfg.ScanDir)
		for _, f := range found {
			inputs = append(inputs, f.AbsolutePath)
		}
	}

	if len(inputs) == 0 {
		flags.Usage()
		return report.ExitUsage
	}

	rep := report.New()
	for _, input := range inputs {
		if ctx.Err() != nil {
			log.Warn("Interrupted, skipping remaining inputs")
			break
		}
		rep.Add(check(ctx, checker, input, log))
	}
	rep.Finish()

	if jsonOutput {
		if err := rep.WriteJSON(stdout); err != nil {
			log.Warn("Error writing report: %v", err)
		}
	} else {
		rep.Render(stdout)
	}
	rep.Print(log)

	return rep.ExitCode()
}

// loadConfig reads path when it exists. A missing file is only an error when
// the user asked for it explicitly.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func check(ctx context.Context, checker *pdfcheck.Checker, input string, log *logger.Logger) models.CheckResult {
	start := time.Now()
	result := models.CheckResult{Source: input, Kind: models.SourceFile}

	var (
		data []byte
		err  error
	)
	if utils.IsURL(input) {
		result.Kind = models.SourceURL
		data, err = checker.Fetch(ctx, input)
	} else {
		data, err = os.ReadFile(input)
	}

	if err != nil {
		log.Debug("Could not read %s: %v", input, err)
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Size = int64(len(data))
	result.SHA256 = utils.HashBytes(data)
	result.Valid = checker.IsValidPDF(data)
	result.Duration = time.Since(start)

	log.Debug("%s: %s (%s) in %v", input, result.Status(), utils.HumanSize(result.Size), result.Duration)
	return result
}
