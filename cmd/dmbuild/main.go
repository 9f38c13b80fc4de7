package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deepmind/dmbuild"
)

func main() {
	root := flag.String("root", ".", "dm_robotics repository root")
	layoutPath := flag.String("config", "build.toml", "optional layout file, relative to the root")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := initLogger(*verbose)

	cfg := dmbuild.ResolveConfig(*root, os.Getenv)

	path := *layoutPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(*root, path)
	}
	layout, err := dmbuild.LoadLayout(*root, path)
	if err != nil {
		logger.Fatal().Err(err).Msg("layout")
	}
	cfg.Layout = layout

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := dmbuild.NewRunner(cfg.Env)

	probe := dmbuild.ProbeVersion(ctx, runner, cfg.Python)
	if !probe.Ok() {
		logger.Warn().Err(probe.Err).Str("banner", probe.Raw).Msg("version probe inconclusive, using fallback")
	}
	cfg.PythonVersion = dmbuild.ResolvePythonVersion(os.Getenv(dmbuild.EnvPythonVersion), probe)

	p := dmbuild.NewPipeline(cfg, runner, logger)
	if err := p.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("build failed")
		os.Exit(1)
	}
}

func initLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("run", uuid.NewString()).Logger()
}
