//go:build mage

package main

import (
	"context"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"github.com/rs/zerolog"

	"github.com/deepmind/dmbuild"
)

// Wheel builds the native controllers wheel, repairs it when auditwheel
// is available, and stages it for the downstream packages.
func Wheel(ctx context.Context) error {
	p, _ := setup(ctx)
	return p.RunBuild(ctx)
}

// Packages runs tox in every downstream package directory and the
// integration tests. Depends on Wheel.
func Packages(ctx context.Context) error {
	mg.CtxDeps(ctx, Wheel)

	p, _ := setup(ctx)
	return p.RunPackages(ctx)
}

// All runs the complete pipeline.
func All(ctx context.Context) error {
	p, _ := setup(ctx)
	return p.Run(ctx)
}

// Clean removes the native build directory and the staging directory.
func Clean() error {
	cfg := dmbuild.ResolveConfig(".", os.Getenv)

	if err := sh.Rm(cfg.Layout.Path(cfg.Layout.NativeBuildDir)); err != nil {
		return err
	}
	return sh.Rm(cfg.Layout.Path(cfg.Layout.StagingDir))
}

func setup(ctx context.Context) (*dmbuild.Pipeline, *dmbuild.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg := dmbuild.ResolveConfig(".", os.Getenv)
	runner := dmbuild.NewRunner(cfg.Env)

	probe := dmbuild.ProbeVersion(ctx, runner, cfg.Python)
	cfg.PythonVersion = dmbuild.ResolvePythonVersion(os.Getenv(dmbuild.EnvPythonVersion), probe)

	return dmbuild.NewPipeline(cfg, runner, logger), cfg
}
