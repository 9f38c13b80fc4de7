package dmbuild

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Stage is one step of the build pipeline. Stages run strictly in
// order; the first error aborts the run.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline sequences the build stages over a resolved Config. It holds
// no mutable state of its own; all effects are filesystem side effects
// of the stages.
type Pipeline struct {
	cfg    *Config
	runner *Runner
	log    zerolog.Logger
}

// NewPipeline returns a pipeline over cfg using r for all subprocess
// invocations.
func NewPipeline(cfg *Config, r *Runner, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, runner: r, log: log}
}

// BuildStages returns the native wheel stages: tool preflight, tox
// install, build directory reset, wheel build and verification, repair,
// and staging.
func (p *Pipeline) BuildStages() []Stage {
	cfg, r := p.cfg, p.runner

	return []Stage{
		{Name: "preflight", Run: func(ctx context.Context) error {
			return CheckRequiredTools(pipelineTools(cfg))
		}},
		{Name: "ensure tox", Run: func(ctx context.Context) error {
			return EnsureTox(ctx, r, cfg)
		}},
		{Name: "reset build dir", Run: func(ctx context.Context) error {
			return ResetDir(cfg.Layout.Path(cfg.Layout.NativeBuildDir))
		}},
		{Name: "build wheel", Run: func(ctx context.Context) error {
			if err := BuildWheel(ctx, r, cfg); err != nil {
				return err
			}
			wheels, err := VerifyWheel(cfg)
			if err != nil {
				return err
			}
			p.log.Info().Strs("wheels", wheels).Msg("native build complete")
			return nil
		}},
		{Name: "repair wheel", Run: func(ctx context.Context) error {
			return RepairWheels(ctx, r, cfg)
		}},
		{Name: "stage wheel", Run: func(ctx context.Context) error {
			wheels, err := VerifyWheel(cfg)
			if err != nil {
				return err
			}
			return StageWheels(cfg, wheels)
		}},
	}
}

// ToxStages returns one stage per downstream directory, in build order.
func (p *Pipeline) ToxStages() []Stage {
	cfg, r := p.cfg, p.runner

	var stages []Stage
	for _, dir := range ToxDirs(cfg) {
		stages = append(stages, Stage{
			Name: "tox " + dir,
			Run: func(ctx context.Context) error {
				return RunTox(ctx, r, cfg, dir)
			},
		})
	}
	return stages
}

// Stages returns the full pipeline in execution order.
func (p *Pipeline) Stages() []Stage {
	return append(p.BuildStages(), p.ToxStages()...)
}

// Run executes the full pipeline, aborting on the first stage error.
func (p *Pipeline) Run(ctx context.Context) error {
	p.log.Info().
		Str("cmake", p.cfg.CMake).
		Str("python", p.cfg.Python).
		Str("tox", p.cfg.Tox).
		Str("python_version", p.cfg.PythonVersion).
		Msg("resolved toolchain")

	return p.runStages(ctx, p.Stages())
}

// RunBuild executes only the native wheel stages.
func (p *Pipeline) RunBuild(ctx context.Context) error {
	return p.runStages(ctx, p.BuildStages())
}

// RunPackages executes only the downstream tox stages.
func (p *Pipeline) RunPackages(ctx context.Context) error {
	return p.runStages(ctx, p.ToxStages())
}

func (p *Pipeline) runStages(ctx context.Context, stages []Stage) error {
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.log.Info().Str("stage", stage.Name).Msg("begin")
		if err := stage.Run(ctx); err != nil {
			// The failing tool has already streamed its own output;
			// only the stage name is added here.
			p.log.Error().Str("stage", stage.Name).Err(err).Msg("failed")
			return fmt.Errorf("%s: %w", stage.Name, err)
		}
	}
	return nil
}
