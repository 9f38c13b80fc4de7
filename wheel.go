package dmbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
)

// BuildWheel runs the setuptools bdist_wheel build for the native
// controllers package, with the native package directory as the working
// directory. setup.py reads CMAKE_EXE from its environment to pick the
// cmake binary, so the resolved reference is passed through.
func BuildWheel(ctx context.Context, r *Runner, cfg *Config) error {
	dir := cfg.Layout.Path(cfg.Layout.NativeDir)
	env := map[string]string{EnvCMake: cfg.CMake}

	return r.RunEnv(ctx, dir, env, cfg.Python, "setup.py", "bdist_wheel")
}

// FindWheels globs for controllers wheels in the native dist directory.
// Results are sorted for deterministic ordering.
func FindWheels(cfg *Config) ([]string, error) {
	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)

	matches, err := filepath.Glob(filepath.Join(dist, WheelPattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// VerifyWheel checks the post-condition of the native build: at least
// one wheel matching WheelPattern in the dist directory.
func VerifyWheel(cfg *Config) ([]string, error) {
	wheels, err := FindWheels(cfg)
	if err != nil {
		return nil, err
	}
	if len(wheels) == 0 {
		return nil, fmt.Errorf("no %s under %s", WheelPattern, cfg.Layout.Path(cfg.Layout.NativeDistDir))
	}
	return wheels, nil
}
