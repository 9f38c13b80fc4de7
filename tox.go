package dmbuild

import "context"

// RunTox invokes tox with no arguments in dir (layout-relative). Each
// package's own tox.ini governs its build and test behavior, including
// where it finds the staged native wheel. PYTHON_VERSION is exported so
// the configs can select the matching interpreter.
func RunTox(ctx context.Context, r *Runner, cfg *Config, dir string) error {
	env := map[string]string{EnvPythonVersion: cfg.PythonVersion}
	return r.RunEnv(ctx, cfg.Layout.Path(dir), env, cfg.Tox)
}

// ToxDirs returns the downstream directories in build order: the
// package directories first, the integration tests last.
func ToxDirs(cfg *Config) []string {
	dirs := append([]string{}, cfg.Layout.Packages...)
	return append(dirs, cfg.Layout.IntegrationDir)
}
