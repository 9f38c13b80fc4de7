// Package dmbuild drives the build of the dm_robotics native controller
// bindings wheel and the downstream Python packages that depend on it.
//
// The pipeline is strictly sequential: build the native extension wheel
// through its setuptools entry point, optionally repair it with auditwheel
// for portable redistribution, stage the final wheel into a shared dist
// directory, then run tox in each downstream package directory.
//
// # Basic Usage
//
// Resolve a configuration once and run the full pipeline:
//
//	cfg := dmbuild.ResolveConfig(root, os.Getenv)
//	runner := dmbuild.NewRunner(cfg.Env)
//
//	p := dmbuild.NewPipeline(cfg, runner, logger)
//	if err := p.Run(ctx); err != nil {
//	    os.Exit(1)
//	}
//
// # Failure Policy
//
// Every external command is fatal on non-zero exit, with two exceptions:
// the Python version-banner probe, whose failure falls back through an
// override chain to a default, and the auditwheel repair stage, which is
// skipped silently when auditwheel is not on PATH.
//
// All results of the pipeline are filesystem side effects; the only
// output of the driver itself is its log stream and exit status.
package dmbuild
