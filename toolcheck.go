package dmbuild

import (
	"context"
	"fmt"
	"strings"
)

// ToolRequirement describes an external tool the pipeline depends on.
//
// Required tools must be found on PATH before the pipeline starts;
// optional tools are probed but their absence is not an error.
type ToolRequirement struct {
	// Name is the tool binary name or path (e.g., "cmake", "python3").
	Name string

	// Alternatives are alternative binaries that satisfy the requirement.
	// If any alternative is found, the requirement is met.
	Alternatives []string

	// Optional indicates the tool is probed but not required.
	Optional bool

	// Purpose is a human-readable description of why the tool is needed,
	// included in missing-tool errors.
	Purpose string
}

// CheckToolAvailable checks whether a tool is available on the system
// PATH (or, for a path-like name, executable at that path).
func CheckToolAvailable(tool string) error {
	if _, err := execLookPath(tool); err != nil {
		return fmt.Errorf("%s not found in PATH", tool)
	}
	return nil
}

// CheckRequiredTools verifies all required tools are available,
// reporting every missing required tool in a single error.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string

	for _, req := range requirements {
		found := CheckToolAvailable(req.Name) == nil

		if !found {
			for _, alt := range req.Alternatives {
				if CheckToolAvailable(alt) == nil {
					found = true
					break
				}
			}
		}

		if !found && !req.Optional {
			if req.Purpose != "" {
				missing = append(missing, fmt.Sprintf("%s (%s)", req.Name, req.Purpose))
			} else {
				missing = append(missing, req.Name)
			}
		}
	}

	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return fmt.Errorf("%s not found in PATH", missing[0])
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// pipelineTools returns the external tools the pipeline needs up front.
// tox is handled separately by EnsureTox, and auditwheel is optional:
// without it the repair stage is skipped.
func pipelineTools(cfg *Config) []ToolRequirement {
	return []ToolRequirement{
		{Name: cfg.Python, Purpose: "Python runtime for setuptools and pip"},
		{Name: cfg.CMake, Purpose: "CMake build system, invoked by setup.py"},
		{Name: auditwheelTool, Optional: true, Purpose: "portable wheel repair"},
	}
}

// EnsureTox verifies the resolved tox reference is executable, and
// installs a pinned release through pip when it is not. Reruns with tox
// already present do not reinstall.
//
// tox 4 renames the config option the downstream package tox.ini files
// still use, so the pin stays below that major until the configs migrate.
func EnsureTox(ctx context.Context, r *Runner, cfg *Config) error {
	if _, err := execLookPath(cfg.Tox); err == nil {
		return nil
	}
	return r.Run(ctx, cfg.Layout.Root, cfg.Python, "-m", "pip", "install", "tox<4")
}
