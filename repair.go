package dmbuild

import (
	"context"
	"os"
	"path/filepath"
)

const (
	auditwheelTool = "auditwheel"

	// auditwheel writes repaired wheels into this subdirectory of the
	// working directory.
	wheelhouseDir = "wheelhouse"
)

// RepairWheels rewrites the built wheels for portable redistribution:
// auditwheel retags the platform and bundles native library dependencies
// into the wheel. The repaired wheels replace the originals in the dist
// directory.
//
// When auditwheel is not on PATH this is a silent no-op and the
// unrepaired wheels are distributed as-is.
func RepairWheels(ctx context.Context, r *Runner, cfg *Config) error {
	if _, err := execLookPath(auditwheelTool); err != nil {
		return nil
	}

	wheels, err := FindWheels(cfg)
	if err != nil {
		return err
	}

	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)
	for _, wheel := range wheels {
		if err := r.Run(ctx, dist, auditwheelTool, "repair", filepath.Base(wheel)); err != nil {
			return err
		}
	}

	// Replace the pre-repair wheels with the wheelhouse outputs.
	for _, wheel := range wheels {
		if err := os.Remove(wheel); err != nil {
			return err
		}
	}

	house := filepath.Join(dist, wheelhouseDir)
	entries, err := os.ReadDir(house)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Rename(filepath.Join(house, entry.Name()), filepath.Join(dist, entry.Name())); err != nil {
			return err
		}
	}

	return os.Remove(house)
}
