package dmbuild

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairWheelsNoOpWithoutAuditwheel(t *testing.T) {
	origLookPath := execLookPath
	defer func() { execLookPath = origLookPath }()

	execLookPath = func(name string) (string, error) {
		return "", errors.New("not found")
	}

	root := t.TempDir()
	cfg := ResolveConfig(root, fakeEnv(nil))

	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)
	require.NoError(t, os.MkdirAll(dist, 0o755))
	wheel := filepath.Join(dist, "dm_robotics_controllers-0.9.0-cp310-cp310-linux_x86_64.whl")
	require.NoError(t, os.WriteFile(wheel, []byte("wheel-bytes"), 0o644))

	require.NoError(t, RepairWheels(context.Background(), quietRunner(), cfg))

	// Untouched: repair absence is not an error and not a modification.
	data, err := os.ReadFile(wheel)
	require.NoError(t, err)
	assert.Equal(t, []byte("wheel-bytes"), data)
}

func TestRepairWheelsReplacesOriginals(t *testing.T) {
	origLookPath := execLookPath
	origCmdCtx := execCommandContext
	defer func() {
		execLookPath = origLookPath
		execCommandContext = origCmdCtx
	}()

	root := t.TempDir()
	cfg := ResolveConfig(root, fakeEnv(nil))

	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)
	require.NoError(t, os.MkdirAll(dist, 0o755))
	wheel := filepath.Join(dist, "dm_robotics_controllers-0.9.0-cp310-cp310-linux_x86_64.whl")
	require.NoError(t, os.WriteFile(wheel, []byte("wheel-bytes"), 0o644))

	// Stand-in for auditwheel: writes a retagged wheel into wheelhouse/.
	stub := writeScript(t, t.TempDir(), "auditwheel", `
mkdir -p wheelhouse
printf 'repaired-bytes' > "wheelhouse/dm_robotics_controllers-0.9.0-cp310-cp310-manylinux1_x86_64.whl"
`)

	execLookPath = func(name string) (string, error) {
		if name == auditwheelTool {
			return stub, nil
		}
		return exec.LookPath(name)
	}
	execCommandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if name == auditwheelTool {
			name = stub
		}
		return exec.CommandContext(ctx, name, args...)
	}

	require.NoError(t, RepairWheels(context.Background(), quietRunner(), cfg))

	// Original gone, repaired wheel moved up, wheelhouse removed.
	_, err := os.Stat(wheel)
	assert.True(t, os.IsNotExist(err))

	repaired := filepath.Join(dist, "dm_robotics_controllers-0.9.0-cp310-cp310-manylinux1_x86_64.whl")
	data, err := os.ReadFile(repaired)
	require.NoError(t, err)
	assert.Equal(t, []byte("repaired-bytes"), data)

	_, err = os.Stat(filepath.Join(dist, wheelhouseDir))
	assert.True(t, os.IsNotExist(err))
}
