package dmbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetDirClearsExistingContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stale.o"), []byte("stale"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep.o"), []byte("stale"), 0o644))

	require.NoError(t, ResetDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetDirCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never", "existed")

	require.NoError(t, ResetDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStageWheelsResetsAndCopies(t *testing.T) {
	root := t.TempDir()
	cfg := ResolveConfig(root, fakeEnv(nil))

	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)
	require.NoError(t, os.MkdirAll(dist, 0o755))
	wheel := filepath.Join(dist, "dm_robotics_controllers-0.9.0-cp310-cp310-linux_x86_64.whl")
	require.NoError(t, os.WriteFile(wheel, []byte("wheel-bytes"), 0o644))

	// Pre-populate the staging dir with a stale artifact from a prior run.
	staging := cfg.Layout.Path(cfg.Layout.StagingDir)
	require.NoError(t, os.MkdirAll(staging, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "old.whl"), []byte("old"), 0o644))

	require.NoError(t, StageWheels(cfg, []string{wheel}))

	entries, err := os.ReadDir(staging)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(wheel), entries[0].Name())

	staged, err := os.ReadFile(filepath.Join(staging, filepath.Base(wheel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("wheel-bytes"), staged)

	// Copy, not move: the original stays in the dist directory.
	_, err = os.Stat(wheel)
	assert.NoError(t, err)
}

func TestFindWheelsMatchesPatternOnly(t *testing.T) {
	root := t.TempDir()
	cfg := ResolveConfig(root, fakeEnv(nil))

	dist := cfg.Layout.Path(cfg.Layout.NativeDistDir)
	require.NoError(t, os.MkdirAll(dist, 0o755))
	for _, name := range []string{
		"dm_robotics_controllers-0.9.0-cp310-cp310-linux_x86_64.whl",
		"dm_robotics_controllers-0.8.0-cp39-cp39-linux_x86_64.whl",
		"some_other_package-1.0.whl",
		"dm_robotics_controllers.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dist, name), nil, 0o644))
	}

	wheels, err := FindWheels(cfg)
	require.NoError(t, err)
	require.Len(t, wheels, 2)
	assert.Equal(t, "dm_robotics_controllers-0.8.0-cp39-cp39-linux_x86_64.whl", filepath.Base(wheels[0]))
	assert.Equal(t, "dm_robotics_controllers-0.9.0-cp310-cp310-linux_x86_64.whl", filepath.Base(wheels[1]))
}

func TestVerifyWheelFailsOnEmptyDist(t *testing.T) {
	root := t.TempDir()
	cfg := ResolveConfig(root, fakeEnv(nil))
	require.NoError(t, os.MkdirAll(cfg.Layout.Path(cfg.Layout.NativeDistDir), 0o755))

	_, err := VerifyWheel(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), WheelPattern)
}
