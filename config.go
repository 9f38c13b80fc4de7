package dmbuild

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Environment variables recognized by the driver. All are optional
// overrides; unset variables fall back to the defaults below.
const (
	EnvCMake         = "CMAKE_EXE"
	EnvPython        = "PYTHON_EXE"
	EnvTox           = "TOX_EXE"
	EnvPythonVersion = "PYTHON_VERSION"
)

// Default tool references used when no override is set. These are names
// resolved through PATH, not absolute paths.
const (
	DefaultCMake  = "cmake"
	DefaultPython = "python3"
	DefaultTox    = "tox"

	// DefaultPythonVersion is the last-resort version token used when the
	// runtime banner cannot be parsed and PYTHON_VERSION is unset.
	DefaultPythonVersion = "3.10"
)

// WheelPattern matches the native controllers wheel produced by the
// setuptools build in the native dist directory.
const WheelPattern = "dm_robotics_controllers*.whl"

// Layout describes the repository directories the pipeline reads and
// writes. Relative paths are resolved against Root.
type Layout struct {
	Root string `toml:"root"`

	// Native extension package.
	NativeDir      string `toml:"native_dir"`       // setup.py lives here
	NativeBuildDir string `toml:"native_build_dir"` // reset each run
	NativeDistDir  string `toml:"native_dist_dir"`  // wheel output

	// Shared distribution directory downstream tox configs read the
	// wheel from.
	StagingDir string `toml:"staging_dir"`

	// Downstream package directories, built and tested in order.
	Packages       []string `toml:"packages"`
	IntegrationDir string   `toml:"integration_dir"`
}

// DefaultLayout returns the canonical dm_robotics repository layout
// rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:           root,
		NativeDir:      "cpp",
		NativeBuildDir: "cpp/build",
		NativeDistDir:  "cpp/dist",
		StagingDir:     "py/dist",
		Packages: []string{
			"py/transformations",
			"py/geometry",
			"py/agentflow",
			"py/moma",
			"py/manipulation",
		},
		IntegrationDir: "py/integration_test",
	}
}

// Path resolves a layout-relative directory against the layout root.
func (l Layout) Path(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(l.Root, dir)
}

// LoadLayout reads a TOML layout file and overlays it on the defaults
// for root. A missing file is not an error; the defaults are returned.
func LoadLayout(root, path string) (Layout, error) {
	layout := DefaultLayout(root)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return layout, nil
	}
	if err != nil {
		return Layout{}, fmt.Errorf("layout load failed (%s): %w", path, err)
	}

	if err := toml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("layout parse failed (%s): %w", path, err)
	}
	if layout.Root == "" {
		layout.Root = root
	}
	return layout, nil
}

// Config carries everything the pipeline stages need. It is resolved
// once at startup and passed to each stage; stages hold no other state.
type Config struct {
	// Tool references, from environment overrides or defaults. Only the
	// tox reference is ever checked for executability (see EnsureTox);
	// the others fail at point of use.
	CMake  string
	Python string
	Tox    string

	// PythonVersion is the resolved version token (see ResolvePythonVersion).
	PythonVersion string

	Layout Layout

	// Env is an extra environment overlay applied to every subprocess,
	// on top of the ambient environment. The ambient environment is
	// always forwarded, so variables like CMAKE_BUILD_PARALLEL_LEVEL and
	// DM_ROBOTICS_USE_PREINSTALLED_LIBRARIES reach setup.py untouched.
	Env map[string]string
}

// ResolveConfig builds a Config from the given environment lookup
// function, using the default layout rooted at root.
//
// Tool references are resolved exactly once here; no stage consults the
// environment again. PythonVersion is left empty — callers resolve it
// with ResolvePythonVersion, which needs to run the Python binary.
func ResolveConfig(root string, getenv func(string) string) *Config {
	return &Config{
		CMake:  envOrDefault(getenv, EnvCMake, DefaultCMake),
		Python: envOrDefault(getenv, EnvPython, DefaultPython),
		Tox:    envOrDefault(getenv, EnvTox, DefaultTox),
		Layout: DefaultLayout(root),
	}
}

func envOrDefault(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
