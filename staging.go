package dmbuild

import (
	"io"
	"os"
	"path/filepath"
)

// ResetDir forcibly removes the directory tree at path, then recreates
// it empty. Absence of the prior tree is not an error.
func ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	return os.MkdirAll(path, 0o755)
}

// StageWheels resets the shared staging directory and copies the given
// wheels into it. The originals stay in place; downstream tox configs
// resolve the wheel dependency from the staging directory.
func StageWheels(cfg *Config, wheels []string) error {
	dest := cfg.Layout.Path(cfg.Layout.StagingDir)
	if err := ResetDir(dest); err != nil {
		return err
	}

	for _, wheel := range wheels {
		if err := copyFile(wheel, filepath.Join(dest, filepath.Base(wheel))); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
