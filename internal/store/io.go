package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// readFile reads the file at path into b; a missing file is not an error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
// On failure the previous contents of path are untouched.
func writeFile(path string, b []byte, mode os.FileMode) error {
	tmp, err := writeTemp(path, b, mode)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	return os.Rename(tmp, path)
}

// linkFile is swapped in tests to simulate filesystems without hard links.
var linkFile = os.Link

// writeFileExclusive is writeFile for files that must never be replaced: the
// fully written temp file is hard-linked into place, which fails with
// os.ErrExist when path is already taken. Where the filesystem cannot link or
// chmod (vfat, exFAT, some network mounts) it creates path with O_EXCL instead.
func writeFileExclusive(path string, b []byte, mode os.FileMode) error {
	tmp, err := writeTemp(path, b, mode)
	if err == nil {
		defer func() { _ = os.Remove(tmp) }()

		err = linkFile(tmp, path)
		if err == nil || errors.Is(err, os.ErrExist) {
			return err
		}
	}
	logrus.WithError(err).WithField("path", path).Debugln("Atomic link unavailable, creating file in place")
	return createExclusive(path, b, mode)
}

// createExclusive writes b to a new file at path. A partial file is removed
// on failure. The umask can only narrow mode.
func createExclusive(path string, b []byte, mode os.FileMode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	fail := func(err error) error {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}

	if _, err := f.Write(b); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

// writeTemp writes b to a sibling temp file with mode already applied and
// returns its name. The mode is set before any byte is written.
func writeTemp(path string, b []byte, mode os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}

	if err := f.Chmod(mode); err != nil {
		return fail(err)
	}
	if _, err := f.Write(b); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
