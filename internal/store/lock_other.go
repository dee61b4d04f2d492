//go:build !unix

package store

import "github.com/sirupsen/logrus"

// lockFile is a no-op where flock is unavailable; concurrent writers are
// not protected on these platforms.
func lockFile(path string) (func() error, error) {
	logrus.WithField("path", path).Debugln("Ledger locking unsupported on this platform")
	return func() error { return nil }, nil
}
