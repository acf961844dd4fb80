// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"artifactory-inspection/internal/adapters"
	"artifactory-inspection/internal/types"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// OpenBoltDB opens a state database in a per-test directory and closes it
// when the test ends.
func OpenBoltDB(t *testing.T) *adapters.BoltDB {
	t.Helper()
	db, err := adapters.OpenBoltDB(filepath.Join(t.TempDir(), "inspection.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// RemoteRepositoryKey names the remote repository created for a package
// type, e.g. "maven-remote" or "foo-bar-remote".
func RemoteRepositoryKey(packageType types.PackageType) string {
	key := []byte(string(packageType))
	for i, c := range key {
		if c == '/' || c == '.' || c == ' ' {
			key[i] = '-'
		}
	}
	return fmt.Sprintf("%s-remote", key)
}
