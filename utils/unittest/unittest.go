package unittest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Logger returns a no-op logger for tests; set the QUILT_TEST_LOG
// environment variable to get debug output.
func Logger() zerolog.Logger {
	if os.Getenv("QUILT_TEST_LOG") != "" {
		return zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel)
	}
	return zerolog.Nop()
}

// RunWithBadgerDB creates a temporary badger database, runs the given
// function with it, and tears everything down afterwards.
func RunWithBadgerDB(t *testing.T, f func(*badger.DB)) {
	RunWithTempDir(t, func(dir string) {
		db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
		require.NoError(t, err)
		defer func() {
			require.NoError(t, db.Close())
		}()
		f(db)
	})
}

// BadgerDB opens a badger database in the given directory and closes it
// when the test finishes. Useful when a test needs several databases side
// by side.
func BadgerDB(t *testing.T, dir string) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// RunWithTempDir runs the given function with a temporary directory that
// is removed afterwards.
func RunWithTempDir(t *testing.T, f func(string)) {
	dir, err := ioutil.TempDir("", "quilt-unittest")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.RemoveAll(dir))
	}()
	f(dir)
}
