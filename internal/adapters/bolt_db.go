package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"go.etcd.io/bbolt"
)

const (
	repositoriesBucket = "repositories"
	trackedBucket      = "tracked"
)

// BoltDB is the on-disk state shared by the bolt property store and the
// bolt repository tracker.
type BoltDB struct {
	db *bbolt.DB
}

// OpenBoltDB opens (or creates) the database file and ensures the top
// level buckets exist.
func OpenBoltDB(path string) (*BoltDB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create database directory").
			WithCause(err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open database").
			WithCause(err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{repositoriesBucket, trackedBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to initialize database buckets").
			WithCause(err)
	}
	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}
