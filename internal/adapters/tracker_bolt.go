package adapters

import (
	"context"
	"encoding/json"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"go.etcd.io/bbolt"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

type BoltRepositoryTracker struct {
	db *BoltDB
}

func NewBoltRepositoryTracker(db *BoltDB) BoltRepositoryTracker {
	return BoltRepositoryTracker{db: db}
}

func (t BoltRepositoryTracker) Track(ctx context.Context, repo types.Repository) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRepository(repo); err != nil {
		return err
	}
	data, err := json.Marshal(repo)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode tracked repository").
			WithCause(err)
	}
	if err := t.db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackedBucket)).Put([]byte(repo.Key), data)
	}); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to track repository").
			WithCause(err)
	}
	return nil
}

func (t BoltRepositoryTracker) Untrack(ctx context.Context, repoKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.db.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(trackedBucket))
		if bucket.Get([]byte(repoKey)) == nil {
			return repositoryNotTracked(repoKey)
		}
		return bucket.Delete([]byte(repoKey))
	})
}

func (t BoltRepositoryTracker) Tracked(ctx context.Context) ([]types.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var repos []types.Repository
	err := t.db.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trackedBucket)).ForEach(func(_, v []byte) error {
			var repo types.Repository
			if err := json.Unmarshal(v, &repo); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to decode tracked repository").
					WithCause(err)
			}
			repos = append(repos, repo)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortRepositories(repos)
	return repos, nil
}

var _ ports.RepositoryTrackerPort = BoltRepositoryTracker{}
