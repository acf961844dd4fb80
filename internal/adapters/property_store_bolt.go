package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"go.etcd.io/bbolt"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

// BoltPropertyStore persists properties in one nested bucket per
// repository. Each write runs in a single bolt transaction.
type BoltPropertyStore struct {
	db *BoltDB
}

func NewBoltPropertyStore(db *BoltDB) BoltPropertyStore {
	return BoltPropertyStore{db: db}
}

func (s BoltPropertyStore) CreateRepository(repoKey string) error {
	key := strings.TrimSpace(repoKey)
	if key == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is empty")
	}
	err := s.db.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.Bucket([]byte(repositoriesBucket)).CreateBucket([]byte(key))
		return err
	})
	if errors.Is(err, bbolt.ErrBucketExists) {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("repository %s already exists", key))
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create repository").
			WithCause(err)
	}
	return nil
}

func (s BoltPropertyStore) DeleteRepository(repoKey string) error {
	err := s.db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(repositoriesBucket)).DeleteBucket([]byte(repoKey))
	})
	if errors.Is(err, bbolt.ErrBucketNotFound) {
		return repositoryNotFound(repoKey)
	}
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete repository").
			WithCause(err)
	}
	return nil
}

func (s BoltPropertyStore) SetProperty(ctx context.Context, repoKey string, propertyKey string, values []string) error {
	return s.SetProperties(ctx, repoKey, types.PropertySet{propertyKey: values})
}

func (s BoltPropertyStore) SetProperties(ctx context.Context, repoKey string, properties types.PropertySet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePropertySet(properties); err != nil {
		return err
	}
	return s.db.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(repositoriesBucket)).Bucket([]byte(repoKey))
		if bucket == nil {
			return repositoryNotFound(repoKey)
		}
		for key, values := range properties {
			if len(values) == 0 {
				if err := bucket.Delete([]byte(key)); err != nil {
					return boltWriteError(err)
				}
				continue
			}
			data, err := json.Marshal(values)
			if err != nil {
				return boltWriteError(err)
			}
			if err := bucket.Put([]byte(key), data); err != nil {
				return boltWriteError(err)
			}
		}
		return nil
	})
}

func (s BoltPropertyStore) GetProperty(ctx context.Context, repoKey string, propertyKey string) ([]string, error) {
	properties, err := s.GetProperties(ctx, repoKey)
	if err != nil {
		return nil, err
	}
	values := properties[propertyKey]
	if values == nil {
		return []string{}, nil
	}
	return values, nil
}

func (s BoltPropertyStore) GetProperties(ctx context.Context, repoKey string) (types.PropertySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	properties := types.PropertySet{}
	err := s.db.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(repositoriesBucket)).Bucket([]byte(repoKey))
		if bucket == nil {
			return repositoryNotFound(repoKey)
		}
		return bucket.ForEach(func(k, v []byte) error {
			var values []string
			if err := json.Unmarshal(v, &values); err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("corrupt property %s on repository %s", k, repoKey)).
					WithCause(err)
			}
			properties[string(k)] = values
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func boltWriteError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write property").
		WithCause(err)
}

var _ ports.PropertyStorePort = BoltPropertyStore{}
