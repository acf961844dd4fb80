package adapters

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

// MemoryPropertyStore keeps properties in process memory. Repositories must
// be created before properties can be written to them.
type MemoryPropertyStore struct {
	mu           sync.RWMutex
	repositories map[string]types.PropertySet
}

func NewMemoryPropertyStore() *MemoryPropertyStore {
	return &MemoryPropertyStore{repositories: map[string]types.PropertySet{}}
}

func (s *MemoryPropertyStore) CreateRepository(repoKey string) error {
	key := strings.TrimSpace(repoKey)
	if key == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.repositories[key]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("repository %s already exists", key))
	}
	s.repositories[key] = types.PropertySet{}
	return nil
}

func (s *MemoryPropertyStore) DeleteRepository(repoKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.repositories[repoKey]; !ok {
		return repositoryNotFound(repoKey)
	}
	delete(s.repositories, repoKey)
	return nil
}

func (s *MemoryPropertyStore) SetProperty(ctx context.Context, repoKey string, propertyKey string, values []string) error {
	return s.SetProperties(ctx, repoKey, types.PropertySet{propertyKey: values})
}

func (s *MemoryPropertyStore) SetProperties(ctx context.Context, repoKey string, properties types.PropertySet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validatePropertySet(properties); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.repositories[repoKey]
	if !ok {
		return repositoryNotFound(repoKey)
	}
	next := current.Clone()
	for key, values := range properties {
		if len(values) == 0 {
			delete(next, key)
			continue
		}
		next[key] = append([]string{}, values...)
	}
	s.repositories[repoKey] = next
	return nil
}

func (s *MemoryPropertyStore) GetProperty(ctx context.Context, repoKey string, propertyKey string) ([]string, error) {
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

func (s *MemoryPropertyStore) GetProperties(ctx context.Context, repoKey string) (types.PropertySet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, ok := s.repositories[repoKey]
	if !ok {
		return nil, repositoryNotFound(repoKey)
	}
	return current.Clone(), nil
}

func repositoryNotFound(repoKey string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("repository %s not found", repoKey))
}

func validatePropertySet(properties types.PropertySet) error {
	if len(properties) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no properties to write")
	}
	for key := range properties {
		if strings.TrimSpace(key) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("property key is empty")
		}
	}
	return nil
}

var _ ports.PropertyStorePort = (*MemoryPropertyStore)(nil)
