package adapters

import (
	"context"
	"sort"
	"sync"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

type MemoryRepositoryTracker struct {
	mu      sync.RWMutex
	tracked map[string]types.Repository
}

func NewMemoryRepositoryTracker() *MemoryRepositoryTracker {
	return &MemoryRepositoryTracker{tracked: map[string]types.Repository{}}
}

func (t *MemoryRepositoryTracker) Track(ctx context.Context, repo types.Repository) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRepository(repo); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tracked[repo.Key] = repo
	return nil
}

func (t *MemoryRepositoryTracker) Untrack(ctx context.Context, repoKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tracked[repoKey]; !ok {
		return repositoryNotTracked(repoKey)
	}
	delete(t.tracked, repoKey)
	return nil
}

func (t *MemoryRepositoryTracker) Tracked(ctx context.Context) ([]types.Repository, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	repos := make([]types.Repository, 0, len(t.tracked))
	for _, repo := range t.tracked {
		repos = append(repos, repo)
	}
	sortRepositories(repos)
	return repos, nil
}

func sortRepositories(repos []types.Repository) {
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].Key < repos[j].Key
	})
}

var _ ports.RepositoryTrackerPort = (*MemoryRepositoryTracker)(nil)
