package ports

import (
	"context"

	"artifactory-inspection/internal/types"
)

type RepositoryTrackerPort interface {
	Track(ctx context.Context, repo types.Repository) error
	Untrack(ctx context.Context, repoKey string) error
	Tracked(ctx context.Context) ([]types.Repository, error)
}

type RepositoryCatalogPort interface {
	LoadCatalog(path string) (types.RepositoryCatalog, error)
}
