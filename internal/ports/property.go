package ports

import (
	"context"

	"artifactory-inspection/internal/types"
)

// PropertyStorePort stores list-valued properties per repository. Writes
// replace the values of the given keys; operations on an unknown
// repository fail with a not-found error.
type PropertyStorePort interface {
	SetProperty(ctx context.Context, repoKey string, propertyKey string, values []string) error
	SetProperties(ctx context.Context, repoKey string, properties types.PropertySet) error
	GetProperty(ctx context.Context, repoKey string, propertyKey string) ([]string, error)
	GetProperties(ctx context.Context, repoKey string) (types.PropertySet, error)
}

// RepositoryProvisionerPort is implemented by stores that keep their own
// repository records. Artifactory owns its repositories and does not
// implement it.
type RepositoryProvisionerPort interface {
	CreateRepository(repoKey string) error
}

// ArtifactSearchPort finds artifacts in a repository whose file names match
// any of the given globs. Implementations return each artifact once.
type ArtifactSearchPort interface {
	SearchArtifacts(ctx context.Context, repoKey string, patterns []string) ([]string, error)
}
