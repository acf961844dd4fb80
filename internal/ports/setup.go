package ports

import (
	"context"

	"artifactory-inspection/internal/types"
)

// InspectionSetupPort prepares a repository of a supported package type
// for scanning.
//
//go:generate mockgen -source=setup.go -destination=mocks/mock_setup.go -package=mocks
type InspectionSetupPort interface {
	Setup(ctx context.Context, repo types.Repository, supported types.SupportedPackageType) (types.InspectionMetadata, error)
}
