package app

import (
	"context"

	"artifactory-inspection/internal/types"
)

func (s Service) Status(ctx context.Context, repoKey string) (StatusResult, error) {
	repo, err := s.trackedRepository(ctx, repoKey)
	if err != nil {
		return StatusResult{}, err
	}
	properties, err := s.Store.GetProperties(ctx, repo.Key)
	if err != nil {
		return StatusResult{}, err
	}
	return StatusResult{
		Repository:     repo,
		Properties:     properties,
		LastInspection: properties.LastInspection(),
	}, nil
}

// PackageTypes lists the default package types with their supportedness.
func (s Service) PackageTypes() []PackageTypeInfo {
	defaults := types.DefaultPackageTypes()
	out := make([]PackageTypeInfo, 0, len(defaults))
	for _, packageType := range defaults {
		info := PackageTypeInfo{PackageType: packageType}
		if supported, ok := s.Registry.Lookup(string(packageType)); ok {
			info.Supported = true
			info.Forge = supported.Forge
			info.Patterns = supported.Patterns
		}
		out = append(out, info)
	}
	return out
}
