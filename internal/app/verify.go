package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"artifactory-inspection/internal/types"
)

// ExpectedStatus is the status a tracked repository should carry after a
// pass whose setup work succeeds.
func (s Service) ExpectedStatus(packageType types.PackageType) types.InspectionStatus {
	if s.Registry.IsSupported(string(packageType)) {
		return types.InspectionStatusSuccess
	}
	return types.InspectionStatusFailure
}

// Verify checks that a tracked repository holds exactly one inspection
// status value and that it matches its package type's supportedness.
func (s Service) Verify(ctx context.Context, repoKey string) (VerifyResult, error) {
	repo, err := s.trackedRepository(ctx, repoKey)
	if err != nil {
		return VerifyResult{}, err
	}
	values, err := s.Store.GetProperty(ctx, repo.Key, types.PropertyInspectionStatus)
	if err != nil {
		return VerifyResult{}, err
	}
	result := VerifyResult{
		RepoKey:  repo.Key,
		Expected: s.ExpectedStatus(repo.PackageType),
		Values:   values,
	}
	if len(values) != 1 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("repository %s has %d inspection status values, want 1", repo.Key, len(values)))
	}
	got, ok := types.ParseInspectionStatus(values[0])
	if !ok {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("repository %s has unknown inspection status %q", repo.Key, values[0]))
	}
	if got != result.Expected {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("repository %s has inspection status %s, want %s", repo.Key, values[0], result.Expected))
	}
	return result, nil
}
