package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"artifactory-inspection/internal/adapters"
	"artifactory-inspection/internal/types"
)

func newTestService(t *testing.T, repoKeys ...string) (Service, *adapters.MemoryPropertyStore) {
	t.Helper()
	store := adapters.NewMemoryPropertyStore()
	for _, key := range repoKeys {
		require.NoError(t, store.CreateRepository(key))
	}
	return NewService(store, adapters.NewMemoryRepositoryTracker(), ServiceOptions{}), store
}

func TestTrackValidatesRequest(t *testing.T) {
	tests := []struct {
		name string
		req  TrackRequest
	}{
		{name: "missing key", req: TrackRequest{PackageType: "maven"}},
		{name: "missing package type", req: TrackRequest{Key: "maven-remote"}},
		{name: "bad kind", req: TrackRequest{Key: "maven-remote", PackageType: "maven", Kind: "cloud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)
			_, err := service.Track(t.Context(), tt.req)
			require.Error(t, err)
			if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrackNormalizesRepository(t *testing.T) {
	service, _ := newTestService(t)
	result, err := service.Track(t.Context(), TrackRequest{Key: " maven-remote ", PackageType: "Maven", Kind: "REMOTE"})
	require.NoError(t, err)

	want := []types.Repository{{Key: "maven-remote", PackageType: types.PackageTypeMaven, Kind: types.RepositoryKindRemote}}
	if diff := cmp.Diff(want, result.Tracked); diff != "" {
		t.Fatalf("unexpected tracked repository (-want +got):\n%s", diff)
	}
	tracked, err := service.Tracked(t.Context())
	require.NoError(t, err)
	if diff := cmp.Diff(want, tracked); diff != "" {
		t.Fatalf("unexpected tracked set (-want +got):\n%s", diff)
	}
}

func TestRunInitializationScenarios(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		packageType string
		want        []string
	}{
		{name: "unsupported package type", key: "foobar-remote", packageType: "foo/bar", want: []string{"FAILURE"}},
		{name: "supported package type", key: "maven-remote", packageType: "maven", want: []string{"SUCCESS"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestService(t, tt.key)
			_, err := service.Track(t.Context(), TrackRequest{Key: tt.key, PackageType: tt.packageType, Kind: "remote"})
			require.NoError(t, err)

			result, err := service.RunInitialization(t.Context())
			require.NoError(t, err)
			if diff := cmp.Diff(1, result.Summary.Total); diff != "" {
				t.Fatalf("unexpected outcome count (-want +got):\n%s", diff)
			}

			values, err := store.GetProperty(t.Context(), tt.key, "blackduck.inspection.status")
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, values); diff != "" {
				t.Fatalf("unexpected inspection status (-want +got):\n%s", diff)
			}

			verified, err := service.Verify(t.Context(), tt.key)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, verified.Values); diff != "" {
				t.Fatalf("unexpected verified values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunInitializationTwiceKeepsOneValue(t *testing.T) {
	service, store := newTestService(t, "npm-remote")
	_, err := service.Track(t.Context(), TrackRequest{Key: "npm-remote", PackageType: "npm", Kind: "remote"})
	require.NoError(t, err)

	for run := 0; run < 2; run++ {
		_, err := service.RunInitialization(t.Context())
		require.NoError(t, err)
	}
	values, err := store.GetProperty(t.Context(), "npm-remote", types.PropertyInspectionStatus)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"SUCCESS"}, values); diff != "" {
		t.Fatalf("unexpected inspection status (-want +got):\n%s", diff)
	}
}

func TestRunInitializationDisabled(t *testing.T) {
	store := adapters.NewMemoryPropertyStore()
	service := NewService(store, adapters.NewMemoryRepositoryTracker(), ServiceOptions{Disabled: true})

	_, err := service.RunInitialization(t.Context())
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestVerifyBeforeInitialization(t *testing.T) {
	service, _ := newTestService(t, "pypi-remote")
	_, err := service.Track(t.Context(), TrackRequest{Key: "pypi-remote", PackageType: "pypi"})
	require.NoError(t, err)

	result, err := service.Verify(t.Context(), "pypi-remote")
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
	require.Empty(t, result.Values)
}

func TestVerifyUntrackedRepository(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Verify(t.Context(), "nope")
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestUntrack(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Track(t.Context(), TrackRequest{Key: "go-remote", PackageType: "go"})
	require.NoError(t, err)
	require.NoError(t, service.Untrack(t.Context(), "go-remote"))

	err = service.Untrack(t.Context(), "go-remote")
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

func TestTrackCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "repositories.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`repositories:
  - key: maven-remote
    package_type: maven
    kind: remote
  - key: docker-local
    package_type: Docker
`), 0644))

	service, store := newTestService(t, "maven-remote", "docker-local")
	result, err := service.TrackCatalog(t.Context(), TrackCatalogRequest{CatalogPath: catalogPath})
	require.NoError(t, err)
	require.Len(t, result.Tracked, 2)

	_, err = service.RunInitialization(t.Context())
	require.NoError(t, err)

	status, err := service.Status(t.Context(), "docker-local")
	require.NoError(t, err)
	if diff := cmp.Diff(types.RepositoryKindLocal, status.Repository.Kind); diff != "" {
		t.Fatalf("unexpected default kind (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"FAILURE"}, status.Properties[types.PropertyInspectionStatus]); diff != "" {
		t.Fatalf("unexpected status (-want +got):\n%s", diff)
	}
	values, err := store.GetProperty(t.Context(), "maven-remote", types.PropertyInspectionStatus)
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"SUCCESS"}, values); diff != "" {
		t.Fatalf("unexpected status (-want +got):\n%s", diff)
	}
}

func TestPackageTypes(t *testing.T) {
	service, _ := newTestService(t)
	infos := service.PackageTypes()
	require.Len(t, infos, len(types.DefaultPackageTypes()))

	supported := 0
	for _, info := range infos {
		if info.Supported {
			supported++
			require.NotEmpty(t, info.Patterns, "supported type %s has no patterns", info.PackageType)
		}
	}
	if diff := cmp.Diff(12, supported); diff != "" {
		t.Fatalf("unexpected supported count (-want +got):\n%s", diff)
	}
}

func TestTrackProvisionsLocalStore(t *testing.T) {
	service, store := newTestService(t)
	require.NotNil(t, service.Provisioner)
	_, err := service.Track(t.Context(), TrackRequest{Key: "conda-remote", PackageType: "conda"})
	require.NoError(t, err)

	properties, err := store.GetProperties(t.Context(), "conda-remote")
	require.NoError(t, err)
	require.Empty(t, properties)

	_, err = service.Track(t.Context(), TrackRequest{Key: "conda-remote", PackageType: "conda", Kind: "virtual"})
	require.NoError(t, err, "re-tracking an existing repository is not an error")
}

func TestStatusReportsLastInspection(t *testing.T) {
	service, _ := newTestService(t)
	_, err := service.Track(t.Context(), TrackRequest{Key: "gems-remote", PackageType: "gems", Kind: "remote"})
	require.NoError(t, err)

	status, err := service.Status(t.Context(), "gems-remote")
	require.NoError(t, err)
	require.True(t, status.LastInspection.IsZero())

	_, err = service.RunInitialization(t.Context())
	require.NoError(t, err)
	status, err = service.Status(t.Context(), "gems-remote")
	require.NoError(t, err)
	require.False(t, status.LastInspection.IsZero())
	require.Equal(t, time.UTC, status.LastInspection.Location())
}

func TestVerifyRejectsUnknownStatus(t *testing.T) {
	service, store := newTestService(t)
	_, err := service.Track(t.Context(), TrackRequest{Key: "nuget-remote", PackageType: "nuget"})
	require.NoError(t, err)
	require.NoError(t, store.SetProperty(t.Context(), "nuget-remote", types.PropertyInspectionStatus, []string{"PENDING"}))

	result, err := service.Verify(t.Context(), "nuget-remote")
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
	require.Equal(t, types.InspectionStatusSuccess, result.Expected)
}
