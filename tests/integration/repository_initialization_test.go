package integration

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"artifactory-inspection/internal/adapters"
	"artifactory-inspection/internal/app"
	"artifactory-inspection/internal/policies"
	"artifactory-inspection/internal/types"
	"artifactory-inspection/tests/testutil"
)

func TestEmptyRepositoryInitialization(t *testing.T) {
	registry := policies.NewPackageTypeRegistry(nil)
	for _, packageType := range types.DefaultPackageTypes() {
		t.Run(string(packageType), func(t *testing.T) {
			ctx := t.Context()
			db := testutil.OpenBoltDB(t)
			store := adapters.NewBoltPropertyStore(db)
			service := app.NewService(store, adapters.NewBoltRepositoryTracker(db), app.ServiceOptions{})

			key := testutil.RemoteRepositoryKey(packageType)
			_, err := service.Track(ctx, app.TrackRequest{Key: key, PackageType: string(packageType), Kind: "remote"})
			require.NoError(t, err)

			result, err := service.RunInitialization(ctx)
			require.NoError(t, err)
			require.Equal(t, 1, result.Summary.Total)

			statuses, err := store.GetProperty(ctx, key, types.PropertyInspectionStatus)
			require.NoError(t, err)
			want := []string{string(types.InspectionStatusFailure)}
			if registry.IsSupported(string(packageType)) {
				want = []string{string(types.InspectionStatusSuccess)}
			}
			if diff := cmp.Diff(want, statuses); diff != "" {
				t.Fatalf("unexpected inspection status (-want +got):\n%s", diff)
			}

			_, err = service.Verify(ctx, key)
			require.NoError(t, err)

			require.NoError(t, service.Untrack(ctx, key))
			require.NoError(t, store.DeleteRepository(key))
		})
	}
}

func TestInitializationOfMixedTrackedSet(t *testing.T) {
	ctx := t.Context()
	db := testutil.OpenBoltDB(t)
	store := adapters.NewBoltPropertyStore(db)
	service := app.NewService(store, adapters.NewBoltRepositoryTracker(db), app.ServiceOptions{Workers: 3})

	requests := []app.TrackRequest{
		{Key: "foobar-remote", PackageType: "foo/bar", Kind: "remote"},
		{Key: "maven-remote", PackageType: "maven", Kind: "remote"},
		{Key: "docker-local", PackageType: "docker"},
		{Key: "pypi-remote", PackageType: "PyPI", Kind: "remote"},
	}
	for _, req := range requests {
		_, err := service.Track(ctx, req)
		require.NoError(t, err)
	}

	for pass := 0; pass < 2; pass++ {
		result, err := service.RunInitialization(ctx)
		require.NoError(t, err)
		want := types.PassSummary{Total: 4, Succeeded: 2, Failed: 2, Unsupported: 2}
		if diff := cmp.Diff(want, result.Summary); diff != "" {
			t.Fatalf("unexpected summary on pass %d (-want +got):\n%s", pass, diff)
		}
	}

	got := map[string][]string{}
	for _, req := range requests {
		values, err := store.GetProperty(ctx, req.Key, types.PropertyInspectionStatus)
		require.NoError(t, err)
		got[req.Key] = values
	}
	want := map[string][]string{
		"foobar-remote": {"FAILURE"},
		"maven-remote":  {"SUCCESS"},
		"docker-local":  {"FAILURE"},
		"pypi-remote":   {"SUCCESS"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected statuses (-want +got):\n%s", diff)
	}
}
