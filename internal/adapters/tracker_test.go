package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

func trackerFactories() map[string]func(t *testing.T) ports.RepositoryTrackerPort {
	return map[string]func(t *testing.T) ports.RepositoryTrackerPort{
		"memory": func(t *testing.T) ports.RepositoryTrackerPort {
			return NewMemoryRepositoryTracker()
		},
		"bolt": func(t *testing.T) ports.RepositoryTrackerPort {
			db, err := OpenBoltDB(filepath.Join(t.TempDir(), "inspection.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })
			return NewBoltRepositoryTracker(db)
		},
	}
}

func TestRepositoryTrackers(t *testing.T) {
	for name, factory := range trackerFactories() {
		t.Run(name, func(t *testing.T) {
			tracker := factory(t)
			ctx := t.Context()
			require.NoError(t, tracker.Track(ctx, types.Repository{Key: "npm-remote", PackageType: types.PackageTypeNpm, Kind: types.RepositoryKindRemote}))
			require.NoError(t, tracker.Track(ctx, types.Repository{Key: "foo/bar", PackageType: "foo/bar", Kind: types.RepositoryKindLocal}))
			require.NoError(t, tracker.Track(ctx, types.Repository{Key: "npm-remote", PackageType: types.PackageTypeNpm, Kind: types.RepositoryKindVirtual}))

			tracked, err := tracker.Tracked(ctx)
			require.NoError(t, err)
			want := []types.Repository{
				{Key: "foo/bar", PackageType: "foo/bar", Kind: types.RepositoryKindLocal},
				{Key: "npm-remote", PackageType: types.PackageTypeNpm, Kind: types.RepositoryKindVirtual},
			}
			if diff := cmp.Diff(want, tracked); diff != "" {
				t.Fatalf("unexpected tracked repositories (-want +got):\n%s", diff)
			}

			require.NoError(t, tracker.Untrack(ctx, "foo/bar"))
			err = tracker.Untrack(ctx, "foo/bar")
			if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected error code (-want +got):\n%s", diff)
			}

			tracked, err = tracker.Tracked(ctx)
			require.NoError(t, err)
			require.Len(t, tracked, 1)
		})
	}
}

func TestRepositoryTrackersRejectInvalidRecords(t *testing.T) {
	cases := map[string]types.Repository{
		"missing key":          {PackageType: types.PackageTypeMaven, Kind: types.RepositoryKindLocal},
		"missing package type": {Key: "maven-local", Kind: types.RepositoryKindLocal},
		"invalid kind":         {Key: "maven-local", PackageType: types.PackageTypeMaven, Kind: "mirror"},
	}
	for trackerName, factory := range trackerFactories() {
		for name, repo := range cases {
			t.Run(trackerName+"/"+name, func(t *testing.T) {
				err := factory(t).Track(t.Context(), repo)
				require.Error(t, err)
				if diff := cmp.Diff(errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err)); diff != "" {
					t.Fatalf("unexpected error code (-want +got):\n%s", diff)
				}
			})
		}
	}
}
