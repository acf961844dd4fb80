package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"artifactory-inspection/internal/types"
)

var mavenSupport = types.SupportedPackageType{
	PackageType: types.PackageTypeMaven,
	Forge:       "maven",
	Patterns:    []string{"*.jar"},
}

func TestInspectionSetupAdapterFillsDefaults(t *testing.T) {
	store := NewMemoryPropertyStore()
	require.NoError(t, store.CreateRepository("maven-remote"))
	setup := NewInspectionSetupAdapter(store, "")

	metadata, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote", PackageType: types.PackageTypeMaven}, mavenSupport)
	require.NoError(t, err)

	want := types.InspectionMetadata{
		ProjectName:        "maven-remote",
		ProjectVersionName: DefaultProjectVersionName,
		Patterns:           []string{"*.jar"},
	}
	if diff := cmp.Diff(want, metadata); diff != "" {
		t.Fatalf("unexpected metadata (-want +got):\n%s", diff)
	}
	properties, err := store.GetProperties(t.Context(), "maven-remote")
	require.NoError(t, err)
	wantProperties := types.PropertySet{
		types.PropertyProjectName:        {"maven-remote"},
		types.PropertyProjectVersionName: {DefaultProjectVersionName},
	}
	if diff := cmp.Diff(wantProperties, properties); diff != "" {
		t.Fatalf("unexpected properties (-want +got):\n%s", diff)
	}
}

func TestInspectionSetupAdapterKeepsExistingProject(t *testing.T) {
	store := NewMemoryPropertyStore()
	require.NoError(t, store.CreateRepository("maven-remote"))
	require.NoError(t, store.SetProperty(t.Context(), "maven-remote", types.PropertyProjectName, []string{"shared-maven"}))
	setup := NewInspectionSetupAdapter(store, "mirror")

	metadata, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote", PackageType: types.PackageTypeMaven}, mavenSupport)
	require.NoError(t, err)
	require.Equal(t, "shared-maven", metadata.ProjectName)
	require.Equal(t, "mirror", metadata.ProjectVersionName)
}

func TestInspectionSetupAdapterRequiresPatterns(t *testing.T) {
	store := NewMemoryPropertyStore()
	require.NoError(t, store.CreateRepository("maven-remote"))
	setup := NewInspectionSetupAdapter(store, "")

	_, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote"}, types.SupportedPackageType{PackageType: types.PackageTypeMaven})
	require.Error(t, err)
	if diff := cmp.Diff(errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
	properties, err := store.GetProperties(t.Context(), "maven-remote")
	require.NoError(t, err)
	require.Empty(t, properties)
}

func TestInspectionSetupAdapterMissingRepository(t *testing.T) {
	setup := NewInspectionSetupAdapter(NewMemoryPropertyStore(), "")
	_, err := setup.Setup(t.Context(), types.Repository{Key: "absent"}, mavenSupport)
	if diff := cmp.Diff(errbuilder.CodeNotFound, errbuilder.CodeOf(err)); diff != "" {
		t.Fatalf("unexpected error code (-want +got):\n%s", diff)
	}
}

type stubArtifactSearch struct {
	artifacts []string
	err       error
}

func (s stubArtifactSearch) SearchArtifacts(context.Context, string, []string) ([]string, error) {
	return s.artifacts, s.err
}

func TestInspectionSetupAdapterCountsArtifacts(t *testing.T) {
	fake := newFakeArtifactory(t)
	fake.createRepository("maven-remote")
	fake.addArtifacts("maven-remote", "org/acme/a/1.0/a-1.0.jar", "org/acme/a/1.0/a-1.0.pom")
	store := NewArtifactoryPropertyStore(fake.server.URL, "", "secret", time.Second, 0, 0)
	setup := NewInspectionSetupAdapter(store, "")
	require.NotNil(t, setup.Search)

	metadata, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote", PackageType: types.PackageTypeMaven}, mavenSupport)
	require.NoError(t, err)
	require.True(t, metadata.ArtifactsSearched)
	require.Equal(t, 1, metadata.ArtifactCount)
	require.Equal(t, "maven-remote", metadata.ProjectName)
}

func TestInspectionSetupAdapterEmptyRepositoryStillSucceeds(t *testing.T) {
	store := NewMemoryPropertyStore()
	require.NoError(t, store.CreateRepository("maven-remote"))
	setup := NewInspectionSetupAdapter(store, "")
	require.Nil(t, setup.Search)
	setup.Search = stubArtifactSearch{}

	metadata, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote", PackageType: types.PackageTypeMaven}, mavenSupport)
	require.NoError(t, err)
	require.True(t, metadata.ArtifactsSearched)
	require.Zero(t, metadata.ArtifactCount)
}

func TestInspectionSetupAdapterSearchFailure(t *testing.T) {
	store := NewMemoryPropertyStore()
	require.NoError(t, store.CreateRepository("maven-remote"))
	setup := NewInspectionSetupAdapter(store, "")
	setup.Search = stubArtifactSearch{err: errors.New("search unavailable")}

	_, err := setup.Setup(t.Context(), types.Repository{Key: "maven-remote", PackageType: types.PackageTypeMaven}, mavenSupport)
	require.EqualError(t, err, "search unavailable")
}
