package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

const DefaultProjectVersionName = "artifactory"

// InspectionSetupAdapter establishes the project metadata a repository
// needs before its artifacts can be scanned. Existing project properties
// are kept; missing ones are filled with defaults. When Search is set the
// artifacts matching the package type patterns are counted.
type InspectionSetupAdapter struct {
	Store              ports.PropertyStorePort
	Search             ports.ArtifactSearchPort
	ProjectVersionName string
}

// NewInspectionSetupAdapter uses store for artifact search too when it
// implements ports.ArtifactSearchPort.
func NewInspectionSetupAdapter(store ports.PropertyStorePort, projectVersionName string) InspectionSetupAdapter {
	versionName := strings.TrimSpace(projectVersionName)
	if versionName == "" {
		versionName = DefaultProjectVersionName
	}
	search, _ := store.(ports.ArtifactSearchPort)
	return InspectionSetupAdapter{
		Store:              store,
		Search:             search,
		ProjectVersionName: versionName,
	}
}

func (a InspectionSetupAdapter) Setup(ctx context.Context, repo types.Repository, supported types.SupportedPackageType) (types.InspectionMetadata, error) {
	if a.Store == nil {
		return types.InspectionMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("inspection setup requires a property store")
	}
	if len(supported.Patterns) == 0 {
		return types.InspectionMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no artifact patterns configured for package type %s", supported.PackageType))
	}
	existing, err := a.Store.GetProperties(ctx, repo.Key)
	if err != nil {
		return types.InspectionMetadata{}, err
	}
	metadata := types.InspectionMetadata{
		ProjectName:        existing.First(types.PropertyProjectName),
		ProjectVersionName: existing.First(types.PropertyProjectVersionName),
		Patterns:           append([]string{}, supported.Patterns...),
	}
	missing := types.PropertySet{}
	if metadata.ProjectName == "" {
		metadata.ProjectName = repo.Key
		missing[types.PropertyProjectName] = []string{metadata.ProjectName}
	}
	if metadata.ProjectVersionName == "" {
		metadata.ProjectVersionName = a.ProjectVersionName
		missing[types.PropertyProjectVersionName] = []string{metadata.ProjectVersionName}
	}
	if len(missing) > 0 {
		if err := a.Store.SetProperties(ctx, repo.Key, missing); err != nil {
			return types.InspectionMetadata{}, err
		}
	}
	if a.Search != nil {
		artifacts, err := a.Search.SearchArtifacts(ctx, repo.Key, metadata.Patterns)
		if err != nil {
			return types.InspectionMetadata{}, err
		}
		metadata.ArtifactsSearched = true
		metadata.ArtifactCount = len(artifacts)
		if metadata.ArtifactCount == 0 {
			log.Warn().
				Str("repo", repo.Key).
				Strs("patterns", metadata.Patterns).
				Msg("no artifacts identified because no supported patterns were found")
		}
	}
	log.Debug().
		Str("repo", repo.Key).
		Str("project", metadata.ProjectName).
		Str("version", metadata.ProjectVersionName).
		Strs("patterns", metadata.Patterns).
		Int("artifacts", metadata.ArtifactCount).
		Msg("inspection metadata established")
	return metadata, nil
}

var _ ports.InspectionSetupPort = InspectionSetupAdapter{}
