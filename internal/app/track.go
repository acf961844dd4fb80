package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"artifactory-inspection/internal/types"
)

func (s Service) Track(ctx context.Context, req TrackRequest) (TrackResult, error) {
	repo, err := repositoryFromRequest(req)
	if err != nil {
		return TrackResult{}, err
	}
	if err := s.provision(repo.Key); err != nil {
		return TrackResult{}, err
	}
	if err := s.Tracker.Track(ctx, repo); err != nil {
		return TrackResult{}, err
	}
	log.Debug().
		Str("repo", repo.Key).
		Str("package_type", string(repo.PackageType)).
		Str("kind", string(repo.Kind)).
		Msg("repository tracked for inspection")
	return TrackResult{Tracked: []types.Repository{repo}}, nil
}

// TrackCatalog tracks every repository listed in a catalog file. Nothing
// is tracked when the catalog fails to load.
func (s Service) TrackCatalog(ctx context.Context, req TrackCatalogRequest) (TrackResult, error) {
	path := strings.TrimSpace(req.CatalogPath)
	if path == "" {
		return TrackResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is required")
	}
	catalog, err := s.Catalog.LoadCatalog(path)
	if err != nil {
		return TrackResult{}, err
	}
	result := TrackResult{}
	for _, repo := range catalog.Repositories {
		if err := s.provision(repo.Key); err != nil {
			return result, err
		}
		if err := s.Tracker.Track(ctx, repo); err != nil {
			return result, err
		}
		result.Tracked = append(result.Tracked, repo)
	}
	return result, nil
}

func (s Service) Untrack(ctx context.Context, repoKey string) error {
	key := strings.TrimSpace(repoKey)
	if key == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is required")
	}
	return s.Tracker.Untrack(ctx, key)
}

func (s Service) Tracked(ctx context.Context) ([]types.Repository, error) {
	return s.Tracker.Tracked(ctx)
}

// provision creates the repository record in stores that keep their own.
func (s Service) provision(repoKey string) error {
	if s.Provisioner == nil {
		return nil
	}
	err := s.Provisioner.CreateRepository(repoKey)
	if err != nil && errbuilder.CodeOf(err) != errbuilder.CodeAlreadyExists {
		return err
	}
	return nil
}

func (s Service) trackedRepository(ctx context.Context, repoKey string) (types.Repository, error) {
	key := strings.TrimSpace(repoKey)
	if key == "" {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is required")
	}
	tracked, err := s.Tracker.Tracked(ctx)
	if err != nil {
		return types.Repository{}, err
	}
	for _, repo := range tracked {
		if repo.Key == key {
			return repo, nil
		}
	}
	return types.Repository{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("repository %s is not tracked", key))
}

func repositoryFromRequest(req TrackRequest) (types.Repository, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is required")
	}
	packageType := types.NormalizePackageType(req.PackageType)
	if packageType == "" {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package type is required")
	}
	kindValue := req.Kind
	if strings.TrimSpace(kindValue) == "" {
		kindValue = string(types.RepositoryKindLocal)
	}
	kind, ok := types.ParseRepositoryKind(kindValue)
	if !ok {
		return types.Repository{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown repository kind %q", req.Kind))
	}
	return types.Repository{Key: key, PackageType: packageType, Kind: kind}, nil
}
