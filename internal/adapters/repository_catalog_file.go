package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/types"
)

// RepositoryCatalogFileAdapter reads repository records handed over by
// the provisioning side as a YAML document.
type RepositoryCatalogFileAdapter struct{}

func NewRepositoryCatalogFileAdapter() RepositoryCatalogFileAdapter {
	return RepositoryCatalogFileAdapter{}
}

func (a RepositoryCatalogFileAdapter) LoadCatalog(path string) (types.RepositoryCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return types.RepositoryCatalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.RepositoryCatalog{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("catalog file not found").
				WithCause(err)
		}
		return types.RepositoryCatalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read catalog file").
			WithCause(err)
	}
	var catalog types.RepositoryCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return types.RepositoryCatalog{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog file").
			WithCause(err)
	}
	seen := map[string]struct{}{}
	for i, repo := range catalog.Repositories {
		repo.Key = strings.TrimSpace(repo.Key)
		repo.PackageType = types.NormalizePackageType(string(repo.PackageType))
		if repo.Kind == "" {
			repo.Kind = types.RepositoryKindLocal
		}
		if err := validateRepository(repo); err != nil {
			return types.RepositoryCatalog{}, err
		}
		if _, ok := seen[repo.Key]; ok {
			return types.RepositoryCatalog{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate repository %s in catalog", repo.Key))
		}
		seen[repo.Key] = struct{}{}
		catalog.Repositories[i] = repo
	}
	return catalog, nil
}

var _ ports.RepositoryCatalogPort = RepositoryCatalogFileAdapter{}
