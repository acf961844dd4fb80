package adapters

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"artifactory-inspection/internal/types"
)

func validateRepository(repo types.Repository) error {
	if strings.TrimSpace(repo.Key) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is empty")
	}
	if strings.TrimSpace(string(repo.PackageType)) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("repository %s has no package type", repo.Key))
	}
	if _, ok := types.ParseRepositoryKind(string(repo.Kind)); !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("repository %s has invalid kind %q", repo.Key, repo.Kind))
	}
	return nil
}

func repositoryNotTracked(repoKey string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("repository %s is not tracked", repoKey))
}
