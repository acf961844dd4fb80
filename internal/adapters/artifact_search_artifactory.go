package adapters

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/shared"
)

type artifactorySearchResponse struct {
	Results []struct {
		URI string `json:"uri"`
	} `json:"results"`
}

// SearchArtifacts runs one quick search per pattern, scoped to repoKey, and
// returns the sorted union of the artifact URIs found.
func (s ArtifactoryPropertyStore) SearchArtifacts(ctx context.Context, repoKey string, patterns []string) ([]string, error) {
	if err := s.ensureRepository(ctx, repoKey); err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		uris, err := s.searchPattern(ctx, repoKey, pattern)
		if err != nil {
			return nil, err
		}
		for _, uri := range uris {
			seen[uri] = struct{}{}
		}
	}
	artifacts := make([]string, 0, len(seen))
	for uri := range seen {
		artifacts = append(artifacts, uri)
	}
	sort.Strings(artifacts)
	return artifacts, nil
}

func (s ArtifactoryPropertyStore) searchPattern(ctx context.Context, repoKey string, pattern string) ([]string, error) {
	query := url.Values{}
	query.Set("name", pattern)
	query.Set("repos", repoKey)
	target := s.Endpoint + "/api/search/artifact?" + query.Encode()
	resp, err := doRequest(ctx, s.httpClient(), http.MethodGet, target, s.credentials(), s.retryConfig())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	// Some Artifactory versions answer an empty search with 404.
	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to search artifacts").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, target, strings.TrimSpace(string(body))))
	}
	var payload artifactorySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode artifact search").
			WithCause(err)
	}
	uris := make([]string, 0, len(payload.Results))
	for _, result := range payload.Results {
		if result.URI != "" {
			uris = append(uris, result.URI)
		}
	}
	return uris, nil
}

var _ ports.ArtifactSearchPort = ArtifactoryPropertyStore{}
