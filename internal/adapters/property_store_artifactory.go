package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"artifactory-inspection/internal/ports"
	"artifactory-inspection/internal/shared"
	"artifactory-inspection/internal/types"
)

// ArtifactoryPropertyStore reads and writes repository-level properties
// through the Artifactory storage REST API.
type ArtifactoryPropertyStore struct {
	Endpoint   string
	Username   string
	APIKey     string
	Timeout    time.Duration
	// Retries counts extra attempts after the first request; zero sends
	// each request once.
	Retries    int
	RetryDelay time.Duration
	client     *http.Client
}

func NewArtifactoryPropertyStore(endpoint string, username string, apiKey string, timeout time.Duration, retries int, retryDelay time.Duration) ArtifactoryPropertyStore {
	cfg := normalizeHTTPConfig(timeout, retries, retryDelay)
	return ArtifactoryPropertyStore{
		Endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		Username:   username,
		APIKey:     apiKey,
		Timeout:    cfg.timeout,
		Retries:    cfg.retries,
		RetryDelay: cfg.baseDelay,
		client:     &http.Client{Timeout: cfg.timeout},
	}
}

type artifactoryPropertiesResponse struct {
	Properties map[string][]string `json:"properties"`
	URI        string              `json:"uri"`
}

func (s ArtifactoryPropertyStore) SetProperty(ctx context.Context, repoKey string, propertyKey string, values []string) error {
	return s.SetProperties(ctx, repoKey, types.PropertySet{propertyKey: values})
}

// SetProperties removes keys with empty value lists in one DELETE, then
// sends every non-empty key in one PUT so the values land together. The
// PUT goes last: a failed request leaves the stored status as it was.
func (s ArtifactoryPropertyStore) SetProperties(ctx context.Context, repoKey string, properties types.PropertySet) error {
	if err := validatePropertySet(properties); err != nil {
		return err
	}
	if err := s.ensureRepository(ctx, repoKey); err != nil {
		return err
	}
	var setEntries []string
	var removeKeys []string
	for _, key := range sortedPropertyKeys(properties) {
		values := properties[key]
		if len(values) == 0 {
			removeKeys = append(removeKeys, key)
			continue
		}
		escaped := make([]string, 0, len(values))
		for _, value := range values {
			escaped = append(escaped, escapePropertyValue(value))
		}
		setEntries = append(setEntries, escapePropertyValue(key)+"="+strings.Join(escaped, ","))
	}
	if len(removeKeys) > 0 {
		query := url.Values{}
		query.Set("properties", strings.Join(removeKeys, ","))
		query.Set("recursive", "0")
		if err := s.expectNoContent(ctx, http.MethodDelete, s.storageURL(repoKey)+"?"+query.Encode(), "failed to delete properties"); err != nil {
			return err
		}
	}
	if len(setEntries) > 0 {
		query := url.Values{}
		query.Set("properties", strings.Join(setEntries, ";"))
		query.Set("recursive", "0")
		if err := s.expectNoContent(ctx, http.MethodPut, s.storageURL(repoKey)+"?"+query.Encode(), "failed to set properties"); err != nil {
			return err
		}
	}
	return nil
}

func (s ArtifactoryPropertyStore) GetProperty(ctx context.Context, repoKey string, propertyKey string) ([]string, error) {
	properties, err := s.GetProperties(ctx, repoKey)
	if err != nil {
		return nil, err
	}
	values := properties[propertyKey]
	if values == nil {
		return []string{}, nil
	}
	return values, nil
}

func (s ArtifactoryPropertyStore) GetProperties(ctx context.Context, repoKey string) (types.PropertySet, error) {
	if err := s.ensureRepository(ctx, repoKey); err != nil {
		return nil, err
	}
	target := s.storageURL(repoKey) + "?properties"
	resp, err := doRequest(ctx, s.httpClient(), http.MethodGet, target, s.credentials(), s.retryConfig())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return types.PropertySet{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read properties").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, target, strings.TrimSpace(string(body))))
	}
	var payload artifactoryPropertiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode properties").
			WithCause(err)
	}
	properties := types.PropertySet{}
	for key, values := range payload.Properties {
		properties[key] = append([]string{}, values...)
	}
	return properties, nil
}

func (s ArtifactoryPropertyStore) ensureRepository(ctx context.Context, repoKey string) error {
	if strings.TrimSpace(s.Endpoint) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifactory endpoint is empty")
	}
	if strings.TrimSpace(repoKey) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository key is empty")
	}
	target := s.Endpoint + "/api/repositories/" + url.PathEscape(repoKey)
	resp, err := doRequest(ctx, s.httpClient(), http.MethodGet, target, s.credentials(), s.retryConfig())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest:
		return repositoryNotFound(repoKey)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("not authorized to access repository %s", repoKey)).
			WithCause(shared.HTTPStatusError(resp.StatusCode, target))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to look up repository").
			WithCause(shared.HTTPStatusError(resp.StatusCode, target))
	}
	return nil
}

func (s ArtifactoryPropertyStore) expectNoContent(ctx context.Context, method string, target string, msg string) error {
	resp, err := doRequest(ctx, s.httpClient(), method, target, s.credentials(), s.retryConfig())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, target, strings.TrimSpace(string(body))))
}

func (s ArtifactoryPropertyStore) storageURL(repoKey string) string {
	return s.Endpoint + "/api/storage/" + url.PathEscape(repoKey)
}

func (s ArtifactoryPropertyStore) httpClient() *http.Client {
	if s.client != nil {
		return s.client
	}
	return &http.Client{Timeout: s.retryConfig().timeout}
}

func (s ArtifactoryPropertyStore) credentials() httpCredentials {
	return httpCredentials{user: s.Username, apiKey: s.APIKey}
}

func (s ArtifactoryPropertyStore) retryConfig() httpRetryConfig {
	return normalizeHTTPConfig(s.Timeout, s.Retries, s.RetryDelay)
}

var propertyValueEscaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`|`, `\|`,
	`=`, `\=`,
	`;`, `\;`,
)

func escapePropertyValue(value string) string {
	return propertyValueEscaper.Replace(value)
}

func sortedPropertyKeys(properties types.PropertySet) []string {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.PropertyStorePort = ArtifactoryPropertyStore{}
