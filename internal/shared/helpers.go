// Package shared provides small helpers used by more than one adapter.
package shared

import (
	"fmt"
	"strings"
)

const maxErrorBody = 512

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// HTTPStatusErrorWithBody is HTTPStatusError plus the response body,
// truncated so HTML error pages do not flood the log.
func HTTPStatusErrorWithBody(status int, url string, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return HTTPStatusError(status, url)
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "..."
	}
	return fmt.Errorf("status=%d url=%s response=%s", status, url, body)
}
