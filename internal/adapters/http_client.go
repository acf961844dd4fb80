package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

type httpRetryConfig struct {
	timeout   time.Duration
	retries   int
	baseDelay time.Duration
}

// attempts is the number of requests doRequest sends at most: the first
// one plus every retry.
func (c httpRetryConfig) attempts() int {
	return c.retries + 1
}

// normalizeHTTPConfig fills defaults. A retries value of zero disables
// retrying; only a negative value falls back to the default.
func normalizeHTTPConfig(timeout time.Duration, retries int, delay time.Duration) httpRetryConfig {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if retries < 0 {
		retries = defaultHTTPRetries
	}
	if delay <= 0 {
		delay = defaultHTTPRetryDelay
	}
	return httpRetryConfig{
		timeout:   timeout,
		retries:   retries,
		baseDelay: delay,
	}
}

type httpCredentials struct {
	user   string
	apiKey string
}

// doRequest retries transport errors, 5xx and 429 responses. Callers own
// the returned body.
func doRequest(ctx context.Context, client *http.Client, method string, url string, creds httpCredentials, cfg httpRetryConfig) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.attempts(); attempt++ {
		if ctx.Err() != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request canceled").
				WithCause(ctx.Err())
		}
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create request").
				WithCause(err)
		}
		if strings.TrimSpace(creds.apiKey) != "" {
			authUser := strings.TrimSpace(creds.user)
			if authUser == "" {
				authUser = "api"
			}
			req.SetBasicAuth(authUser, creds.apiKey)
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("request canceled").
					WithCause(ctx.Err())
			}
			lastErr = err
			if attempt < cfg.retries {
				sleepContext(ctx, httpRetryDelay(attempt, cfg))
				continue
			}
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("request failed").
				WithCause(err)
		}
		if (resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests) && attempt < cfg.retries {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			sleepContext(ctx, httpRetryDelay(attempt, cfg))
			continue
		}
		return resp, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("request failed").
		WithCause(lastErr)
}

func httpRetryDelay(attempt int, cfg httpRetryConfig) time.Duration {
	delay := cfg.baseDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

// sleepContext waits for d or until ctx is done and reports whether the
// full delay elapsed.
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
