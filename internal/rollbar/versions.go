// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rollbar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gateerrors "github.com/sirseerhq/buildgate/internal/errors"
	"go.uber.org/zap"
)

// accessTokenHeader carries the project access token on every request.
const accessTokenHeader = "X-Rollbar-Access-Token"

// DefaultRequestTimeout bounds a single Versions API request. The retry
// budget is counted in attempts, so the timeout does not change how many
// attempts are made.
const DefaultRequestTimeout = 30 * time.Second

// StatsClient implements the Client interface against the Rollbar Versions
// API over HTTP. Each call makes up to retry.MaxAttempts requests; an attempt
// counts as successful only when it yields an HTTP 200 response. Connection
// failures and non-200 responses both consume an attempt and are followed by
// the fixed retry delay.
type StatsClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
	retry      *RetryConfig
	sleep      SleepFunc
	log        *zap.Logger
}

// NewStatsClient creates a Versions API client for the given endpoint and
// access token. A nil retry config selects DefaultRetryConfig. A nil logger
// disables diagnostics.
func NewStatsClient(endpoint, token string, retry *RetryConfig, logger *zap.Logger) *StatsClient {
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
		retry: retry,
		sleep: sleepWithContext,
		log:   logger,
	}
}

// SetTimeout overrides the per-request timeout.
func (c *StatsClient) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// VersionStats implements the Client interface. It fetches the raw Versions
// API body for codeVersion in environment, retrying on connection errors and
// non-200 responses. After the retry budget is exhausted it fails with an
// error wrapping gateerrors.ErrRequestFailed: "no response" when the final
// attempt never produced a response, otherwise naming the final status code.
func (c *StatsClient) VersionStats(ctx context.Context, codeVersion, environment string) ([]byte, error) {
	statsURL := fmt.Sprintf("%s/api/1/versions/%s", c.endpoint, url.PathEscape(codeVersion))

	var (
		lastStatus   int
		haveResponse bool
	)

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		status, body, err := c.doRequest(ctx, statsURL, environment)

		haveResponse = err == nil
		lastStatus = status

		if err != nil {
			c.log.Warn("versions api request failed",
				zap.String("url", statsURL),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.retry.MaxAttempts),
				zap.Error(err))
		} else {
			// Surface the raw exchange on every attempt for pipeline debugging.
			c.log.Info("versions api response",
				zap.String("url", statsURL),
				zap.Int("attempt", attempt),
				zap.Int("status_code", status),
				zap.ByteString("body", body))

			if status == http.StatusOK {
				return body, nil
			}
		}

		if attempt < c.retry.MaxAttempts {
			if serr := c.sleep(ctx, c.retry.Delay); serr != nil {
				return nil, serr
			}
		}
	}

	if !haveResponse {
		return nil, fmt.Errorf("no response from versions api after %d attempts: %w",
			c.retry.MaxAttempts, gateerrors.ErrRequestFailed)
	}
	return nil, fmt.Errorf("versions api returned status %d after %d attempts: %w",
		lastStatus, c.retry.MaxAttempts, gateerrors.ErrRequestFailed)
}

// doRequest performs a single GET against the Versions API and returns the
// status code and body. A non-nil error means no usable response was
// received at all.
func (c *StatsClient) doRequest(ctx context.Context, statsURL, environment string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statsURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build versions request: %w", err)
	}

	q := req.URL.Query()
	q.Set("environment", environment)
	req.URL.RawQuery = q.Encode()

	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read versions response: %w", err)
	}

	return resp.StatusCode, body, nil
}
