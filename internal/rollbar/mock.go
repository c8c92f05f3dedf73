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
)

// MockClient is a mock implementation of the Client interface for testing.
// Responses are served in order; the last entry repeats once the script is
// exhausted.
type MockClient struct {
	// Responses to return, one per call.
	Responses [][]byte

	// Errors to return, one per call. A nil entry means the call succeeds
	// with the corresponding response.
	Errors []error

	// Track calls for verification
	CallCount       int
	LastCodeVersion string
	LastEnvironment string
}

// VersionStats implements the Client interface
func (m *MockClient) VersionStats(ctx context.Context, codeVersion, environment string) ([]byte, error) {
	call := m.CallCount
	m.CallCount++
	m.LastCodeVersion = codeVersion
	m.LastEnvironment = environment

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(m.Errors) > 0 {
		if err := m.Errors[clamp(call, len(m.Errors))]; err != nil {
			return nil, err
		}
	}

	if len(m.Responses) == 0 {
		return nil, fmt.Errorf("mock client has no responses configured")
	}
	return m.Responses[clamp(call, len(m.Responses))], nil
}

func clamp(i, n int) int {
	if i >= n {
		return n - 1
	}
	return i
}

// StatsBody builds a minimal Versions API response body with the given
// error-level counts per category and a critical count of zero. Handy for
// tests that only care about the totals.
func StatsBody(newCount, reactivated, repeated, resolved int) []byte {
	return []byte(fmt.Sprintf(`{"err": 0, "result": {"item_stats": {
		"new":         {"error": %d, "critical": 0},
		"reactivated": {"error": %d, "critical": 0},
		"repeated":    {"error": %d, "critical": 0},
		"resolved":    {"error": %d, "critical": 0}}}}`,
		newCount, reactivated, repeated, resolved))
}
