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
	"time"
)

// RetryConfig configures the retry behavior for Versions API calls.
// The Versions API is polled with a fixed delay between attempts; there is
// no exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	// Delay is the fixed pause between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry configuration: three attempts
// with a fixed three second delay between them.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		Delay:       3 * time.Second,
	}
}

// SleepFunc pauses for the given duration. It is injectable so tests can
// observe and skip the delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext waits for d or until the context is canceled, whichever
// comes first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
