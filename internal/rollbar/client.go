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

import "context"

// Client defines the interface for reading version statistics from Rollbar.
// This interface allows for easy mocking in tests.
type Client interface {
	// VersionStats retrieves the raw Versions API response body for the given
	// code version and environment. It returns the body only for a successful
	// response; every failure mode surfaces as an error after the client's
	// retry budget is exhausted.
	VersionStats(ctx context.Context, codeVersion, environment string) ([]byte, error)
}
