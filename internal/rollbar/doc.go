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

// Package rollbar provides a client for the Rollbar Versions API used to
// read per-version item statistics. It handles authentication, bounded
// retries with a fixed delay, and turning the raw JSON body into the four
// item totals the quality gate cares about.
//
// The package includes:
//   - A Client interface for fetching version statistics
//   - An HTTP implementation with a configurable retry policy
//   - A mock client for testing
//   - The item-totals calculation over the Versions API response
//
// Basic usage:
//
//	client := rollbar.NewStatsClient("https://api.rollbar.com", token, nil, logger)
//	body, err := client.VersionStats(ctx, "5a2b9c1d", "production")
//	if err != nil {
//	    // Handle error
//	}
//	totals, err := rollbar.CalculateItemTotals(body)
package rollbar
