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

// Package main implements the buildgate command-line interface.
// This tool checks the quality of a deployed code version by querying the
// Rollbar Versions API and exits with a numeric status that deployment
// pipelines use to proceed, roll back, or pause a progressive rollout.
//
// The CLI supports:
//   - A single quality check (default behavior)
//   - Repeated checks over an interval with --checks and --check-seconds,
//     for gating progressive (canary) deployments
//   - An item threshold below which the build still counts as clean
//   - Operational tuning (endpoint, timeouts, retries) via --config
//
// Usage:
//
//	buildgate --access-token <token> --code-version <sha> --environment <env> [flags]
//
// Example:
//
//	buildgate --access-token $TOKEN --code-version 5a2b9c1d \
//	    --environment production --checks 5 --check-seconds 300
//
// Exit codes:
//   - 0: Success, no items above the threshold
//   - 1: New items of error or critical level
//   - 2: Reactivated items of error or critical level
//   - 3: New and reactivated items
//   - 100: General error (including invalid configuration)
//   - 101: Versions API request or response error
package main
