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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidConfig indicates a configuration parameter failed validation.
	// Raised before any network activity. Maps to exit code 100.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRequestFailed indicates all attempts against the Rollbar Versions API
	// were exhausted without a usable 200 response. Maps to exit code 101.
	ErrRequestFailed = errors.New("versions request failed")

	// ErrBadResponse indicates the Versions API body was not valid JSON or is
	// missing the expected item_stats structure. Maps to exit code 101.
	ErrBadResponse = errors.New("malformed versions response")
)
