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

package config

import (
	"fmt"
	"strings"

	gateerrors "github.com/sirseerhq/buildgate/internal/errors"
)

const (
	accessTokenLength = 32
	maxFieldLength    = 200
)

// Validate verifies that every check parameter is within its allowed range.
// It has no side effects and performs no network activity. The first violated
// constraint wins; the returned error names the offending field and wraps
// gateerrors.ErrInvalidConfig.
func (c CheckConfig) Validate() error {
	// Access tokens are exactly 32 alphanumeric characters.
	if len(c.AccessToken) != accessTokenLength || !isAlphanumeric(c.AccessToken) {
		return fmt.Errorf("the access-token argument is not valid (expected %d alphanumeric characters): %w",
			accessTokenLength, gateerrors.ErrInvalidConfig)
	}

	// Code versions carry no charset restriction, only a length cap.
	if len(c.CodeVersion) > maxFieldLength {
		return fmt.Errorf("the code-version argument is not valid (longer than %d characters): %w",
			maxFieldLength, gateerrors.ErrInvalidConfig)
	}

	// Environments are alphanumeric once '.', '_' and '-' are stripped.
	if len(c.Environment) > maxFieldLength || !isValidEnvironment(c.Environment) {
		return fmt.Errorf("the environment argument is not valid: %w", gateerrors.ErrInvalidConfig)
	}

	if c.ItemThreshold < 0 {
		return fmt.Errorf("the item-threshold argument is not valid (must be >= 0): %w", gateerrors.ErrInvalidConfig)
	}

	if c.NumChecks < 1 {
		return fmt.Errorf("the checks argument is not valid (must be >= 1): %w", gateerrors.ErrInvalidConfig)
	}

	if c.CheckSeconds < 1 {
		return fmt.Errorf("the check-seconds argument is not valid (must be >= 1): %w", gateerrors.ErrInvalidConfig)
	}

	return nil
}

// isValidEnvironment reports whether s is alphanumeric after stripping the
// separator characters '.', '_' and '-'. The remainder must be non-empty.
func isValidEnvironment(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-':
			return -1
		}
		return r
	}, s)

	return stripped != "" && isAlphanumeric(stripped)
}

// isAlphanumeric reports whether s is non-empty and consists only of ASCII
// letters and digits.
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
