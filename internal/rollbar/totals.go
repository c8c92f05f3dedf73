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
	"encoding/json"
	"fmt"

	gateerrors "github.com/sirseerhq/buildgate/internal/errors"
)

// CalculateItemTotals parses a Versions API response body and returns the
// item totals per category, each the sum of the error and critical severity
// counts. Bodies that are not valid JSON or are missing any part of the
// expected result.item_stats structure fail with an error wrapping
// gateerrors.ErrBadResponse.
func CalculateItemTotals(body []byte) (ItemTotals, error) {
	var resp versionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ItemTotals{}, fmt.Errorf("failed to decode versions response: %v: %w", err, gateerrors.ErrBadResponse)
	}

	if resp.Result == nil || resp.Result.ItemStats == nil {
		return ItemTotals{}, fmt.Errorf("versions response missing result.item_stats: %w", gateerrors.ErrBadResponse)
	}

	stats := resp.Result.ItemStats
	var totals ItemTotals
	var err error

	if totals.New, err = errorAndCriticalCount("new", stats.New); err != nil {
		return ItemTotals{}, err
	}
	if totals.Reactivated, err = errorAndCriticalCount("reactivated", stats.Reactivated); err != nil {
		return ItemTotals{}, err
	}
	if totals.Repeated, err = errorAndCriticalCount("repeated", stats.Repeated); err != nil {
		return ItemTotals{}, err
	}
	if totals.Resolved, err = errorAndCriticalCount("resolved", stats.Resolved); err != nil {
		return ItemTotals{}, err
	}

	return totals, nil
}

// errorAndCriticalCount sums the error and critical severity counts of one
// item category. Severities below error (warning, info, debug) never count
// toward build quality.
func errorAndCriticalCount(category string, counts *severityCounts) (int, error) {
	if counts == nil || counts.Error == nil || counts.Critical == nil {
		return 0, fmt.Errorf("versions response missing error/critical counts for item_stats.%s: %w",
			category, gateerrors.ErrBadResponse)
	}
	return *counts.Error + *counts.Critical, nil
}
