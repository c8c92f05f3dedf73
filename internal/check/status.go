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

package check

import "github.com/sirseerhq/buildgate/internal/rollbar"

// Status is the outcome of a build quality check. The integer values are the
// process exit codes deployment pipelines key off, so they must stay stable.
//
// StatusNewItems and StatusReactivatedItems are independent flags combined
// with bitwise OR, which keeps their sum semantics (1|2 == 3) while ruling
// out accidental double-adds. StatusGeneralError and StatusCheckError are
// terminal and never combined with anything.
type Status int

const (
	// StatusSuccess means no item counts exceeded the threshold.
	StatusSuccess Status = 0

	// StatusNewItems flags new items of error or critical level.
	StatusNewItems Status = 1 << 0

	// StatusReactivatedItems flags reactivated items of error or critical level.
	StatusReactivatedItems Status = 1 << 1

	// StatusNewAndReactivated combines both item flags.
	StatusNewAndReactivated Status = StatusNewItems | StatusReactivatedItems

	// StatusGeneralError reports an unexpected failure of the gate itself.
	StatusGeneralError Status = 100

	// StatusCheckError reports that the Versions API could not be queried or
	// its response could not be understood.
	StatusCheckError Status = 101
)

// String returns a human-readable name for logging.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusNewItems:
		return "NEW_ITEMS"
	case StatusReactivatedItems:
		return "REACTIVATED_ITEMS"
	case StatusNewAndReactivated:
		return "NEW_AND_REACTIVATED_ITEMS"
	case StatusGeneralError:
		return "GENERAL_ERROR"
	case StatusCheckError:
		return "CHECK_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ExitCode converts the status to its process exit code. The conversion to
// the integer encoding happens only here, at the process boundary.
func (s Status) ExitCode() int {
	return int(s)
}

// Evaluate applies the threshold logic to one check's item totals.
//
// The combined new+reactivated count is compared against the threshold for
// both flags: a flag is raised only when the combined count exceeds the
// threshold AND that category is individually nonzero. A single category can
// therefore carry the whole combined count, raising only its own flag.
func Evaluate(totals rollbar.ItemTotals, itemThreshold int) Status {
	status := StatusSuccess
	combined := totals.New + totals.Reactivated

	if combined > itemThreshold && totals.New > 0 {
		status |= StatusNewItems
	}
	if combined > itemThreshold && totals.Reactivated > 0 {
		status |= StatusReactivatedItems
	}

	return status
}
