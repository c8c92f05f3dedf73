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

// ItemTotals holds the per-category item counts for one check of a code
// version, restricted to error and critical severity. Totals are recomputed
// fresh on every check; only the latest check's totals matter.
type ItemTotals struct {
	New         int
	Reactivated int
	Repeated    int
	Resolved    int
}

// Wire types for the Versions API response. Pointer fields distinguish a
// missing key from an explicit zero so structural problems are detected.
//
// The relevant shape is:
//
//	{"result": {"item_stats": {
//	    "new":         {"error": N, "critical": N, ...},
//	    "reactivated": {"error": N, "critical": N, ...},
//	    "repeated":    {"error": N, "critical": N, ...},
//	    "resolved":    {"error": N, "critical": N, ...}}}}
type versionsResponse struct {
	Result *versionsResult `json:"result"`
}

type versionsResult struct {
	ItemStats *itemStats `json:"item_stats"`
}

type itemStats struct {
	New         *severityCounts `json:"new"`
	Reactivated *severityCounts `json:"reactivated"`
	Repeated    *severityCounts `json:"repeated"`
	Resolved    *severityCounts `json:"resolved"`
}

// severityCounts carries the per-severity counts of one item category. Only
// error and critical feed the totals; lower severities are ignored on purpose.
type severityCounts struct {
	Error    *int `json:"error"`
	Critical *int `json:"critical"`
}
