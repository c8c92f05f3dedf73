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

package main

import (
	"fmt"
	"os"

	"github.com/sirseerhq/buildgate/internal/check"
)

var version = "dev"

func main() {
	// Default to success so informational paths (--help, --version) that
	// never reach RunE exit cleanly.
	finalStatus := check.StatusSuccess

	rootCmd := newRootCommand(&finalStatus)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}

	os.Exit(finalStatus.ExitCode())
}

// mapErrorToExitCode maps startup errors to the exit code contract. Invalid
// flags and configuration deliberately collapse into the general error code:
// consumers of the gate only ever distinguish check outcomes, not the reason
// the gate itself could not start.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}
	return check.StatusGeneralError.ExitCode()
}
