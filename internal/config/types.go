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

// Package config types define the configuration structures used throughout
// buildgate. Operational tuning (endpoint, timeouts, retry behavior) can be
// loaded from a YAML configuration file, while check parameters always
// arrive via command-line flags.
package config

// Config represents the operational configuration for buildgate. It covers
// the settings that tune how the Rollbar Versions API is called, as opposed
// to the per-invocation check parameters held in CheckConfig.
type Config struct {
	Rollbar RollbarConfig `yaml:"rollbar"`
	Request RequestConfig `yaml:"request"`
}

// RollbarConfig contains Rollbar-specific settings. The endpoint can be
// overridden for self-hosted Rollbar deployments or test servers.
type RollbarConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// RequestConfig controls how individual Versions API requests behave:
// how many attempts are made before giving up, how long to wait between
// attempts, and the per-request timeout.
type RequestConfig struct {
	Attempts          int `yaml:"attempts"`
	RetryDelaySeconds int `yaml:"retry_delay_seconds"`
	TimeoutSeconds    int `yaml:"timeout_seconds"`
}

// CheckConfig holds the parameters of a single build quality check run.
// It is constructed once per process invocation from command-line flags,
// validated before any network activity, and never mutated afterwards.
type CheckConfig struct {
	// AccessToken is a Rollbar project access token with read scope.
	AccessToken string

	// CodeVersion identifies the deployed code, typically a git commit SHA.
	CodeVersion string

	// Environment is the environment the code is running in.
	Environment string

	// ItemThreshold is the combined new+reactivated item count above which
	// the build is considered degraded.
	ItemThreshold int

	// NumChecks is how many times the item counts are checked. Values above
	// one gate a progressive deployment over time.
	NumChecks int

	// CheckSeconds is the number of seconds between successful checks.
	CheckSeconds int
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases: the public Rollbar API, three request attempts with a fixed
// three second delay, and a 30 second per-request timeout.
func DefaultConfig() *Config {
	return &Config{
		Rollbar: RollbarConfig{
			Endpoint: "https://api.rollbar.com",
		},
		Request: RequestConfig{
			Attempts:          3,
			RetryDelaySeconds: 3,
			TimeoutSeconds:    30,
		},
	}
}
