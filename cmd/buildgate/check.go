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
	"context"
	"os"
	"time"

	"github.com/sirseerhq/buildgate/internal/check"
	"github.com/sirseerhq/buildgate/internal/config"
	"github.com/sirseerhq/buildgate/internal/rollbar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newRootCommand builds the single buildgate command. The final check status
// is written through finalStatus so main can use it as the exit code.
func newRootCommand(finalStatus *check.Status) *cobra.Command {
	var (
		accessToken   string
		codeVersion   string
		environment   string
		itemThreshold int
		numChecks     int
		checkSeconds  int
		configPath    string
	)

	cmd := &cobra.Command{
		Use:   "buildgate",
		Short: "Gate deployments on Rollbar build quality",
		Long: `Buildgate checks the quality of a deployed code version by reading item
counts from the Rollbar Versions API. New and reactivated items of error or
critical level above the threshold fail the gate. With --checks above one the
check repeats over an interval, which gates progressive deployments: the gate
succeeds only if every intermediate check is clean.

The process exit code is the check status:

  0   - Success, no items above the threshold
  1   - New items of error or critical level
  2   - Reactivated items of error or critical level
  3   - New and reactivated items
  100 - General error
  101 - Versions API request or response error`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		RunE: func(cmd *cobra.Command, args []string) error {
			checkCfg := config.CheckConfig{
				AccessToken:   accessToken,
				CodeVersion:   codeVersion,
				Environment:   environment,
				ItemThreshold: itemThreshold,
				NumChecks:     numChecks,
				CheckSeconds:  checkSeconds,
			}

			status, err := runCheck(cmd.Context(), configPath, checkCfg)
			if err != nil {
				return err
			}
			*finalStatus = status
			return nil
		},
	}

	// Required flags
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Rollbar project access token with read scope")
	cmd.Flags().StringVar(&codeVersion, "code-version", "", "The code version of the application, typically a git commit SHA")
	cmd.Flags().StringVar(&environment, "environment", "", "The environment the application is running in")

	// Optional flags
	cmd.Flags().IntVar(&itemThreshold, "item-threshold", 0, "The combined item count above which quality is considered failed")
	cmd.Flags().IntVar(&numChecks, "checks", 1, "The number of times the item counts are checked. Used for progressive deployments")
	cmd.Flags().IntVar(&checkSeconds, "check-seconds", 1, "The number of seconds between each item count check")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file for operational tuning")

	_ = cmd.MarkFlagRequired("access-token")
	_ = cmd.MarkFlagRequired("code-version")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

// runCheck wires configuration, logger, client and checker together and runs
// the quality check loop.
func runCheck(ctx context.Context, configPath string, checkCfg config.CheckConfig) (check.Status, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return check.StatusGeneralError, err
	}
	if err := cfg.Validate(); err != nil {
		return check.StatusGeneralError, err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	retry := &rollbar.RetryConfig{
		MaxAttempts: cfg.Request.Attempts,
		Delay:       time.Duration(cfg.Request.RetryDelaySeconds) * time.Second,
	}
	client := rollbar.NewStatsClient(cfg.Rollbar.Endpoint, checkCfg.AccessToken, retry, logger)
	client.SetTimeout(time.Duration(cfg.Request.TimeoutSeconds) * time.Second)

	checker, err := check.New(checkCfg, client, logger)
	if err != nil {
		return check.StatusGeneralError, err
	}

	return checker.DetermineBuildQuality(ctx), nil
}

// newLogger builds the operational logger: human-readable INFO lines on
// stderr, leaving stdout free. Pipelines scrape these lines, so the format
// should stay stable.
func newLogger() *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}
