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

// Package check implements the build quality gate: it polls the Rollbar
// Versions API for a code version's item statistics and turns them into a
// Status a deployment pipeline can act on. Multiple checks over an interval
// gate a progressive deployment; the gate succeeds only when every
// intermediate check is clean.
package check

import (
	"context"
	"errors"
	"time"

	"github.com/sirseerhq/buildgate/internal/config"
	gateerrors "github.com/sirseerhq/buildgate/internal/errors"
	"github.com/sirseerhq/buildgate/internal/rollbar"
	"go.uber.org/zap"
)

// SleepFunc pauses between checks. Injectable for tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Checker runs the build quality check loop for one code version and
// environment. Construct it with New; the configuration is validated there
// and a Checker never exists with invalid parameters.
type Checker struct {
	cfg    config.CheckConfig
	client rollbar.Client
	log    *zap.Logger
	sleep  SleepFunc
}

// New validates the check configuration and returns a Checker. Validation
// failures surface as an error wrapping gateerrors.ErrInvalidConfig before
// any network activity. A nil logger disables logging.
func New(cfg config.CheckConfig, client rollbar.Client, logger *zap.Logger) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		cfg:    cfg,
		client: client,
		log:    logger,
		sleep:  sleepWithContext,
	}, nil
}

// SetSleep overrides the inter-check sleep. Tests use this to observe the
// delays without waiting them out.
func (c *Checker) SetSleep(sleep SleepFunc) {
	c.sleep = sleep
}

// DetermineBuildQuality runs up to NumChecks checks against the Versions API
// and returns the final Status.
//
// Each check fetches the stats, computes the item totals and evaluates them
// against the threshold. A clean check with checks remaining sleeps
// CheckSeconds and continues; any other outcome stops the loop. Request and
// response-parsing failures map to StatusCheckError, anything else to
// StatusGeneralError. Only the final check's outcome is returned.
func (c *Checker) DetermineBuildQuality(ctx context.Context) Status {
	c.logConfig()

	status := StatusGeneralError
	for i := 1; i <= c.cfg.NumChecks; i++ {
		c.log.Info("running build quality check",
			zap.Int("check", i),
			zap.Int("num_checks", c.cfg.NumChecks))

		s, err := c.checkOnce(ctx)
		if err != nil {
			status = c.classifyError(err)
			break
		}
		status = s

		// Once quality has degraded there is no value in polling further, and
		// no sleep is owed after the last check.
		if status != StatusSuccess || i == c.cfg.NumChecks {
			break
		}

		if err := c.sleep(ctx, time.Duration(c.cfg.CheckSeconds)*time.Second); err != nil {
			c.log.Error("interrupted while waiting between checks", zap.Error(err))
			status = StatusGeneralError
			break
		}
	}

	c.log.Info("build quality determined",
		zap.Stringer("status", status),
		zap.Int("status_code", status.ExitCode()))
	return status
}

// checkOnce performs a single fetch -> totals -> evaluate pass.
func (c *Checker) checkOnce(ctx context.Context) (Status, error) {
	body, err := c.client.VersionStats(ctx, c.cfg.CodeVersion, c.cfg.Environment)
	if err != nil {
		return StatusGeneralError, err
	}

	totals, err := rollbar.CalculateItemTotals(body)
	if err != nil {
		return StatusGeneralError, err
	}

	c.log.Info("item counts at error and critical level",
		zap.Int("new", totals.New),
		zap.Int("reactivated", totals.Reactivated),
		zap.Int("repeated", totals.Repeated),
		zap.Int("resolved", totals.Resolved))

	return Evaluate(totals, c.cfg.ItemThreshold), nil
}

// classifyError maps a check failure onto a terminal status. The checker is
// the only place errors become status codes; lower layers report errors and
// nothing else.
func (c *Checker) classifyError(err error) Status {
	if errors.Is(err, gateerrors.ErrRequestFailed) || errors.Is(err, gateerrors.ErrBadResponse) {
		c.log.Error("build quality check failed", zap.Error(err))
		return StatusCheckError
	}
	c.log.Error("unexpected error during build quality check", zap.Error(err))
	return StatusGeneralError
}

// logConfig announces the effective check parameters once per run. The token
// itself is never logged.
func (c *Checker) logConfig() {
	c.log.Info("checking build quality with rollbar",
		zap.String("code_version", c.cfg.CodeVersion),
		zap.String("environment", c.cfg.Environment),
		zap.Int("item_threshold", c.cfg.ItemThreshold),
		zap.Int("num_checks", c.cfg.NumChecks),
		zap.Int("check_seconds", c.cfg.CheckSeconds))
}

// sleepWithContext waits for d or until the context is canceled.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
