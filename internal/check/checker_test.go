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

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirseerhq/buildgate/internal/config"
	gateerrors "github.com/sirseerhq/buildgate/internal/errors"
	"github.com/sirseerhq/buildgate/internal/rollbar"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testToken = "abcdefghij0123456789ABCDEFGHIJ12"

func testConfig(numChecks int) config.CheckConfig {
	return config.CheckConfig{
		AccessToken:   testToken,
		CodeVersion:   "5a2b9c1d",
		Environment:   "production",
		ItemThreshold: 0,
		NumChecks:     numChecks,
		CheckSeconds:  7,
	}
}

// sleepRecorder records inter-check delays without sleeping.
type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return s.err
}

func newTestChecker(t *testing.T, cfg config.CheckConfig, client rollbar.Client) (*Checker, *sleepRecorder) {
	t.Helper()
	checker, err := New(cfg, client, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rec := &sleepRecorder{}
	checker.SetSleep(rec.sleep)
	return checker, rec
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.AccessToken = "tooshort"

	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 0, 0, 0)}}
	_, err := New(cfg, client, nil)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, gateerrors.ErrInvalidConfig) {
		t.Errorf("error does not wrap ErrInvalidConfig: %v", err)
	}
	if client.CallCount != 0 {
		t.Errorf("client was called %d times before validation", client.CallCount)
	}
}

func TestDetermineBuildQualitySingleCleanCheck(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 0, 0, 0)}}
	checker, rec := newTestChecker(t, testConfig(1), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusSuccess {
		t.Errorf("status = %v, want SUCCESS", status)
	}
	if client.CallCount != 1 {
		t.Errorf("call count = %d, want 1", client.CallCount)
	}
	if len(rec.delays) != 0 {
		t.Errorf("expected no sleep after the only check, got %v", rec.delays)
	}
	if client.LastCodeVersion != "5a2b9c1d" || client.LastEnvironment != "production" {
		t.Errorf("client called with (%q, %q)", client.LastCodeVersion, client.LastEnvironment)
	}
}

func TestDetermineBuildQualityMultiCheckDegradesOnLast(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{
		rollbar.StatsBody(0, 0, 0, 0),
		rollbar.StatsBody(0, 0, 0, 0),
		rollbar.StatsBody(2, 0, 0, 0),
	}}
	checker, rec := newTestChecker(t, testConfig(3), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusNewItems {
		t.Errorf("status = %v, want NEW_ITEMS", status)
	}
	if client.CallCount != 3 {
		t.Errorf("call count = %d, want 3", client.CallCount)
	}
	// Sleeps happen between checks only: after check 1 and check 2.
	if len(rec.delays) != 2 {
		t.Fatalf("sleep count = %d, want 2", len(rec.delays))
	}
	for _, d := range rec.delays {
		if d != 7*time.Second {
			t.Errorf("sleep = %v, want 7s", d)
		}
	}
}

func TestDetermineBuildQualityMultiCheckAllClean(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 0, 0, 0)}}
	checker, rec := newTestChecker(t, testConfig(3), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusSuccess {
		t.Errorf("status = %v, want SUCCESS", status)
	}
	if client.CallCount != 3 {
		t.Errorf("call count = %d, want 3", client.CallCount)
	}
	// No sleep is owed after the final check.
	if len(rec.delays) != 2 {
		t.Errorf("sleep count = %d, want 2", len(rec.delays))
	}
}

func TestDetermineBuildQualityEarlyExit(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 3, 0, 0)}}
	checker, rec := newTestChecker(t, testConfig(3), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusReactivatedItems {
		t.Errorf("status = %v, want REACTIVATED_ITEMS", status)
	}
	if client.CallCount != 1 {
		t.Errorf("call count = %d, want 1 (early exit)", client.CallCount)
	}
	if len(rec.delays) != 0 {
		t.Errorf("expected no sleep on early exit, got %v", rec.delays)
	}
}

func TestDetermineBuildQualityRequestError(t *testing.T) {
	client := &rollbar.MockClient{
		Errors: []error{fmt.Errorf("versions api returned status 503 after 3 attempts: %w", gateerrors.ErrRequestFailed)},
	}
	checker, rec := newTestChecker(t, testConfig(3), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusCheckError {
		t.Errorf("status = %v, want CHECK_ERROR", status)
	}
	if client.CallCount != 1 {
		t.Errorf("call count = %d, want 1", client.CallCount)
	}
	if len(rec.delays) != 0 {
		t.Errorf("expected no sleep after a failed check, got %v", rec.delays)
	}
}

func TestDetermineBuildQualityParseError(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{[]byte("not json at all")}}
	checker, _ := newTestChecker(t, testConfig(2), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusCheckError {
		t.Errorf("status = %v, want CHECK_ERROR", status)
	}
	if client.CallCount != 1 {
		t.Errorf("call count = %d, want 1", client.CallCount)
	}
}

func TestDetermineBuildQualityUnexpectedError(t *testing.T) {
	client := &rollbar.MockClient{Errors: []error{errors.New("something unrelated broke")}}
	checker, _ := newTestChecker(t, testConfig(1), client)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusGeneralError {
		t.Errorf("status = %v, want GENERAL_ERROR", status)
	}
}

func TestDetermineBuildQualityInterruptedSleep(t *testing.T) {
	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 0, 0, 0)}}
	checker, err := New(testConfig(3), client, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	rec := &sleepRecorder{err: context.Canceled}
	checker.SetSleep(rec.sleep)

	status := checker.DetermineBuildQuality(context.Background())
	if status != StatusGeneralError {
		t.Errorf("status = %v, want GENERAL_ERROR", status)
	}
	if client.CallCount != 1 {
		t.Errorf("call count = %d, want 1", client.CallCount)
	}
}

func TestDetermineBuildQualityLogsCheckProgress(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	client := &rollbar.MockClient{Responses: [][]byte{rollbar.StatsBody(0, 0, 0, 0)}}

	checker, err := New(testConfig(2), client, zap.New(core))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	checker.SetSleep((&sleepRecorder{}).sleep)

	checker.DetermineBuildQuality(context.Background())

	progress := logs.FilterMessage("running build quality check").All()
	if len(progress) != 2 {
		t.Fatalf("progress log count = %d, want 2", len(progress))
	}
	if got := progress[0].ContextMap()["check"]; got != int64(1) {
		t.Errorf("first progress entry check = %v, want 1", got)
	}
	if got := progress[1].ContextMap()["check"]; got != int64(2) {
		t.Errorf("second progress entry check = %v, want 2", got)
	}

	totals := logs.FilterMessage("item counts at error and critical level").All()
	if len(totals) != 2 {
		t.Errorf("totals log count = %d, want 2", len(totals))
	}

	final := logs.FilterMessage("build quality determined").All()
	if len(final) != 1 {
		t.Fatalf("final status log count = %d, want 1", len(final))
	}
	if got := final[0].ContextMap()["status_code"]; got != int64(0) {
		t.Errorf("final status_code = %v, want 0", got)
	}

	// The access token must never appear in log output.
	for _, entry := range logs.All() {
		for k, v := range entry.ContextMap() {
			if s, ok := v.(string); ok && s == testToken {
				t.Errorf("access token leaked into log field %q", k)
			}
		}
	}
}
