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

// Package testutil provides common test helpers for buildgate
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// MockServer provides common mock Versions API configurations for testing
type MockServer struct {
	*httptest.Server
	requestCount *int32
}

// RequestCount returns how many requests the server has received.
func (s *MockServer) RequestCount() int {
	if s.requestCount == nil {
		return 0
	}
	return int(atomic.LoadInt32(s.requestCount))
}

// SeverityCounts holds the per-severity counts of one item category in a
// generated Versions API response.
type SeverityCounts struct {
	Error    int
	Critical int
	Warning  int
}

// ItemStats describes the item counts a generated response reports.
type ItemStats struct {
	New         SeverityCounts
	Reactivated SeverityCounts
	Repeated    SeverityCounts
	Resolved    SeverityCounts
}

// NewVersionsServer creates a mock server that always responds 200 with a
// Versions API body built from stats.
func NewVersionsServer(t *testing.T, stats ItemStats) *MockServer {
	t.Helper()
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GenerateVersionsResponse(stats))
	}))

	return &MockServer{Server: server, requestCount: &requestCount}
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	}))
	return &MockServer{Server: server, requestCount: &requestCount}
}

// NewTransientErrorServer creates a mock server that fails N times then succeeds
func NewTransientErrorServer(t *testing.T, failCount, errorCode int, stats ItemStats) *MockServer {
	t.Helper()
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := atomic.AddInt32(&requestCount, 1)

		if count <= int32(failCount) {
			w.WriteHeader(errorCode)
			_, _ = w.Write([]byte(http.StatusText(errorCode)))
			return
		}

		// Success after failures
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GenerateVersionsResponse(stats))
	}))

	return &MockServer{Server: server, requestCount: &requestCount}
}

// NewMalformedServer creates a mock server that responds 200 with a body that
// is not a usable Versions API response.
func NewMalformedServer(t *testing.T, body string) *MockServer {
	t.Helper()
	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	return &MockServer{Server: server, requestCount: &requestCount}
}

// GenerateVersionsResponse builds a Versions API response document with the
// given item stats. Warning counts are included to exercise the severity
// filter; lower severities never influence the gate.
func GenerateVersionsResponse(stats ItemStats) map[string]interface{} {
	category := func(c SeverityCounts) map[string]interface{} {
		return map[string]interface{}{
			"error":    c.Error,
			"critical": c.Critical,
			"warning":  c.Warning,
			"info":     0,
			"debug":    0,
		}
	}

	return map[string]interface{}{
		"err": 0,
		"result": map[string]interface{}{
			"item_stats": map[string]interface{}{
				"new":         category(stats.New),
				"reactivated": category(stats.Reactivated),
				"repeated":    category(stats.Repeated),
				"resolved":    category(stats.Resolved),
			},
		},
	}
}

// AssertVersionsRequest validates a Versions API request structure
func AssertVersionsRequest(t *testing.T, r *http.Request, wantToken string) {
	t.Helper()
	if r.Method != http.MethodGet {
		t.Errorf("Expected GET method, got: %s", r.Method)
	}
	if got := r.Header.Get("X-Rollbar-Access-Token"); got != wantToken {
		t.Errorf("Expected access token %q, got: %q", wantToken, got)
	}
	if r.URL.Query().Get("environment") == "" {
		t.Error("Expected environment query parameter")
	}
}
