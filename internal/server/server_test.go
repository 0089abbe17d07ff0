package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/surfrank/surfrank/pkg/session"
)

// newTestClient spins up the API on an in-memory store and returns a
// client with a cookie jar so sessions survive across requests.
func newTestClient(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := New(session.NewMemoryStore(), time.Hour, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return ts, &http.Client{Jar: jar}
}

func postGraph(t *testing.T, ts *httptest.Server, client *http.Client, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(ts.URL+"/api/graph", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/graph: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestCreateGraph(t *testing.T) {
	ts, client := newTestClient(t)

	resp := postGraph(t, ts, client, `{"nodes":["A","B","C"],"edges":[["A","B"],["B","C"]]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var sessionSet bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			sessionSet = true
			if !c.HttpOnly {
				t.Error("session cookie should be HttpOnly")
			}
		}
	}
	if !sessionSet {
		t.Error("expected session_id cookie to be set")
	}

	payload := decodeBody(t, resp)
	if payload["num_nodes"] != float64(3) {
		t.Errorf("num_nodes = %v, want 3", payload["num_nodes"])
	}
	if payload["num_edges"] != float64(2) {
		t.Errorf("num_edges = %v, want 2", payload["num_edges"])
	}
}

func TestCreateGraphDropsUnknownEdges(t *testing.T) {
	ts, client := newTestClient(t)

	resp := postGraph(t, ts, client, `{"nodes":["A","B"],"edges":[["A","B"],["A","Z"]]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	payload := decodeBody(t, resp)
	if payload["num_edges"] != float64(1) {
		t.Errorf("num_edges = %v, want 1 (unknown endpoint dropped)", payload["num_edges"])
	}
}

func TestCreateGraphValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing nodes key", `{"edges":[]}`},
		{"missing edges key", `{"nodes":[]}`},
		{"malformed json", `{"nodes":`},
		{"edge with three endpoints", `{"nodes":["A","B"],"edges":[["A","B","C"]]}`},
		{"edge with one endpoint", `{"nodes":["A"],"edges":[["A"]]}`},
		{"empty label", `{"nodes":[""],"edges":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, client := newTestClient(t)
			resp := postGraph(t, ts, client, tt.body)
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
		})
	}
}

func TestPageRank(t *testing.T) {
	ts, client := newTestClient(t)
	postGraph(t, ts, client, `{"nodes":["A","B","C"],"edges":[["A","B"],["B","C"],["C","A"]]}`).Body.Close()

	resp, err := client.Get(ts.URL + "/api/pagerank")
	if err != nil {
		t.Fatalf("GET /api/pagerank: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	payload := decodeBody(t, resp)
	scores, ok := payload["scores"].(map[string]any)
	if !ok {
		t.Fatalf("scores missing from response: %v", payload)
	}
	sum := 0.0
	for label, v := range scores {
		score, ok := v.(float64)
		if !ok {
			t.Fatalf("score for %q is not a number: %v", label, v)
		}
		sum += score
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("scores sum to %v, want 1.0", sum)
	}
	if _, ok := payload["convergence_history"].([]any); !ok {
		t.Errorf("convergence_history missing from response: %v", payload)
	}
	if payload["iterations"] == nil {
		t.Errorf("iterations missing from response: %v", payload)
	}
}

func TestPageRankNoSession(t *testing.T) {
	ts, client := newTestClient(t)

	resp, err := client.Get(ts.URL + "/api/pagerank")
	if err != nil {
		t.Fatalf("GET /api/pagerank: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestPageRankEmptyGraph(t *testing.T) {
	ts, client := newTestClient(t)
	postGraph(t, ts, client, `{"nodes":[],"edges":[]}`).Body.Close()

	resp, err := client.Get(ts.URL + "/api/pagerank")
	if err != nil {
		t.Fatalf("GET /api/pagerank: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestVisualizeRequiresResult(t *testing.T) {
	ts, client := newTestClient(t)
	postGraph(t, ts, client, `{"nodes":["A","B"],"edges":[["A","B"]]}`).Body.Close()

	resp, err := client.Get(ts.URL + "/api/visualize")
	if err != nil {
		t.Fatalf("GET /api/visualize: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestVisualize(t *testing.T) {
	ts, client := newTestClient(t)
	postGraph(t, ts, client, `{"nodes":["A","B"],"edges":[["A","B"]]}`).Body.Close()

	resp, err := client.Get(ts.URL + "/api/pagerank")
	if err != nil {
		t.Fatalf("GET /api/pagerank: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/visualize?format=svg")
	if err != nil {
		t.Fatalf("GET /api/visualize: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Contains(body, []byte("<svg")) {
		t.Error("response does not look like SVG")
	}
}

func TestClear(t *testing.T) {
	ts, client := newTestClient(t)
	postGraph(t, ts, client, `{"nodes":["A"],"edges":[]}`).Body.Close()

	resp, err := client.Post(ts.URL+"/api/clear", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/clear: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	resp, err = client.Get(ts.URL + "/api/pagerank")
	if err != nil {
		t.Fatalf("GET /api/pagerank: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status after clear = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestHealthz(t *testing.T) {
	ts, client := newTestClient(t)
	resp, err := client.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
