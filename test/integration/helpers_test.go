//go:build integration

package integration_test

import (
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// Environment variable names for integration test configuration.
const (
	EnvServerURL = "INTEGRATION_SERVER_URL"
)

// Default configuration values.
const (
	DefaultServerURL = "http://localhost:5000"
	DefaultTimeout   = 10 * time.Second
)

// getEnvOrDefault returns the value of the environment variable
// identified by key, or defaultVal if the variable is not set.
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// skipIfServiceUnavailable checks whether the service at the given
// URL is reachable and skips the test if it is not.
func skipIfServiceUnavailable(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Skipf("Service unavailable at %s: %v", url, err)
	}
	resp.Body.Close()
}

// createHTTPClient returns an *http.Client with a sensible timeout
// for integration tests.
func createHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// resourceResponse represents a resource returned by the API.
type resourceResponse struct {
	ID      string `json:"id"`
	Creator string `json:"creator"`
	Text    string `json:"text"`
}

// errorResponse represents an error response from the API.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// healthResponse represents the health endpoint response.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// readyResponse represents the ready endpoint response.
type readyResponse struct {
	Status    string `json:"status"`
	Resources int    `json:"resources"`
}

// doRequest is a convenience wrapper that performs an HTTP request and
// returns the status code and body bytes.
func doRequest(
	t *testing.T,
	client *http.Client,
	method, url string,
	body io.Reader,
	headers map[string]string,
) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp.StatusCode, respBody
}
