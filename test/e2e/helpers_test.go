//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// Environment variable names for E2E test configuration.
const (
	EnvServerURL = "INTEGRATION_SERVER_URL"
)

// Default configuration values.
const (
	DefaultServerURL = "http://localhost:5000"
	DefaultTimeout   = 15 * time.Second
)

// getEnvOrDefault returns the value of the environment variable
// identified by key, or defaultVal if the variable is not set.
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// e2eServerURL returns the base URL of the server under test.
func e2eServerURL() string {
	return getEnvOrDefault(EnvServerURL, DefaultServerURL)
}

// skipIfServerUnavailable checks whether the server is reachable
// and skips the test if it is not.
func skipIfServerUnavailable(t *testing.T) {
	t.Helper()

	base := e2eServerURL()
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(base + "/health")
	if err != nil {
		t.Skipf("Server unavailable at %s: %v", base, err)
	}
	resp.Body.Close()
}

// newHTTPClient returns an *http.Client with a sensible timeout.
func newHTTPClient() *http.Client {
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

// createResourceRequest is the payload for creating a resource.
type createResourceRequest struct {
	Creator string `json:"creator,omitempty"`
	Text    string `json:"text"`
}

// updateResourceRequest is the payload for updating a resource's text.
type updateResourceRequest struct {
	Text string `json:"text"`
}

// doRequest performs an HTTP request and returns status code and body.
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

// jsonHeaders returns the default headers for JSON requests.
func jsonHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
	}
}

// createResource is a helper that creates a resource and returns its
// parsed response. It fails the test on error.
func createResource(
	t *testing.T,
	client *http.Client,
	base string,
	headers map[string]string,
	resource createResourceRequest,
) resourceResponse {
	t.Helper()

	payload, _ := json.Marshal(resource)
	status, body := doRequest(
		t, client, http.MethodPost,
		base+"/api/resources",
		bytes.NewReader(payload), headers,
	)

	if status != http.StatusCreated {
		t.Fatalf(
			"createResource: expected 201, got %d. Body: %s",
			status, body,
		)
	}

	var created resourceResponse
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("createResource: failed to parse resource: %v", err)
	}

	return created
}

// deleteResource is a helper that deletes a resource by ID.
func deleteResource(
	t *testing.T,
	client *http.Client,
	base, id string,
	headers map[string]string,
) {
	t.Helper()

	url := fmt.Sprintf("%s/api/resource/%s", base, id)
	status, body := doRequest(
		t, client, http.MethodDelete, url, nil, headers,
	)

	if status != http.StatusOK {
		t.Logf(
			"deleteResource cleanup: expected 200, got %d. Body: %s",
			status, body,
		)
	}
}
