package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
)

// apiURL is the base URL for the certwatch API.
// Override with CERTWATCH_API_URL env var.
var apiURL = "http://localhost:8087/api"

func TestMain(m *testing.M) {
	if os.Getenv("CERTWATCH_E2E") == "" {
		fmt.Println("Skipping e2e tests (set CERTWATCH_E2E=1 to run)")
		os.Exit(0)
	}
	if u := os.Getenv("CERTWATCH_API_URL"); u != "" {
		apiURL = u
	}
	os.Exit(m.Run())
}

// httpGet performs an HTTP GET and returns the response and body string.
func httpGet(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

// httpPost performs an HTTP POST with a JSON body.
func httpPost(t *testing.T, url string, body interface{}) (*http.Response, string) {
	t.Helper()
	return httpDo(t, http.MethodPost, url, body)
}

// httpPut performs an HTTP PUT with a JSON body.
func httpPut(t *testing.T, url string, body interface{}) (*http.Response, string) {
	t.Helper()
	return httpDo(t, http.MethodPut, url, body)
}

// httpDelete performs an HTTP DELETE.
func httpDelete(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	return httpDo(t, http.MethodDelete, url, nil)
}

func httpDo(t *testing.T, method, url string, body interface{}) (*http.Response, string) {
	t.Helper()
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal %s body: %v", method, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("create %s request %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

// parseEnvelope unmarshals a response body into the standard envelope and
// returns the data field as a generic value.
func parseEnvelope(t *testing.T, body string) (status int, message string, data interface{}) {
	t.Helper()
	var env struct {
		Status  int         `json:"status"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("parse envelope: %v\nbody: %s", err, body)
	}
	return env.Status, env.Message, env.Data
}

// dataObject returns the envelope data as a map.
func dataObject(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	_, _, data := parseEnvelope(t, body)
	obj, ok := data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T\nbody: %s", data, body)
	}
	return obj
}

// dataArray returns the envelope data as a list of objects.
func dataArray(t *testing.T, body string) []map[string]interface{} {
	t.Helper()
	_, _, data := parseEnvelope(t, body)
	if data == nil {
		return nil
	}
	raw, ok := data.([]interface{})
	if !ok {
		t.Fatalf("expected array data, got %T\nbody: %s", data, body)
	}
	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("expected object item, got %T\nbody: %s", item, body)
		}
		out = append(out, obj)
	}
	return out
}

// createTestDomain creates a domain and registers a cleanup that deletes it.
// Returns the new domain's id.
func createTestDomain(t *testing.T, name, expiryDate string) int64 {
	t.Helper()
	resp, body := httpPost(t, apiURL+"/domains", map[string]interface{}{
		"domain":      name,
		"expiry_date": expiryDate,
		"registrar":   "e2e test registrar",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create domain %q: status %d body=%s", name, resp.StatusCode, body)
	}
	id, ok := dataObject(t, body)["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("create domain %q: no id in response: %s", name, body)
	}
	t.Cleanup(func() {
		httpDelete(t, fmt.Sprintf("%s/domains/%d", apiURL, int64(id)))
	})
	return int64(id)
}

// createTestCertificate creates a certificate and registers a cleanup.
func createTestCertificate(t *testing.T, commonName, validTo string) int64 {
	t.Helper()
	resp, body := httpPost(t, apiURL+"/certificates", map[string]interface{}{
		"common_name": commonName,
		"valid_to":    validTo,
		"issuer":      "e2e test CA",
	})
	if resp.StatusCode != 201 {
		t.Fatalf("create certificate %q: status %d body=%s", commonName, resp.StatusCode, body)
	}
	id, ok := dataObject(t, body)["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("create certificate %q: no id in response: %s", commonName, body)
	}
	t.Cleanup(func() {
		httpDelete(t, fmt.Sprintf("%s/certificates/%d", apiURL, int64(id)))
	})
	return int64(id)
}
