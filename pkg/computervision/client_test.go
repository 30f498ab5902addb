package computervision

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testOperationID = "11111111-1111-1111-1111-111111111111"

func TestNew(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("Expected error for empty endpoint")
	}

	c, err := New("https://test.cognitiveservices.azure.com/", WithSubscriptionKey("test-key"))
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if c.endpoint != "https://test.cognitiveservices.azure.com" {
		t.Errorf("Expected trailing slash to be trimmed, got '%s'", c.endpoint)
	}
	if c.key != "test-key" {
		t.Errorf("Expected key 'test-key', got '%s'", c.key)
	}
}

func TestClient_Read(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/vision/v3.2/read/analyze" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Error("Expected Ocp-Apim-Subscription-Key header")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected application/json content type, got %s", r.Header.Get("Content-Type"))
		}

		query := r.URL.Query()
		if query.Get("language") != "ja" {
			t.Errorf("Expected language=ja, got '%s'", query.Get("language"))
		}
		if query.Get("readingOrder") != "natural" {
			t.Errorf("Expected readingOrder=natural, got '%s'", query.Get("readingOrder"))
		}
		if query.Get("model-version") != "latest" {
			t.Errorf("Expected model-version=latest, got '%s'", query.Get("model-version"))
		}
		if query.Has("pages") {
			t.Error("Expected empty pages option to be omitted")
		}

		var body readRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if body.URL != "https://example.com/printed_text.jpg" {
			t.Errorf("Unexpected url in body '%s'", body.URL)
		}

		w.Header().Set("Operation-Location", "https://host/vision/v3.2/read/analyzeResults/"+testOperationID)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c, err := New(server.URL, WithSubscriptionKey("test-key"))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	location, err := c.Read(context.Background(), "https://example.com/printed_text.jpg", &ReadOptions{
		Language:     "ja",
		ModelVersion: "latest",
		ReadingOrder: "natural",
	})
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if location != "https://host/vision/v3.2/read/analyzeResults/"+testOperationID {
		t.Errorf("Unexpected operation location '%s'", location)
	}
}

func TestClient_ReadInStream(t *testing.T) {
	image := []byte("test image data")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/octet-stream" {
			t.Errorf("Expected application/octet-stream content type, got %s", r.Header.Get("Content-Type"))
		}
		if r.URL.RawQuery != "" {
			t.Errorf("Expected no query without options, got '%s'", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != string(image) {
			t.Errorf("Unexpected body '%s'", body)
		}

		w.Header().Set("Operation-Location", "/vision/v3.2/read/analyzeResults/"+testOperationID)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c, _ := New(server.URL, WithSubscriptionKey("test-key"))

	location, err := c.ReadInStream(context.Background(), image, nil)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	if !strings.HasSuffix(location, testOperationID) {
		t.Errorf("Unexpected operation location '%s'", location)
	}
}

func TestClient_AnalyzeErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectCode    string
		errorContains string
	}{
		{
			name:          "service error body",
			status:        http.StatusBadRequest,
			body:          `{"error": {"code": "InvalidImageFormat", "message": "Input data is not a valid image."}}`,
			expectCode:    "InvalidImageFormat",
			errorContains: "400 InvalidImageFormat - Input data is not a valid image.",
		},
		{
			name:          "unauthorized plain body",
			status:        http.StatusUnauthorized,
			body:          "Access denied due to invalid subscription key.",
			errorContains: "401 - Access denied due to invalid subscription key.",
		},
		{
			name:          "empty body",
			status:        http.StatusTooManyRequests,
			body:          "",
			errorContains: "429 - Too Many Requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("Failed to write response: %v", err)
				}
			}))
			defer server.Close()

			c, _ := New(server.URL, WithSubscriptionKey("test-key"))

			_, err := c.ReadInStream(context.Background(), []byte("data"), nil)
			if err == nil {
				t.Fatal("Expected error but got none")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, apiErr.StatusCode)
			}
			if apiErr.Code != tt.expectCode {
				t.Errorf("Expected code '%s', got '%s'", tt.expectCode, apiErr.Code)
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error to contain '%s', got: %v", tt.errorContains, err)
			}
		})
	}
}

func TestClient_GetReadResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/vision/v3.2/read/analyzeResults/"+testOperationID {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			t.Error("Expected Ocp-Apim-Subscription-Key header")
		}

		if _, err := w.Write([]byte(`{
			"status": "succeeded",
			"createdDateTime": "2021-04-08T07:38:06Z",
			"lastUpdatedDateTime": "2021-04-08T07:38:07Z",
			"analyzeResult": {
				"version": "3.2.0",
				"modelVersion": "2021-04-12",
				"readResults": [
					{
						"page": 1,
						"angle": 0.5,
						"width": 338,
						"height": 479,
						"unit": "pixel",
						"lines": [
							{
								"boundingBox": [25, 14, 318, 14, 318, 59, 25, 59],
								"text": "Hello World",
								"appearance": {"style": {"name": "handwriting", "confidence": 0.9}},
								"words": [
									{"boundingBox": [27, 15, 156, 15, 156, 60, 27, 60], "text": "Hello", "confidence": 0.998},
									{"boundingBox": [168, 15, 318, 15, 318, 60, 168, 60], "text": "World", "confidence": 0.987}
								]
							}
						]
					}
				]
			}
		}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	c, _ := New(server.URL, WithSubscriptionKey("test-key"))

	result, err := c.GetReadResult(context.Background(), testOperationID)
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}

	if result.Status != OperationStatusSucceeded {
		t.Errorf("Expected succeeded, got %s", result.Status)
	}
	if !result.CreatedDateTime.Equal(time.Date(2021, 4, 8, 7, 38, 6, 0, time.UTC)) {
		t.Errorf("Unexpected createdDateTime %s", result.CreatedDateTime)
	}
	if result.AnalyzeResult == nil || len(result.AnalyzeResult.ReadResults) != 1 {
		t.Fatalf("Expected one read result, got %+v", result.AnalyzeResult)
	}

	page := result.AnalyzeResult.ReadResults[0]
	if page.Page != 1 || page.Unit != "pixel" || page.Angle != 0.5 {
		t.Errorf("Unexpected page %+v", page)
	}
	if len(page.Lines) != 1 || page.Lines[0].Text != "Hello World" {
		t.Fatalf("Unexpected lines %+v", page.Lines)
	}
	if page.Lines[0].Appearance == nil || page.Lines[0].Appearance.Style.Name != "handwriting" {
		t.Errorf("Unexpected appearance %+v", page.Lines[0].Appearance)
	}

	words := page.Lines[0].Words
	if len(words) != 2 || words[0].Text != "Hello" || words[1].Confidence != 0.987 {
		t.Errorf("Unexpected words %+v", words)
	}
	if len(words[0].BoundingBox) != 8 {
		t.Errorf("Expected 8 bounding box coordinates, got %d", len(words[0].BoundingBox))
	}
}

func TestClient_GetReadResult_InvalidOperationID(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c, _ := New(server.URL, WithSubscriptionKey("test-key"))

	_, err := c.GetReadResult(context.Background(), "analyzeResults")
	if err == nil {
		t.Fatal("Expected error for malformed operation id")
	}
	if !strings.Contains(err.Error(), "invalid operation id") {
		t.Errorf("Unexpected error: %v", err)
	}
	if called {
		t.Error("Malformed operation id should not reach the service")
	}
}

func TestClient_GetReadResult_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte(`{"error": {"code": "NotFound", "message": "Operation not found."}}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	c, _ := New(server.URL, WithSubscriptionKey("test-key"))

	_, err := c.GetReadResult(context.Background(), testOperationID)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "NotFound" {
		t.Errorf("Unexpected API error %+v", apiErr)
	}
}

func TestOperationStatus_Terminal(t *testing.T) {
	tests := []struct {
		status   OperationStatus
		terminal bool
	}{
		{OperationStatusNotStarted, false},
		{OperationStatusRunning, false},
		{OperationStatusSucceeded, true},
		{OperationStatusFailed, true},
		{OperationStatus("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.Terminal() != tt.terminal {
				t.Errorf("Terminal() = %v, want %v", tt.status.Terminal(), tt.terminal)
			}
		})
	}
}
