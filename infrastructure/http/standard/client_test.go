package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bookmarkcast-api/core/errors"
)

// newTestClient returns a client whose backoff waits are recorded instead of slept
func newTestClient(cfg Config) (*StandardHTTPClient, *[]time.Duration) {
	client := NewStandardHTTPClient(cfg)
	var delays []time.Duration
	client.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return ctx.Err()
	}
	return client, &delays
}

func TestNewStandardHTTPClient_Defaults(t *testing.T) {
	client := NewStandardHTTPClient(Config{})

	if client == nil {
		t.Fatal("NewStandardHTTPClient returned nil")
	}
	if client.client.Timeout != 15*time.Second {
		t.Errorf("Client timeout = %v, want 15s", client.client.Timeout)
	}
	if client.cfg.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", client.cfg.Attempts)
	}
	if client.cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want browser default", client.cfg.UserAgent)
	}
}

func TestStandardHTTPClient_Get_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	client, delays := newTestClient(DefaultConfig())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want %d", resp.StatusCode(), http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body())
	if string(body) != "<html>ok</html>" {
		t.Errorf("Body = %s, want '<html>ok</html>'", string(body))
	}
	if len(*delays) != 0 {
		t.Errorf("no backoff expected on success, got %v", *delays)
	}
}

func TestStandardHTTPClient_Get_BrowserHeaders(t *testing.T) {
	var userAgent, acceptLanguage string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		acceptLanguage = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, _ := newTestClient(DefaultConfig())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if !strings.Contains(userAgent, "Mozilla/5.0") {
		t.Errorf("User-Agent = %s, should look like a browser", userAgent)
	}
	if acceptLanguage != DefaultAcceptLanguage {
		t.Errorf("Accept-Language = %q, want %q", acceptLanguage, DefaultAcceptLanguage)
	}
}

func TestStandardHTTPClient_Get_RetriesThenSucceeds(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, delays := newTestClient(DefaultConfig())

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("Attempts = %d, want 3", got)
	}
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(*delays) != len(want) || (*delays)[0] != want[0] || (*delays)[1] != want[1] {
		t.Errorf("delays = %v, want %v", *delays, want)
	}
}

func TestStandardHTTPClient_Get_ExhaustsAttempts(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, delays := newTestClient(DefaultConfig())

	resp, err := client.Get(context.Background(), server.URL)
	if err == nil {
		resp.Body().Close()
		t.Fatal("Get should fail after exhausting attempts")
	}
	if !errors.IsFetch(err) {
		t.Fatalf("error should be a FetchError, got %T: %v", err, err)
	}

	fetchErr := err.(*errors.FetchError)
	if fetchErr.Attempts != 3 {
		t.Errorf("FetchError.Attempts = %d, want 3", fetchErr.Attempts)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("FetchError.StatusCode = %d, want 404", fetchErr.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("server saw %d attempts, want 3", got)
	}

	// One wait per failed attempt, strictly increasing
	want := []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second}
	if len(*delays) != len(want) {
		t.Fatalf("delays = %v, want %v", *delays, want)
	}
	for i := range want {
		if (*delays)[i] != want[i] {
			t.Errorf("delays = %v, want %v", *delays, want)
			break
		}
	}
}

func TestStandardHTTPClient_Get_TransportErrorsBackOff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, delays := newTestClient(DefaultConfig())

	_, err := client.Get(context.Background(), url)
	if !errors.IsFetch(err) {
		t.Fatalf("error should be a FetchError, got %T: %v", err, err)
	}
	if fetchErr := err.(*errors.FetchError); fetchErr.StatusCode != 0 || fetchErr.Attempts != 3 {
		t.Errorf("FetchError = %+v, want 3 attempts and no status", fetchErr)
	}
	if len(*delays) != 3 || (*delays)[2] != 3*time.Second {
		t.Errorf("delays = %v, want [1s 2s 3s]", *delays)
	}
}

func TestStandardHTTPClient_Get_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(Config{BaseDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, server.URL)
	if err == nil {
		t.Fatal("Get should return error when the context ends")
	}
	if !errors.IsFetch(err) {
		t.Errorf("error should be a FetchError, got %T", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Get should not wait out the backoff after cancellation")
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client, _ := newTestClient(DefaultConfig())

	resp, err := client.Get(context.Background(), "not a valid url")
	if err == nil {
		resp.Body().Close()
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Post_SendsHeaders(t *testing.T) {
	var capturedBody, auth, contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		capturedBody = string(body)
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(DefaultConfig())

	resp, err := client.Post(context.Background(), server.URL, strings.NewReader(`{"a":1}`), map[string]string{
		"Authorization": "Bearer key",
	})
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	defer resp.Body().Close()

	// Post never retries and hands back non-2xx responses
	if resp.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", resp.StatusCode())
	}
	if capturedBody != `{"a":1}` {
		t.Errorf("Captured body = %s", capturedBody)
	}
	if auth != "Bearer key" {
		t.Errorf("Authorization = %q, want 'Bearer key'", auth)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", contentType)
	}
}

func TestHTTPResponse_Header(t *testing.T) {
	resp := &httpResponse{
		headers: http.Header{
			"Content-Type": []string{"text/html"},
		},
	}

	if resp.Header("content-type") != "text/html" {
		t.Errorf("Header(content-type) = %s, want text/html", resp.Header("content-type"))
	}
	if resp.Header("Non-Existent") != "" {
		t.Errorf("Header(Non-Existent) = %s, want empty string", resp.Header("Non-Existent"))
	}
}
