package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListParticipantsReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != PathListParticipants {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"10km":[]}`))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL + "/", HTTPClient: server.Client()}
	body, err := client.ListParticipants(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if string(body) != `{"10km":[]}` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestPostJSONSendsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"filePath":"/tmp/x"}` {
			t.Fatalf("unexpected body %s", body)
		}
		_, _ = w.Write([]byte("Started watching file: /tmp/x"))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	body, err := client.PostJSON(context.Background(), PathStartWatch, map[string]string{"filePath": "/tmp/x"})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if string(body) != "Started watching file: /tmp/x" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "File path is required", http.StatusBadRequest)
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL}
	_, err := client.PostJSON(context.Background(), PathStartWatch, map[string]string{"filePath": ""})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected code %d", statusErr.Code)
	}
	if got := Describe(err); got != "400 Bad Request: File path is required" {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := &Client{BaseURL: url}
	if _, err := client.ListParticipants(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestPostJSONEncodeFailure(t *testing.T) {
	client := &Client{BaseURL: "http://127.0.0.1:1"}
	_, err := client.PostJSON(context.Background(), PathStartWatch, func() {})
	if err == nil || !strings.Contains(err.Error(), "encode payload") {
		t.Fatalf("expected encode error, got %v", err)
	}
}

func TestOversizedResponseIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", maxResponseBody+1)))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	_, err := client.ListParticipants(context.Background())
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("expected ErrResponseTooLarge, got %v", err)
	}
	if !strings.HasPrefix(Describe(err), "response too large") {
		t.Fatalf("unexpected description %q", Describe(err))
	}
}

func TestResponseAtLimitIsAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", maxResponseBody)))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	body, err := client.PostJSON(context.Background(), PathStartWatch, map[string]string{})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if len(body) != maxResponseBody {
		t.Fatalf("expected %d bytes, got %d", maxResponseBody, len(body))
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("connection refused"), "connection refused"},
		{&StatusError{Code: 500, Status: "500 Internal Server Error"}, "500 Internal Server Error"},
		{&StatusError{Code: 502, Body: " down \n"}, "502 Bad Gateway: down"},
	}
	for _, tc := range cases {
		if got := Describe(tc.err); got != tc.want {
			t.Fatalf("Describe(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestPathsCoversEndpoints(t *testing.T) {
	if len(Paths()) != 4 {
		t.Fatalf("expected four endpoints, got %v", Paths())
	}
}
