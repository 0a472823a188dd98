package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_Get_SetsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("Research Desk research@example.com")
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if got != "Research Desk research@example.com" {
		t.Errorf("Expected custom User-Agent, got %q", got)
	}
}

func TestNewClient_DefaultUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	client := NewClient("")
	if client.UserAgent() != DefaultUserAgent {
		t.Fatalf("UserAgent() = %q, want %q", client.UserAgent(), DefaultUserAgent)
	}

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if got != DefaultUserAgent {
		t.Errorf("Expected default User-Agent %q, got %q", DefaultUserAgent, got)
	}
}

func TestHTTPClient_Get_StopsAfterTenRedirects(t *testing.T) {
	hops := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, server.URL+"/loop", http.StatusFound)
	}))
	defer server.Close()

	resp, err := NewClient("").Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected last redirect response to be returned, got status %d", resp.StatusCode)
	}
	if hops != 10 {
		t.Errorf("Expected 10 requests before redirects stop, got %d", hops)
	}
}
