package fetch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientAppliesBrowserHeaders(t *testing.T) {
	var gotReferer, gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer server.Close()

	c := NewClient("https://kiryuu03.com/", 100, time.Second)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do() failed: %v", err)
	}
	resp.Body.Close()

	if gotReferer != "https://kiryuu03.com/" {
		t.Errorf("Referer = %q, want the site root with a trailing slash", gotReferer)
	}
	if !strings.Contains(gotUA, "Chrome/120") {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "boom", http.StatusBadGateway)
			return
		}
		io.WriteString(w, "ok")
	}))
	defer server.Close()

	c := NewClient(server.URL, 100, time.Second)
	c.backoff = time.Millisecond
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do() should succeed on the third attempt: %v", err)
	}
	defer resp.Body.Close()

	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("Expected 3 attempts, got %d", n)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("Body = %q", body)
	}
}

func TestClientRewindsBodyOnRetry(t *testing.T) {
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if len(bodies) < 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, 100, time.Second)
	c.backoff = time.Millisecond
	req, _ := http.NewRequest(http.MethodPost, server.URL, strings.NewReader("payload"))
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("Do() failed: %v", err)
	}
	resp.Body.Close()

	if len(bodies) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(bodies))
	}
	if bodies[1] != "payload" {
		t.Errorf("Retried request body = %q, want the original payload", bodies[1])
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL, 100, time.Second)
	c.backoff = time.Millisecond
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if _, err := c.Do(req); err == nil {
		t.Fatal("Expected an error for a 404 response")
	} else if !strings.Contains(err.Error(), "404") {
		t.Errorf("Error should carry the status code, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("4xx responses must not be retried, got %d attempts", n)
	}
}

func TestClientDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><h1>Title</h1></body></html>`)
	}))
	defer server.Close()

	c := NewClient(server.URL, 100, time.Second)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	doc, err := c.Document(req)
	if err != nil {
		t.Fatalf("Document() failed: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Title" {
		t.Errorf("Parsed h1 = %q", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, 100*time.Millisecond)

	start := time.Now()
	rl.Wait()
	rl.Wait()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("First two permits should be immediate, took %v", elapsed)
	}

	rl.Wait()
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("Third permit should wait for the window, took %v", elapsed)
	}
}
