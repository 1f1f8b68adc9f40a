// Package fetch is the outbound HTTP layer shared by the HTML providers. It
// owns the fixed browser header set, the rate limiter and the retry policy,
// so extraction code above it never deals with transport concerns.
package fetch

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

type Client struct {
	hc       *http.Client
	referer  string
	limiter  *RateLimiter
	attempts int
	backoff  time.Duration
}

// NewClient returns a client that allows at most `requests` outbound calls
// per `window` and applies the standard header set to every request.
func NewClient(siteRoot string, requests int, window time.Duration) *Client {
	return &Client{
		hc:       &http.Client{Timeout: 30 * time.Second},
		referer:  strings.TrimRight(siteRoot, "/") + "/",
		limiter:  NewRateLimiter(requests, window),
		attempts: 3,
		backoff:  500 * time.Millisecond,
	}
}

// Do executes the request with the standard headers applied. Server errors
// and network errors are retried with linear backoff; any response outside
// the 2xx range is surfaced as an error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Referer", c.referer)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	var lastStatus int
	var err error
	for i := 1; i <= c.attempts; i++ {
		if i > 1 && req.GetBody != nil {
			if req.Body, err = req.GetBody(); err != nil {
				return nil, err
			}
		}
		c.limiter.Wait()

		var resp *http.Response
		resp, err = c.hc.Do(req)
		if err != nil {
			time.Sleep(c.backoff * time.Duration(i))
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		lastStatus = resp.StatusCode
		resp.Body.Close()
		if resp.StatusCode < 500 {
			break
		}
		time.Sleep(c.backoff * time.Duration(i))
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected status %d fetching %s", lastStatus, req.URL)
}

// Document fetches the request and parses the response body as HTML.
func (c *Client) Document(req *http.Request) (*goquery.Document, error) {
	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return goquery.NewDocumentFromReader(resp.Body)
}
