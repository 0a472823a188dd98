package httpclient

import (
	"context"
	"net/http"
)

// DefaultUserAgent identifies the operator to the remote services.
// SEC EDGAR rejects requests that do not carry a contact string.
const DefaultUserAgent = "IR-Research-Bot contact@yourdomain.com"

// HTTPClient wraps an http.Client and stamps every request with a fixed identifying header
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewClient creates a new HTTP client that sends the given User-Agent.
// An empty userAgent falls back to DefaultUserAgent.
func NewClient(userAgent string) *HTTPClient {
	return NewClientWith(&http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, userAgent)
}

// NewClientWith wraps an existing http.Client
func NewClientWith(client *http.Client, userAgent string) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client:    client,
		userAgent: userAgent,
	}
}

// UserAgent returns the identifying header value sent with every request
func (c *HTTPClient) UserAgent() string {
	return c.userAgent
}

// Do executes an HTTP request with the identifying headers set
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
}
