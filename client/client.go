package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Doer performs HTTP requests.
//
// The standard http.Client implements this interface.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Limiter interface{ Wait(context.Context) error }

func New(opts ...ClientOption) *Client {
	c := &Client{headers: make(http.Header)}
	return c.applyOptions(opts...)
}

type ClientOption func(c *Client)

func WithHttpClient(client HttpRequestDoer) ClientOption {
	return func(c *Client) { c.client = client }
}

func WithRateLimiter(l Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

type Client struct {
	client  HttpRequestDoer
	limiter Limiter
	headers http.Header
	host    string

	baseURL string
}

func (self *Client) applyOptions(opts ...ClientOption) *Client {
	for _, fn := range opts {
		fn(self)
	}

	if self.client == nil {
		self.client = &http.Client{}
	}

	return self
}

func (self *Client) WithBaseURL(url string) *Client {
	self.baseURL = url
	return self
}

func (self *Client) BaseURL() string {
	return self.baseURL
}

func (self *Client) WithUserAgent(ua string) *Client {
	return self.WithHeader("User-Agent", ua)
}

// WithHeader adds a header sent with every request. Host goes into
// http.Request.Host, net/http ignores it in the header map.
func (self *Client) WithHeader(name, value string) *Client {
	if http.CanonicalHeaderKey(name) == "Host" {
		self.host = value
	} else {
		self.headers.Set(name, value)
	}
	return self
}

func (self *Client) Headers() http.Header {
	h := self.headers.Clone()
	if self.host != "" {
		h.Set("Host", self.host)
	}
	return h
}

func (self *Client) URL(elem ...string) (string, error) {
	url, err := url.JoinPath(self.baseURL, elem...)
	if err != nil {
		return "", fmt.Errorf("join %q to %q: %w", elem, self.baseURL, err)
	}
	return url, nil
}

func (self *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create new GET request for %q: %w", url, err)
	}
	for name, values := range self.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	if self.host != "" {
		req.Host = self.host
	}

	if err := self.limitRate(ctx); err != nil {
		return nil, fmt.Errorf("rate limit GET %s: %w", url, err)
	}

	resp, err := self.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if err := decodeContent(resp); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	return resp, nil
}

func (self *Client) limitRate(ctx context.Context) error {
	if self.limiter != nil {
		if err := self.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait: %w", err)
		}
	}
	return nil
}

func (self *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := self.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode > maxExpectedStatusCode {
		return nil, fmt.Errorf("GET %s: %w", url, newUnexpectedStatusError(resp))
	}
	if err != nil {
		return nil, fmt.Errorf("read body from GET %s: %w", url, err)
	}
	return body, nil
}

// GetStream is Get which fails on unexpected status. Caller must close body of
// returned response.
func (self *Client) GetStream(ctx context.Context, url string,
) (*http.Response, error) {
	resp, err := self.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode > maxExpectedStatusCode {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", url, newUnexpectedStatusError(resp))
	}
	return resp, nil
}

func (self *Client) GetJSON(ctx context.Context, url string, value any) error {
	body, err := self.GetBody(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, value); err != nil {
		return fmt.Errorf("unmarshal GET %s: %w", url, err)
	}

	return nil
}

func (self *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := self.GetBody(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
