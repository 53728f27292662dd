package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"io"
	"net"
	nethttp "net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/gnt-io/rapi/internal/constants"
	"github.com/gnt-io/rapi/pkg/rapi"
)

// settings holds the knobs shared by both transport variants.
type settings struct {
	username      string
	password      string
	timeout       time.Duration
	skipTLSVerify bool
	userAgent     string
	debug         bool
	logger        rapi.Logger
}

func defaultSettings() settings {
	return settings{
		timeout:   constants.DefaultTimeout,
		userAgent: constants.UserAgent,
	}
}

// Option configures a transport.
type Option func(*settings)

// WithBasicAuth attaches HTTP Basic credentials to every request.
func WithBasicAuth(username, password string) Option {
	return func(s *settings) {
		s.username = username
		s.password = password
	}
}

// WithTimeout bounds each HTTP exchange.
func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithTLSVerification toggles certificate verification. RAPI deployments
// commonly serve self-signed certificates.
func WithTLSVerification(verify bool) Option {
	return func(s *settings) {
		s.skipTLSVerify = !verify
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(s *settings) {
		if userAgent != "" {
			s.userAgent = userAgent
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger rapi.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		s.debug = debug
	}
}

// Client is the blocking transport: each Do occupies its calling goroutine
// for the full round trip. The underlying connection pool is shared across
// all requests issued through one Client.
type Client struct {
	baseURL  string
	settings settings
	rc       *retryablehttp.Client
}

// NewClient creates a blocking transport for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	rc := retryablehttp.NewClient()
	rc.Logger = nil
	// The dispatch core never retries; failures surface to the caller.
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = s.timeout

	if s.skipTLSVerify {
		transport := rc.HTTPClient.Transport.(*nethttp.Transport)
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- RAPI deployments use self-signed certificates
	}

	return &Client{
		baseURL:  baseURL,
		settings: s,
		rc:       rc,
	}
}

// Do performs one synchronous HTTP exchange. A 200 response returns the body
// bytes; any other status returns the response together with a
// *rapi.StatusError carrying the code.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader

	if req.Body != nil {
		data, err := EncodeJSON(req.Body)
		if err != nil {
			return nil, err
		}

		body = bytes.NewReader(data)
	}

	fullURL := req.url(c.baseURL)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, &rapi.ConfigError{Reason: "building request: " + err.Error()}
	}

	setHeaders(httpReq.Header, &c.settings)

	if c.settings.debug && c.settings.logger != nil {
		c.settings.logger.Debug("sending request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	resp, err := c.rc.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(c.baseURL, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(c.baseURL, err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}

	if resp.StatusCode != nethttp.StatusOK {
		return response, &rapi.StatusError{
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(data)),
		}
	}

	return response, nil
}

// setHeaders attaches the fixed header set plus Basic auth when configured.
// Content-Type is part of the fixed set and is sent on every request, bodyless
// ones included.
func setHeaders(h nethttp.Header, s *settings) {
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	h.Set("User-Agent", s.userAgent)

	if s.username != "" && s.password != "" {
		h.Set("Authorization", basicAuth(s.username, s.password))
	}
}

func basicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// classifyTransportError maps I/O failures into the error taxonomy: exceeded
// deadlines become *rapi.TimeoutError, everything else *rapi.UnreachableError.
func classifyTransportError(baseURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &rapi.TimeoutError{URL: baseURL, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &rapi.TimeoutError{URL: baseURL, Err: err}
	}

	return &rapi.UnreachableError{URL: baseURL, Err: err}
}
