package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	nethttp "net/http"
	"sync"

	"github.com/gnt-io/rapi/pkg/rapi"
)

// Pending represents one in-flight exchange issued by the concurrent
// transport. It resolves exactly once, with either the completed response or
// a classified failure, and is never cancelled once issued.
type Pending struct {
	done chan struct{}
	once sync.Once
	resp *Response
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(resp *Response) {
	p.once.Do(func() {
		p.resp = resp
		close(p.done)
	})
}

func (p *Pending) reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done returns a channel closed when the exchange has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the exchange resolves or ctx expires. An expired ctx
// abandons the wait only; the exchange itself keeps running and the Pending
// still resolves for other waiters.
func (p *Pending) Wait(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AsyncClient is the concurrent transport: Call returns immediately and the
// exchange is driven by a background goroutine. Many requests can be in
// flight on one client; completion order follows network timing, not issue
// order, and a failure on one exchange never affects the others.
type AsyncClient struct {
	baseURL  string
	settings settings
	hc       *nethttp.Client
}

// NewAsyncClient creates a concurrent transport for the given base URL.
func NewAsyncClient(baseURL string, opts ...Option) *AsyncClient {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	transport := nethttp.DefaultTransport.(*nethttp.Transport).Clone()
	if s.skipTLSVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- RAPI deployments use self-signed certificates
	}

	return &AsyncClient{
		baseURL:  baseURL,
		settings: s,
		hc: &nethttp.Client{
			Timeout:   s.timeout,
			Transport: transport,
		},
	}
}

// Call issues the exchange and returns its Pending handle immediately.
//
// A non-200 status resolves the handle as soon as the response headers
// arrive, without reading the body. On a 200 the body is accumulated chunk
// by chunk and checked as JSON only once the stream completes; there is no
// partial decode.
func (c *AsyncClient) Call(ctx context.Context, req *Request) *Pending {
	pending := newPending()

	var body io.Reader

	if req.Body != nil {
		data, err := EncodeJSON(req.Body)
		if err != nil {
			pending.reject(err)

			return pending
		}

		body = bytes.NewReader(data)
	}

	fullURL := req.url(c.baseURL)

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		pending.reject(&rapi.ConfigError{Reason: "building request: " + err.Error()})

		return pending
	}

	setHeaders(httpReq.Header, &c.settings)

	if c.settings.debug && c.settings.logger != nil {
		c.settings.logger.Debug("sending request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	go c.run(httpReq, pending)

	return pending
}

func (c *AsyncClient) run(httpReq *nethttp.Request, pending *Pending) {
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		pending.reject(classifyTransportError(c.baseURL, err))

		return
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != nethttp.StatusOK {
		pending.reject(&rapi.StatusError{StatusCode: resp.StatusCode})

		return
	}

	data, err := accumulate(resp.Body)
	if err != nil {
		pending.reject(classifyTransportError(c.baseURL, err))

		return
	}

	if len(data) > 0 {
		if err := validJSON(data); err != nil {
			pending.reject(err)

			return
		}
	}

	pending.resolve(&Response{StatusCode: resp.StatusCode, Body: data})
}

// accumulate drains the stream into one buffer, tolerating zero or more
// partial chunks.
func accumulate(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer

	chunk := make([]byte, 32*1024)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}

		if err == io.EOF {
			return buf.Bytes(), nil
		}

		if err != nil {
			return nil, err
		}
	}
}

// Do adapts the concurrent transport to the Doer contract by issuing the
// exchange and waiting for its resolution.
func (c *AsyncClient) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.Call(ctx, req).Wait(ctx)
}
