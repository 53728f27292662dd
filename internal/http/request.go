// Package http implements the request-dispatch core of the RAPI client:
// a blocking transport and a concurrent transport behind one Doer contract,
// plus the deterministic JSON body codec they share.
package http

import (
	"context"
	"net/url"
)

// Request describes one HTTP exchange before dispatch. Body, when non-nil,
// is encoded to canonical JSON by the transport.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Response holds one completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body into out. An empty body returns
// rapi.ErrNoContent and leaves out untouched.
func (r *Response) JSON(out interface{}) error {
	return DecodeJSON(r.Body, out)
}

// Doer is the transport contract the endpoint catalogue depends on. Both
// transport variants satisfy it with identical semantics: a 200 response
// yields the body, any other status yields *rapi.StatusError, transport
// failures yield *rapi.UnreachableError or *rapi.TimeoutError.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// url assembles the full request URL for a transport.
func (r *Request) url(base string) string {
	u := base + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	return u
}
