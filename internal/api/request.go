package api

import (
	"context"
	"net/http"
	"net/url"
)

// Request describes one logical API call: method, path, optional query
// parameters, and an optional JSON body. A Request is immutable once
// constructed; the dispatcher never modifies it.
//
// Query keys with absent values are simply never set, so they are omitted
// from the wire. Body is marshalled to JSON and is ignored for GET.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
}

// Convenience wrappers used by the per-resource endpoint methods.

func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, result)
}

func (c *Client) delete(ctx context.Context, path string, result interface{}) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, result)
}
