package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingField is returned by Context.GetRequired when a required
// parameter is absent or blank. Handlers translate it into an empty
// 400 response.
var ErrMissingField = errors.New("missing required field")

// Context is the uniform request context handed to handlers.
//
// PathParams holds only the parameters bound from the path pattern.
// Params is the merged view of every input channel, assembled with
// later sources overriding earlier ones: path parameters, then
// decoded query-string pairs, then decoded form-urlencoded body pairs.
type Context struct {
	ctx context.Context

	PathParams map[string]string
	Params     map[string]string
}

// newContext assembles the merged parameter mapping for one request.
// Query and body strings are percent-decoded k=v pairs; malformed
// pairs are dropped rather than failing the whole request.
func newContext(ctx context.Context, pathParams map[string]string, rawQuery, rawBody string) *Context {
	params := make(map[string]string, len(pathParams))
	for k, v := range pathParams {
		params[k] = v
	}
	mergePairs(params, rawQuery)
	mergePairs(params, rawBody)

	return &Context{
		ctx:        ctx,
		PathParams: pathParams,
		Params:     params,
	}
}

// Context returns the request-scoped context for downstream calls.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// GetRequired returns the named merged parameter, or ErrMissingField
// if it is absent or blank. The value itself is returned verbatim;
// only the presence check trims whitespace.
func (c *Context) GetRequired(name string) (string, error) {
	v, ok := c.Params[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	return v, nil
}

// mergePairs decodes raw as percent-encoded k=v pairs joined by '&'
// and merges the first value of each key into dst, overriding any
// existing entry. url.ParseQuery decodes what it can even on error,
// so a single malformed pair does not discard the rest.
func mergePairs(dst map[string]string, raw string) {
	if raw == "" {
		return
	}
	values, _ := url.ParseQuery(raw)
	for k, vs := range values {
		if len(vs) > 0 {
			dst[k] = vs[0]
		}
	}
}
