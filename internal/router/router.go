// Package router implements the path-pattern dispatcher that maps
// verb+path routes to handlers. Patterns are '/'-delimited sequences
// of literal segments and named parameter segments such as "{id}";
// matching is segment-wise with first-registered-route-wins on
// overlap. Dispatch is the single point where status lines and
// response bodies are written - handlers only return a Response.
package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// maxBodyBytes bounds how much of a request body dispatch will read.
const maxBodyBytes = 1 << 20

// HandlerFunc is a route handler. It receives the assembled request
// context and returns the response to write; it never touches the
// transport directly.
type HandlerFunc func(c *Context) Response

// Response is what a handler returns to dispatch. A zero Status is
// treated as 200. Body, when present, is JSON text.
type Response struct {
	Status int
	Body   string
}

// OK wraps a JSON body in a 200 Response.
func OK(body string) Response {
	return Response{Status: http.StatusOK, Body: body}
}

// BadRequest is the empty-bodied 400 used for request-shape
// validation failures.
func BadRequest() Response {
	return Response{Status: http.StatusBadRequest}
}

// segment is one position of a parsed route pattern: either a literal
// or a named parameter.
type segment struct {
	literal string
	param   string
}

// route is a registered (method, pattern, handler) triple. Routes are
// created at registration time and immutable afterwards.
type route struct {
	method   string
	pattern  string
	segments []segment
	handler  HandlerFunc
}

// Router holds the ordered route table and dispatches requests
// against it. Registration is not safe for concurrent use and is
// expected to complete before serving begins; dispatch is read-only
// and safe for concurrent requests.
type Router struct {
	logger *slog.Logger
	routes []route
}

// New creates an empty Router. If logger is nil, the process default
// is used.
func New(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger: logger.With(slog.String("component", "router")),
	}
}

// Register adds a route. Overlapping patterns are legal; the
// first-registered route wins at dispatch time.
func (r *Router) Register(method, pattern string, handler HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		pattern:  pattern,
		segments: parsePattern(pattern),
		handler:  handler,
	})
}

// Get registers a GET route.
func (r *Router) Get(pattern string, handler HandlerFunc) {
	r.Register(http.MethodGet, pattern, handler)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, handler HandlerFunc) {
	r.Register(http.MethodPost, pattern, handler)
}

// Put registers a PUT route.
func (r *Router) Put(pattern string, handler HandlerFunc) {
	r.Register(http.MethodPut, pattern, handler)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, handler HandlerFunc) {
	r.Register(http.MethodDelete, pattern, handler)
}

// Dispatch resolves method+path against the route table and runs the
// matched handler. Outcomes: no pattern matches the path at all ->
// 404 with a generic not-found marker; the path matches only under
// other methods -> 405 with no body; otherwise the first matching
// route's handler decides the response.
func (r *Router) Dispatch(ctx context.Context, method, path, rawQuery, rawBody string) Response {
	segs := splitPath(path)

	pathMatched := false
	for i := range r.routes {
		rt := &r.routes[i]
		bound, ok := rt.match(segs)
		if !ok {
			continue
		}
		if rt.method != method {
			pathMatched = true
			continue
		}

		c := newContext(ctx, bound, rawQuery, bodyFor(method, rawBody))
		resp := rt.handler(c)
		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		return resp
	}

	if pathMatched {
		return Response{Status: http.StatusMethodNotAllowed}
	}
	return Response{Status: http.StatusNotFound, Body: `{"error":"not found"}`}
}

// ServeHTTP adapts the Router to net/http. It is the single writer of
// the status line, Content-Type, and body for every dispatched
// request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var rawBody string
	if req.Body != nil {
		b, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
		if err != nil {
			r.logger.Warn("failed to read request body",
				"method", req.Method,
				"path", req.URL.Path,
				"error", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		rawBody = string(b)
	}

	resp := r.Dispatch(req.Context(), req.Method, req.URL.Path, req.URL.RawQuery, rawBody)

	if resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.Status)
	if resp.Body != "" {
		if _, err := io.WriteString(w, resp.Body); err != nil {
			r.logger.Error("failed to write response body", "error", err)
		}
	}

	r.logger.Debug("request dispatched",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.Status)
}

// parsePattern splits a pattern into matchable segments. A segment of
// the form "{name}" becomes a named parameter; everything else is a
// case-sensitive literal.
func parsePattern(pattern string) []segment {
	parts := splitPath(pattern)
	segs := make([]segment, len(parts))
	for i, p := range parts {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") && len(p) > 2 {
			segs[i] = segment{param: p[1 : len(p)-1]}
		} else {
			segs[i] = segment{literal: p}
		}
	}
	return segs
}

// splitPath splits a path on '/' after stripping the leading slash,
// so "/tasks/42" yields ["tasks", "42"]. A trailing slash produces a
// final empty segment, which no pattern segment matches except an
// empty literal.
func splitPath(p string) []string {
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// match reports whether the route's pattern matches the path
// segments, binding named parameters. Both sides must have the same
// segment count; parameter segments match any non-empty value.
func (rt *route) match(segs []string) (map[string]string, bool) {
	if len(rt.segments) != len(segs) {
		return nil, false
	}

	bound := make(map[string]string)
	for i, s := range rt.segments {
		switch {
		case s.param != "":
			if segs[i] == "" {
				return nil, false
			}
			bound[s.param] = segs[i]
		case s.literal != segs[i]:
			return nil, false
		}
	}
	return bound, true
}

// bodyFor returns the raw body for methods whose bodies participate
// in parameter merging (POST and PUT, per the form-urlencoded request
// contract), and "" for everything else.
func bodyFor(method, rawBody string) string {
	if method == http.MethodPost || method == http.MethodPut {
		return rawBody
	}
	return ""
}
