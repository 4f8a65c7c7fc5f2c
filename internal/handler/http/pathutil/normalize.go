package pathutil

import "strings"

// routes are the parameterised routes of the API in match order. A segment
// starting with ':' is a parameter; ":id" only matches decimal digits. A
// trailing "*" matches one or more remaining segments.
var routes = compileRoutes(
	"/posts/user/me",
	"/posts/user/:userId",
	"/posts/book/:isbn",
	"/posts/:id",
	"/books/:isbn",
	"/swagger/*",
)

// staticRoutes are served as-is and need no template.
var staticRoutes = []string{"/posts", "/books", "/profiles/me", "/health", "/ready", "/live", "/metrics"}

type route struct {
	template string
	segments []string
}

func compileRoutes(templates ...string) []route {
	out := make([]route, 0, len(templates))
	for _, t := range templates {
		out = append(out, route{template: t, segments: strings.Split(strings.Trim(t, "/"), "/")})
	}
	return out
}

func (rt route) match(segments []string) bool {
	if n := len(rt.segments); rt.segments[n-1] == "*" {
		if len(segments) < n {
			return false
		}
		segments = segments[:n-1]
		return route{segments: rt.segments[:n-1]}.match(segments)
	}
	if len(segments) != len(rt.segments) {
		return false
	}
	for i, want := range rt.segments {
		got := segments[i]
		switch {
		case want == ":id":
			if !isDigits(got) {
				return false
			}
		case strings.HasPrefix(want, ":"):
			if got == "" {
				return false
			}
		case got != want:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizePath maps a request path onto its route template so the metrics
// path label stays bounded: "/posts/123?take=5" and "/posts/123/" both become
// "/posts/:id". Paths matching no route are returned without query or
// trailing slash.
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for _, rt := range routes {
		if rt.match(segments) {
			return rt.template
		}
	}
	return path
}

// GetExpectedCardinality is the number of distinct labels NormalizePath
// yields for known routes.
func GetExpectedCardinality() int {
	return len(routes) + len(staticRoutes)
}
