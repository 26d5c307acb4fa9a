package app

import "strings"

// Route is one navigable path. Protected routes go through the session
// check before their view mounts.
type Route struct {
	Pattern   string
	Protected bool
}

// The full route table. Patterns use ":name" segments for path parameters.
var routes = []Route{
	{Pattern: "/", Protected: false},
	{Pattern: "/login", Protected: false},
	{Pattern: "/register", Protected: false},
	{Pattern: "/dashboard", Protected: true},
	{Pattern: "/accounts", Protected: true},
	{Pattern: "/accounts/:id", Protected: true},
	{Pattern: "/transactions", Protected: true},
	{Pattern: "/budgets", Protected: true},
	{Pattern: "/goals", Protected: true},
	{Pattern: "/reports", Protected: true},
}

// matchRoute resolves a concrete path against the route table, extracting
// any path parameters. The second return is false for unknown paths.
func matchRoute(path string) (Route, map[string]string, bool) {
	segments := splitPath(path)
	for _, route := range routes {
		pattern := splitPath(route.Pattern)
		if len(pattern) != len(segments) {
			continue
		}
		params := map[string]string{}
		matched := true
		for i, part := range pattern {
			if strings.HasPrefix(part, ":") {
				params[part[1:]] = segments[i]
				continue
			}
			if part != segments[i] {
				matched = false
				break
			}
		}
		if matched {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
