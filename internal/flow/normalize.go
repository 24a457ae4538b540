package flow

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	prefixPattern   = regexp.MustCompile(`(?i)^(?:route|page|path|url|href|location)\s*[:=]\s*`)
	absolutePattern = regexp.MustCompile(`(?i)^(?:https?:)?//`)
)

// NormalizePageValue turns a raw target, URL or location string into a route
// path. It reports false when no path can be extracted.
//
// Relative strings without a leading slash fall back to everything from their
// first slash, so a label such as "Save/Cancel" yields "/Cancel".
func NormalizePageValue(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	value = strings.TrimSpace(prefixPattern.ReplaceAllString(value, ""))
	if value == "" {
		return "", false
	}

	var path string
	if absolutePattern.MatchString(value) {
		u, err := url.Parse(value)
		if err != nil {
			return "", false
		}
		if fragment := u.EscapedFragment(); strings.HasPrefix(fragment, "/") {
			path = stripQuery(fragment)
		} else {
			path = u.EscapedPath()
		}
	} else {
		var ok bool
		path, ok = relativePath(value)
		if !ok {
			return "", false
		}
	}

	return cleanPath(path), true
}

func relativePath(value string) (string, bool) {
	if idx := strings.Index(value, "#/"); idx >= 0 {
		return stripQuery(value[idx+1:]), true
	}

	value = stripQuery(value)
	if strings.HasPrefix(value, "/") {
		return value, true
	}
	if idx := strings.Index(value, "/"); idx >= 0 {
		return value[idx:], true
	}
	return "", false
}

func stripQuery(value string) string {
	if idx := strings.IndexAny(value, "?#"); idx >= 0 {
		return value[:idx]
	}
	return value
}

func cleanPath(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
