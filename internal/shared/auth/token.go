package auth

import (
	"net/http"
	"strings"
)

// HeaderAuthToken is the dedicated API token header accepted next to the Authorization bearer scheme.
const HeaderAuthToken = "X-AUTH-TOKEN"

// ExtractBearerToken extracts the API token from the Authorization header.
// It handles the "Bearer " prefix and returns an empty string if no token is present.
//
// Example:
//
//	token := ExtractBearerToken(request)
//	if token == "" {
//	    // Handle missing token
//	}
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader extracts the token from an Authorization header value.
// It handles the "Bearer " prefix and returns an empty string if no token is present.
//
// Example:
//
//	token := ExtractBearerTokenFromHeader("Bearer 31a023e212f116124a36af14ea0c1c3806eb9378")
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	const bearerPrefix = "Bearer "
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}

	// Also handle lowercase "bearer" for flexibility
	const bearerPrefixLower = "bearer "
	if strings.HasPrefix(strings.ToLower(header), bearerPrefixLower) {
		return strings.TrimSpace(header[len(bearerPrefixLower):])
	}

	return ""
}

// ExtractTokenFromQuery extracts a token from a URL query parameter.
func ExtractTokenFromQuery(r *http.Request, paramName string) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(paramName))
}

// ExtractToken attempts to extract a token from multiple sources in order:
// 1. Authorization header (Bearer token)
// 2. X-AUTH-TOKEN header
// 3. Query parameter, only when queryParam is not empty
//
// Returns the first non-empty token found.
func ExtractToken(r *http.Request, queryParam string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if r != nil {
		if token := strings.TrimSpace(r.Header.Get(HeaderAuthToken)); token != "" {
			return token
		}
	}
	if queryParam == "" {
		return ""
	}
	return ExtractTokenFromQuery(r, queryParam)
}
