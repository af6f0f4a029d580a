package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// URLValidationError represents a URL validation failure
type URLValidationError struct {
	Field   string
	Message string
	URL     string
}

func (e URLValidationError) Error() string {
	return fmt.Sprintf("%s: %s (url: %s)", e.Field, e.Message, e.URL)
}

// ValidateURL checks that a non-empty value is an absolute http(s) URL.
// Empty values pass; required-ness is the caller's decision.
func ValidateURL(urlString, fieldName string) error {
	if urlString == "" {
		return nil
	}

	parsedURL, err := url.Parse(urlString)
	if err != nil {
		return URLValidationError{Field: fieldName, Message: "invalid URL format", URL: urlString}
	}
	if parsedURL.Scheme == "" {
		return URLValidationError{Field: fieldName, Message: "URL must include a scheme (http:// or https://)", URL: urlString}
	}
	if parsedURL.Host == "" {
		return URLValidationError{Field: fieldName, Message: "URL must include a host", URL: urlString}
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return URLValidationError{Field: fieldName, Message: "URL scheme must be http or https", URL: urlString}
	}
	return nil
}

// ValidateAPIBaseURL validates the API root the client joins endpoints onto.
// A path prefix is allowed (reverse proxies mount the API under one), query
// parameters and fragments are not.
func ValidateAPIBaseURL(urlString string) error {
	const field = "api_url"
	if strings.TrimSpace(urlString) == "" {
		return URLValidationError{Field: field, Message: "URL is required", URL: urlString}
	}
	if err := ValidateURL(urlString, field); err != nil {
		return err
	}

	parsedURL, _ := url.Parse(urlString)
	if parsedURL.RawQuery != "" {
		return URLValidationError{Field: field, Message: "base URL must not contain query parameters", URL: urlString}
	}
	if parsedURL.Fragment != "" {
		return URLValidationError{Field: field, Message: "base URL must not contain a fragment", URL: urlString}
	}
	return nil
}
