package logger

import (
	"net/url"
	"regexp"
	"strings"
)

// Example: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	username, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}
	if username == "" {
		return "***@" + domain
	}

	// Keep only first character of username
	return username[:1] + "***@" + domain
}

var keywordPassword = regexp.MustCompile(`(?i)(password=)(\S+)`)

// MaskDSN hides the password of a connection string.
// Handles URL form (password becomes xxxxx) and keyword form (password=***).
func MaskDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return u.Redacted()
		}
	}
	return keywordPassword.ReplaceAllString(dsn, "${1}***")
}
