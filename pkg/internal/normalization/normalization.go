// Package normalization provides text normalization utilities for game name matching and safe logging.
package normalization

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// leadingArticlePattern matches leading articles (a, an, the)
	leadingArticlePattern = regexp.MustCompile(`(?i)^(a|an|the)\b`)

	// commaArticlePattern matches comma-separated articles
	commaArticlePattern = regexp.MustCompile(`(?i),\s(a|an|the)\b(?:\s*[^\w\s]|$)`)

	// nonWordSpacePattern matches non-word, non-space characters
	nonWordSpacePattern = regexp.MustCompile(`[^\w\s]`)

	// multipleSpacePattern matches multiple consecutive spaces
	multipleSpacePattern = regexp.MustCompile(`\s+`)

	// sensitiveKeys is the set of keys that should be masked in URLs and headers
	sensitiveKeys = map[string]bool{
		"authorization": true,
		"client-id":     true,
		"client_id":     true,
		"client_secret": true,
		"access_token":  true,
		"igdbtoken":     true,
	}
)

// NormalizeSearchTerm normalizes a search term for comparison. It lowercases,
// replaces underscores, optionally drops articles and punctuation, and strips accents.
func NormalizeSearchTerm(name string, removeArticles, removePunctuation bool) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", " ")

	if removeArticles {
		name = leadingArticlePattern.ReplaceAllString(name, "")
		name = commaArticlePattern.ReplaceAllString(name, "")
	}

	if removePunctuation {
		name = nonWordSpacePattern.ReplaceAllString(name, " ")
		name = multipleSpacePattern.ReplaceAllString(name, " ")
	}

	if hasNonASCII(name) {
		name = removeAccents(name)
	}

	return strings.TrimSpace(name)
}

// NormalizeSearchTermDefault normalizes a search term removing articles and punctuation.
func NormalizeSearchTermDefault(name string) string {
	return NormalizeSearchTerm(name, true, true)
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

// removeAccents removes diacritical marks from Unicode characters.
func removeAccents(s string) string {
	normalized := norm.NFD.String(s)

	var result strings.Builder
	for _, r := range normalized {
		if !unicode.Is(unicode.Mn, r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// StripSensitiveQueryParams removes sensitive query parameters from a URL for logging.
func StripSensitiveQueryParams(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsedURL.Query()
	for key := range query {
		if sensitiveKeys[strings.ToLower(key)] {
			query.Del(key)
		}
	}

	parsedURL.RawQuery = query.Encode()
	return parsedURL.String()
}

// MaskToken keeps the first and last two characters of a secret.
func MaskToken(token string) string {
	if len(token) > 4 {
		return token[:2] + "***" + token[len(token)-2:]
	}
	if token == "" {
		return ""
	}
	return "***"
}

// MaskSensitiveValues masks sensitive values for safe logging.
func MaskSensitiveValues(values map[string]string) map[string]string {
	masked := make(map[string]string, len(values))

	for key, val := range values {
		switch {
		case val == "":
			masked[key] = ""
		case strings.EqualFold(key, "Authorization") && strings.HasPrefix(val, "Bearer "):
			masked[key] = "Bearer " + MaskToken(strings.TrimPrefix(val, "Bearer "))
		case sensitiveKeys[strings.ToLower(key)]:
			masked[key] = MaskToken(val)
		default:
			masked[key] = val
		}
	}

	return masked
}
