package blockchain

import "regexp"

// Mask replaces secrets in endpoint URLs.
const Mask = "***"

var (
	apiKeySegment = regexp.MustCompile(`(/v[0-9]+/)([^/?#]+)`)
	userPassword  = regexp.MustCompile(`(://[^:/@]+:)([^@/]+)(@)`)
)

// MaskURL hides API keys embedded as a versioned path segment (https://host/v2/KEY)
// and passwords in the userinfo part of the URL.
func MaskURL(raw string) string {
	masked := apiKeySegment.ReplaceAllString(raw, "${1}"+Mask)
	return userPassword.ReplaceAllString(masked, "${1}"+Mask+"${3}")
}
