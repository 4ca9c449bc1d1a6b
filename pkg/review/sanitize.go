package review

import "regexp"

// secretPattern scrubs one class of secret from outbound diffs.
type secretPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

var secretPatterns = []secretPattern{
	{
		name:        "anthropic_key",
		regex:       regexp.MustCompile(`sk-[a-zA-Z0-9_-]{8,}`),
		replacement: "sk-REDACTED",
	},
	{
		name:        "aws_access_key",
		regex:       regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		replacement: "AKIA_REDACTED",
	},
	{
		name:        "github_token",
		regex:       regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),
		replacement: "gh_REDACTED",
	},
	{
		name:        "bearer_token",
		regex:       regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._~+/-]{10,}=*`),
		replacement: "Bearer REDACTED",
	},
	{
		name:        "private_key_block",
		regex:       regexp.MustCompile(`(?s)-----BEGIN [A-Z ]*PRIVATE KEY-----.*?-----END [A-Z ]*PRIVATE KEY-----`),
		replacement: "-----REDACTED PRIVATE KEY-----",
	},
	{
		name:        "password_assignment",
		regex:       regexp.MustCompile(`(?i)(password|passwd|secret|api[-_]?key)(["']?\s*[:=]\s*["']?)[^\s"']{4,}`),
		replacement: "${1}${2}REDACTED",
	},
}

// Sanitize scrubs known secret shapes from a diff before it is sent
// to the review API.
func Sanitize(diff string) string {
	for _, p := range secretPatterns {
		diff = p.regex.ReplaceAllString(diff, p.replacement)
	}
	return diff
}
