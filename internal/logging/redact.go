package logging

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// secretKeyPatterns contains substrings that indicate a key likely holds
// sensitive data. Keys are matched case-insensitively.
var secretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"PASSWD",
	"API_KEY",
	"APIKEY",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
	"SESSION",
}

// tokenPrefixes contains known API token prefixes that mark a value as
// sensitive regardless of its key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghu_",
	"ghs_",
	"ghr_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
	"xoxa-",
	"xoxr-",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask reports whether the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// userinfoPassword finds the password of scheme://user:pass@ in strings
// net/url refuses to parse.
var userinfoPassword = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^/?#@:]*:([^/?#@]*)@`)

// MaskURL redacts credentials from a website target.
// Passwords in user info (user:pass@host) and query parameters whose names
// look sensitive (?token=...) are masked. Malformed URLs still get their
// password masked. Strings without a scheme are returned unchanged.
func MaskURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return maskRawUserinfo(rawURL)
	}
	if parsed.Scheme == "" {
		return rawURL
	}

	changed := false
	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), MaskValue(password))
			changed = true
		}
	}

	if parsed.RawQuery != "" {
		query := parsed.Query()
		for name, values := range query {
			if !ShouldMask(name) {
				continue
			}
			for i, v := range values {
				values[i] = MaskValue(v)
			}
			changed = true
		}
		if changed {
			parsed.RawQuery = query.Encode()
		}
	}

	if !changed {
		return rawURL
	}
	return parsed.String()
}

func maskRawUserinfo(rawURL string) string {
	m := userinfoPassword.FindStringSubmatchIndex(rawURL)
	if m == nil || m[2] == m[3] {
		return rawURL
	}
	return rawURL[:m[2]] + MaskValue(rawURL[m[2]:m[3]]) + rawURL[m[3]:]
}

// redactValue applies key, prefix and URL based masking to a log attribute.
func redactValue(key string, value any) any {
	if ShouldMask(key) {
		return MaskValue(toString(value))
	}
	s, ok := value.(string)
	if !ok {
		return value
	}
	if ContainsTokenPrefix(s) {
		return MaskValue(s)
	}
	if strings.Contains(s, "://") {
		return MaskURL(s)
	}
	return s
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
