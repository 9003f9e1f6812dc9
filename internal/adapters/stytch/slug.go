package stytch

import "strings"

// slugify lowercases a name and collapses runs of non-alphanumerics into
// single hyphens. "Test Org" becomes "test-org".
func slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
