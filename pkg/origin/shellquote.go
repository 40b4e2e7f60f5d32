package origin

import (
	"regexp"
	"strings"
)

// Quote returns s as a double-quoted shell word with `"` and `\`
// backslash-escaped. Emitted scripts always interpolate values in double
// quotes, so shell variable references inside s keep working.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

var safeWord = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// QuoteLiteral returns s as a fully POSIX-quoted shell literal with no
// variable interpolation, for consumers that need a shell-safe constant.
func QuoteLiteral(s string) string {
	if s == "" {
		return "''"
	}
	if safeWord.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
