package manifest

import (
	"fmt"
	"strings"
)

// TOMLEscape renders s safe inside a double-quoted TOML string: double
// quotes, backslashes, and control characters become \uXXXX escapes.
func TOMLEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '"' || r == '\\' || r < 0x20 {
			fmt.Fprintf(&b, `\u%04X`, r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
