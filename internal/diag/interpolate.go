package diag

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([^{}]+?)\}\}`)

// Interpolate substitutes {{ name }} placeholders with values from data.
// Placeholders without a matching key are left untouched.
func Interpolate(text string, data map[string]any) string {
	if len(data) == 0 || !strings.Contains(text, "{{") {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		v, ok := data[name]
		if !ok {
			return match
		}
		return fmt.Sprint(v)
	})
}
