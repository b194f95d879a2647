package screening

import "strings"

// markdownEscaper neutralizes characters the rendering layer would interpret
// as markup and normalizes non-breaking spaces. Applied exactly once, at the
// model-response boundary.
var markdownEscaper = strings.NewReplacer(
	"*", `\*`,
	"_", `\_`,
	" ", " ", // non-breaking space
	"$", `\$`,
)

// EscapeMarkdown escapes model output for safe markdown rendering.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
