package prompts

import "strings"

// Delimiter tokens the response parser splits on. Caller text must
// never be able to smuggle one in at line-start position, or it could
// overwrite a parsed field.
var delimiterTokens = []string{
	"SPECIALTIES:",
	"REASONING:",
	"URGENCY:",
	"EMERGENCY_ACTION:",
	"INTENT:",
	"KEY_TERMS:",
}

// sanitize neutralizes delimiter tokens appearing at the start of any
// line of caller-supplied text. The token keeps its words but loses the
// colon that makes it parseable. Returns the cleaned text and whether
// anything was defused.
func sanitize(text string) (string, bool) {
	flagged := false
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		for _, token := range delimiterTokens {
			if strings.HasPrefix(upper, token) {
				prefix := trimmed[:len(token)-1]
				lines[i] = prefix + " -" + trimmed[len(token):]
				flagged = true
				break
			}
		}
	}

	if !flagged {
		return text, false
	}
	return strings.Join(lines, "\n"), true
}
