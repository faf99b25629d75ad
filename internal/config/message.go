package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MessageVars holds variables for completion message expansion.
type MessageVars struct {
	Title    string
	Activity string
	Elapsed  string
	Count    int
}

// LoadCompletionMessage returns the completion message template based on
// configuration priority: CompletionMessageFile (load from file) >
// CompletionMessage (inline) > DefaultCompletionMessage.
// Returns an error if CompletionMessageFile is set but cannot be read.
func (p PlayerConfig) LoadCompletionMessage() (string, error) {
	if p.CompletionMessageFile != "" {
		content, err := os.ReadFile(p.CompletionMessageFile)
		if err != nil {
			return "", fmt.Errorf("load completion message file %q: %w", p.CompletionMessageFile, err)
		}
		return strings.TrimRight(string(content), "\n"), nil
	}

	if p.CompletionMessage != "" {
		return p.CompletionMessage, nil
	}

	return DefaultCompletionMessage, nil
}

// ExpandMessage performs variable substitution on a message template.
// Uses single-pass replacement so values containing placeholders are not
// expanded again.
// Supported variables: {{.Title}}, {{.Activity}}, {{.Elapsed}}, {{.Count}}
func ExpandMessage(template string, vars MessageVars) string {
	r := strings.NewReplacer(
		"{{.Title}}", vars.Title,
		"{{.Activity}}", vars.Activity,
		"{{.Elapsed}}", vars.Elapsed,
		"{{.Count}}", strconv.Itoa(vars.Count),
	)
	return r.Replace(template)
}
