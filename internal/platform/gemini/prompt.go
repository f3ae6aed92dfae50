package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/scry-decks/internal/generation"
)

//go:embed prompt.tmpl
var promptSource string

var promptTemplate = template.Must(template.New("flashcards").Parse(promptSource))

// createPrompt renders the prompt for text. Blank text is generation.ErrEmptyText.
func createPrompt(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", generation.ErrEmptyText
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, promptData{Text: text}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
