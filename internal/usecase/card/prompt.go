package card

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/templates"
)

// MaxPromptLen bounds the composed prompt. The generation backend's real limit
// is not documented, so this stays conservative.
const MaxPromptLen = 2000

// ComposePrompt appends one clause per non-empty request field to the
// template's base prompt. When the result would exceed MaxPromptLen the extra
// details are shrunk first, then the message; template, recipient and date
// always survive intact.
func ComposePrompt(tpl templates.Template, req dto.CreateCardRequest) string {
	message := collapse(req.Message)
	details := collapse(req.Details)

	prompt := assemble(tpl.BasePrompt, req.Recipient, message, req.Date, details)
	if len(prompt) <= MaxPromptLen {
		return prompt
	}

	details = shrink(details, len(prompt)-MaxPromptLen)
	prompt = assemble(tpl.BasePrompt, req.Recipient, message, req.Date, details)
	if len(prompt) <= MaxPromptLen {
		return prompt
	}

	message = shrink(message, len(prompt)-MaxPromptLen)
	prompt = assemble(tpl.BasePrompt, req.Recipient, message, req.Date, details)
	if len(prompt) > MaxPromptLen {
		prompt = strings.TrimSpace(truncate(prompt, MaxPromptLen))
	}

	return prompt
}

func assemble(base, recipient, message, date, details string) string {
	parts := []string{base}

	if recipient = collapse(recipient); recipient != "" {
		parts = append(parts, fmt.Sprintf("The card should be made out to %s.", recipient))
	}
	if message != "" {
		parts = append(parts, fmt.Sprintf("The card should include the message '%s'.", message))
	}
	if date = collapse(date); date != "" {
		parts = append(parts, fmt.Sprintf("The date '%s' should be displayed.", date))
	}
	if details != "" {
		parts = append(parts, fmt.Sprintf("Include these elements: %s.", details))
	}

	return collapse(strings.Join(parts, " "))
}

// collapse squeezes all whitespace runs to single spaces and trims the ends.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// shrink cuts at least by bytes off the end of s. Cutting a field to nothing
// drops its whole clause during reassembly.
func shrink(s string, by int) string {
	if by >= len(s) {
		return ""
	}

	return strings.TrimSpace(truncate(s, len(s)-by))
}

// truncate cuts s to at most n bytes, backing the cut off to a rune boundary
// so the result stays valid UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}

	return s[:n]
}
