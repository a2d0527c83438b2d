package card_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alexai/greeting-cards/internal/dto"
	"github.com/alexai/greeting-cards/internal/templates"
	"github.com/alexai/greeting-cards/internal/usecase/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func birthday(t *testing.T) templates.Template {
	t.Helper()

	tpl, err := templates.Resolve("Birthday")
	require.NoError(t, err)

	return tpl
}

func TestComposePrompt_AllFields(t *testing.T) {
	tpl := birthday(t)

	prompt := card.ComposePrompt(tpl, dto.CreateCardRequest{
		Template:  "Birthday",
		Recipient: "Mom",
		Message:   "Happy Birthday!",
		Date:      "2024-05-01",
		Details:   "balloons and cake",
	})

	assert.True(t, strings.HasPrefix(prompt, tpl.BasePrompt))
	assert.Contains(t, prompt, "The card should be made out to Mom.")
	assert.Contains(t, prompt, "The card should include the message 'Happy Birthday!'.")
	assert.Contains(t, prompt, "The date '2024-05-01' should be displayed.")
	assert.Contains(t, prompt, "Include these elements: balloons and cake.")
}

func TestComposePrompt_EmptyFieldsContributeNothing(t *testing.T) {
	tpl := birthday(t)

	prompt := card.ComposePrompt(tpl, dto.CreateCardRequest{Template: "Birthday"})

	assert.Equal(t, tpl.BasePrompt, prompt)
	assert.NotContains(t, prompt, "made out to")
	assert.NotContains(t, prompt, "include the message")
	assert.NotContains(t, prompt, "should be displayed")
	assert.NotContains(t, prompt, "Include these elements")
}

func TestComposePrompt_CollapsesWhitespace(t *testing.T) {
	tpl := birthday(t)

	prompt := card.ComposePrompt(tpl, dto.CreateCardRequest{
		Template:  "Birthday",
		Recipient: "  Aunt \n Sally  ",
	})

	assert.Contains(t, prompt, "The card should be made out to Aunt Sally.")
	assert.NotContains(t, prompt, "  ")
}

func TestComposePrompt_TruncatesDetailsFirst(t *testing.T) {
	tpl := birthday(t)

	prompt := card.ComposePrompt(tpl, dto.CreateCardRequest{
		Template:  "Birthday",
		Recipient: "Mom",
		Message:   "Happy Birthday!",
		Details:   strings.Repeat("x", 5000),
	})

	assert.LessOrEqual(t, len(prompt), card.MaxPromptLen)
	// details take the hit; the message survives untouched
	assert.Contains(t, prompt, "The card should include the message 'Happy Birthday!'.")
	assert.Contains(t, prompt, "The card should be made out to Mom.")
}

func TestComposePrompt_TruncatesMessageAfterDetails(t *testing.T) {
	tpl := birthday(t)

	prompt := card.ComposePrompt(tpl, dto.CreateCardRequest{
		Template:  "Birthday",
		Recipient: "Mom",
		Message:   strings.Repeat("m", 5000),
		Details:   strings.Repeat("x", 5000),
	})

	assert.LessOrEqual(t, len(prompt), card.MaxPromptLen)
	assert.True(t, strings.HasPrefix(prompt, tpl.BasePrompt))
	assert.Contains(t, prompt, "The card should be made out to Mom.")
}

func TestComposePrompt_TruncatesOnRuneBoundaries(t *testing.T) {
	tpl := birthday(t)

	// Sweep offsets so the byte budget lands inside multi-byte runes.
	for pad := 0; pad < 4; pad++ {
		for _, req := range []dto.CreateCardRequest{
			{
				Template: "Birthday",
				Message:  "Happy Birthday!",
				Details:  strings.Repeat("x", pad) + strings.Repeat("é", 3000),
			},
			{
				Template: "Birthday",
				Message:  strings.Repeat("x", pad) + strings.Repeat("漢", 3000),
				Details:  strings.Repeat("é", 3000),
			},
		} {
			prompt := card.ComposePrompt(tpl, req)

			assert.LessOrEqual(t, len(prompt), card.MaxPromptLen)
			assert.True(t, utf8.ValidString(prompt), "pad=%d details=%q...", pad, req.Details[:8])
		}
	}
}

func TestComposePrompt_Deterministic(t *testing.T) {
	tpl := birthday(t)
	req := dto.CreateCardRequest{Template: "Birthday", Recipient: "Mom", Message: "hi"}

	assert.Equal(t, card.ComposePrompt(tpl, req), card.ComposePrompt(tpl, req))
}
