package templates_test

import (
	"errors"
	"testing"

	"github.com/alexai/greeting-cards/internal/templates"
	"github.com/alexai/greeting-cards/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AllOccasions(t *testing.T) {
	names := []string{
		"Birthday", "Christmas", "Halloween", "Easter", "Valentine's Day",
		"Thanksgiving", "New Year", "Graduation", "Wedding", "Thank You",
	}

	for _, name := range names {
		tpl, err := templates.Resolve(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tpl.Name)
		assert.Equal(t, "16:9", tpl.AspectRatio)
		assert.NotEmpty(t, tpl.BasePrompt)
		assert.NotEmpty(t, tpl.Description)
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := templates.Resolve("Unknown")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownTemplate))
}

func TestResolve_CaseSensitive(t *testing.T) {
	_, err := templates.Resolve("birthday")

	assert.ErrorIs(t, err, errs.ErrUnknownTemplate)
}

func TestAll_StableOrder(t *testing.T) {
	first := templates.All()
	second := templates.All()

	require.Len(t, first, 10)
	assert.Equal(t, first, second)

	// mutating the returned slice must not leak into the registry
	first[0].Name = "mutated"
	assert.Equal(t, "Birthday", templates.All()[0].Name)
}

func TestNames_MatchesAll(t *testing.T) {
	all := templates.All()
	names := templates.Names()

	require.Len(t, names, len(all))
	for i, tpl := range all {
		assert.Equal(t, tpl.Name, names[i])
	}
}
