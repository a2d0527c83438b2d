// Package templates holds the fixed set of occasion templates. The registry is
// read-only after process start; adding an occasion is a code change.
package templates

import (
	"fmt"

	"github.com/alexai/greeting-cards/pkg/types/errs"
)

type Template struct {
	Name        string
	BasePrompt  string
	AspectRatio string
	Description string
}

const aspect16x9 = "16:9"

var registry = []Template{
	{
		Name:        "Birthday",
		BasePrompt:  "A vibrant, celebratory birthday scene with colorful balloons, confetti, and a festive atmosphere. Warm lighting, joyful colors including pink, gold, and blue. Shot in high-quality digital photography style with bokeh effect.",
		AspectRatio: aspect16x9,
		Description: "Perfect for birthday celebrations with colorful and festive elements",
	},
	{
		Name:        "Christmas",
		BasePrompt:  "A cozy Christmas scene with decorated pine tree, warm fireplace, snow falling outside window, red and gold ornaments, twinkling lights. Nostalgic winter holiday atmosphere with rich textures and warm color palette. Shot in cinematic film style.",
		AspectRatio: aspect16x9,
		Description: "Warm holiday scene with Christmas tree and festive decorations",
	},
	{
		Name:        "Halloween",
		BasePrompt:  "A spooky yet charming Halloween scene with carved pumpkins, autumn leaves, vintage lanterns casting warm orange glow, misty atmosphere. Gothic aesthetic with orange, purple, and black color scheme. Atmospheric fog and dramatic lighting.",
		AspectRatio: aspect16x9,
		Description: "Spooky autumn scene with pumpkins and mysterious atmosphere",
	},
	{
		Name:        "Easter",
		BasePrompt:  "A cheerful Easter scene with pastel colors, decorated eggs in basket, spring flowers blooming, soft morning sunlight, meadow setting. Gentle, dreamy photography style with soft focus. Colors: soft pink, lavender, mint green, and cream.",
		AspectRatio: aspect16x9,
		Description: "Springtime scene with Easter eggs and blooming flowers",
	},
	{
		Name:        "Valentine's Day",
		BasePrompt:  "A romantic Valentine's Day scene with roses, soft candlelight, elegant table setting, dreamy bokeh lights in background. Rich reds and soft pinks, luxurious and intimate atmosphere. Professional photography with shallow depth of field.",
		AspectRatio: aspect16x9,
		Description: "Romantic scene with roses and elegant candlelit setting",
	},
	{
		Name:        "Thanksgiving",
		BasePrompt:  "A warm Thanksgiving scene with harvest table, autumn decorations, pumpkins, golden wheat, warm candles, rustic wooden setting. Rich autumn colors: orange, burgundy, gold, brown. Cozy family gathering atmosphere.",
		AspectRatio: aspect16x9,
		Description: "Harvest scene with autumn colors and cozy atmosphere",
	},
	{
		Name:        "New Year",
		BasePrompt:  "An elegant New Year's celebration scene with champagne glasses, fireworks, golden confetti, clock showing midnight, sophisticated party setting. Luxurious color palette: gold, silver, black, deep blue. Celebratory and hopeful atmosphere.",
		AspectRatio: aspect16x9,
		Description: "Sophisticated celebration with champagne and fireworks",
	},
	{
		Name:        "Graduation",
		BasePrompt:  "An inspiring graduation scene with cap and diploma, books, achievement symbols, bright future ahead imagery. Colors: traditional academic blue, gold, white. Uplifting and proud atmosphere with professional photography style.",
		AspectRatio: aspect16x9,
		Description: "Academic achievement scene with cap and diploma",
	},
	{
		Name:        "Wedding",
		BasePrompt:  "An elegant wedding scene with beautiful floral arrangements, soft romantic lighting, elegant venue details, delicate lace and fabric textures. Soft color palette: ivory, blush pink, champagne, sage green. Dreamy and romantic atmosphere.",
		AspectRatio: aspect16x9,
		Description: "Elegant romantic scene with flowers and soft lighting",
	},
	{
		Name:        "Thank You",
		BasePrompt:  "A warm, appreciative scene with elegant flowers in vase, handwritten note aesthetic, natural morning light through window, cozy interior setting. Soft, grateful atmosphere with cream, sage, and gold tones.",
		AspectRatio: aspect16x9,
		Description: "Warm scene expressing gratitude with flowers and elegant details",
	},
}

var byName = func() map[string]Template {
	m := make(map[string]Template, len(registry))
	for _, t := range registry {
		m[t.Name] = t
	}
	return m
}()

// Resolve returns the template registered under name.
func Resolve(name string) (Template, error) {
	t, ok := byName[name]
	if !ok {
		return Template{}, fmt.Errorf("templates - Resolve - %q: %w", name, errs.ErrUnknownTemplate)
	}

	return t, nil
}

// All returns the templates in registry order.
func All() []Template {
	out := make([]Template, len(registry))
	copy(out, registry)

	return out
}

// Names returns the template names in registry order.
func Names() []string {
	names := make([]string, len(registry))
	for i, t := range registry {
		names[i] = t.Name
	}

	return names
}
