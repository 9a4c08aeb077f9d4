package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

func TestRenderBannerIncludesSubtitleAndNoOSC(t *testing.T) {
	out := RenderBanner()
	assert.NotContains(t, out, "\x1b]")

	clean := components.SanitizeText(out)
	assert.Contains(t, clean, "Brasil Rental Karts")
	assert.Contains(t, clean, "Championship Console")
	assert.Contains(t, clean, "─")
}
