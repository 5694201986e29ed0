package content_test

import (
	"strings"
	"testing"

	"github.com/msomdec/ocean-watch/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := content.Load()
	require.NoError(t, err)

	slugs := make([]string, 0, len(c.Pages()))
	for _, p := range c.Pages() {
		slugs = append(slugs, p.Slug)
		assert.NotEmpty(t, p.Title, "page %s", p.Slug)
		assert.NotEmpty(t, p.Body, "page %s", p.Slug)
	}
	assert.Equal(t, []string{
		"home", "plastic-pollution", "coral-bleaching", "overfishing",
		"ocean-temperature", "dashboard", "about",
	}, slugs)

	assert.Len(t, c.Topics(), 4)
}

func TestPageBodyRendersMarkdown(t *testing.T) {
	c, err := content.Load()
	require.NoError(t, err)

	about, ok := c.Page("about")
	require.True(t, ok)
	assert.Equal(t, "/about", about.Path)
	assert.True(t, strings.Contains(string(about.Body), "<h2>About Ocean Watch</h2>"), string(about.Body))

	plastic, ok := c.Page("plastic-pollution")
	require.True(t, ok)
	assert.Contains(t, string(plastic.Body), "<table>")

	_, ok = c.Page("missing")
	assert.False(t, ok)
}

func TestResolveLegacy(t *testing.T) {
	c, err := content.Load()
	require.NoError(t, err)

	assert.Equal(t, 10, c.LegacyCount())

	tests := map[string]string{
		"index.html":             "/",
		"plastic-pollution.html": "/plastic-pollution",
		"coral-bleaching.html":   "/coral-bleaching",
		"overfishing.html":       "/overfishing",
		"ocean-temperature.html": "/ocean-temperature",
		"dashboard.html":         "/dashboard",
		"about.html":             "/about",
		"join.html":              "/join",
		"join-success.html":      "/join/success",
		"members.html":           "/members",
	}
	for name, want := range tests {
		got, ok := c.ResolveLegacy(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	for _, name := range []string{"not-a-real-page", "about", "secret.html", "../about.html", ""} {
		_, ok := c.ResolveLegacy(name)
		assert.False(t, ok, name)
	}
}
