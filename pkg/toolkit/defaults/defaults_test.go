package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllToolsInOrder(t *testing.T) {
	box, err := New(Config{WorkDir: t.TempDir()})
	require.NoError(t, err)

	want := []string{
		"Calculator",
		"Wikipedia",
		"WebSearch",
		"Weather",
		"WebScraper",
		"CodeRunner",
		"FileWriter",
		"FileReader",
	}

	assert.Equal(t, want, box.Names())
}

func TestNewToolsHaveDescriptionsAndHandlers(t *testing.T) {
	box, err := New(Config{WorkDir: t.TempDir()})
	require.NoError(t, err)

	for _, tool := range box.List() {
		assert.NotEmpty(t, tool.Description, "tool %s", tool.Name)
		assert.NotNil(t, tool.Handler, "tool %s", tool.Name)
	}
}
