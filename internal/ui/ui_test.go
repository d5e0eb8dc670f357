package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░   0%", ProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(50, 10))
	assert.Equal(t, "██████████ 100%", ProgressBar(140, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(-3, 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ñññ...", Truncate("ññññññññ", 6))
}

func TestPanelAndThemes(t *testing.T) {
	defer SetTheme("classic")

	SetTheme("mono")
	assert.Equal(t, "[x]", Current().BoxChecked)
	out := Panel([]string{"one", "two"})
	assert.True(t, strings.HasPrefix(out, "┌"), out)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")

	SetTheme("neon")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("whatever")
	assert.Equal(t, "classic", Current().Name)
}

func TestOKFail(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	OK(&buf, "added")
	Fail(&buf, "nope")
	assert.Equal(t, "✔ added\n✖ nope\n", buf.String())
}
