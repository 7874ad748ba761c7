package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry_RegisterIsIdempotent(t *testing.T) {
	r := newStyleRegistry()

	r.Register(StyleBodyText, RunStyle{Font: "宋体", SizePt: 10.5})
	r.Register(StyleBodyText, RunStyle{Font: "黑体", SizePt: 99})

	require.Equal(t, 1, r.Len())
	style, ok := r.Get(StyleBodyText)
	require.True(t, ok)
	assert.Equal(t, "宋体", style.Font, "first registration wins")
}

func TestNewExporter_RegistersFixedStyleSet(t *testing.T) {
	e := NewExporter()

	for _, name := range []string{StyleHeading1, StyleHeading2, StyleBodyText, StyleEmphasis} {
		_, ok := e.styles.Get(name)
		assert.True(t, ok, name)
	}

	// Re-registering the defaults must not duplicate or replace anything.
	e.registerDefaultStyles()
	assert.Equal(t, 4, e.styles.Len())

	emphasis, _ := e.styles.Get(StyleEmphasis)
	assert.True(t, emphasis.Italic)
	assert.Equal(t, "B22222", emphasis.Color)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", cellText(nil))
	assert.Equal(t, "443", cellText(int64(443)))
	assert.Equal(t, "192.0.2.1", cellText("192.0.2.1"))
}
