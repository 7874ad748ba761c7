package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPie_WritesPNG(t *testing.T) {
	// Given
	r := NewRenderer()
	dir := t.TempDir()
	slices := []Slice{
		{Label: "SQL注入攻击", Value: 50},
		{Label: "XSS跨站脚本攻击", Value: 30},
		{Label: "扫描器探测", Value: 20},
	}

	// When
	path, err := r.Pie(slices, dir)

	// Then
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attack_type_chart.png"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPie_SkipsNonPositiveValues(t *testing.T) {
	r := NewRenderer()

	path, err := r.Pie([]Slice{{Label: "a", Value: 10}, {Label: "b", Value: 0}}, t.TempDir())

	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestPie_NoDataIsAnError(t *testing.T) {
	r := NewRenderer()

	_, err := r.Pie(nil, t.TempDir())
	assert.Error(t, err)

	_, err = r.Pie([]Slice{{Label: "a", Value: 0}}, t.TempDir())
	assert.Error(t, err)
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "短标签", truncateLabel("短标签", 20))
	assert.Equal(t, "四字标签", truncateLabel("四字标签超出", 4))
}
