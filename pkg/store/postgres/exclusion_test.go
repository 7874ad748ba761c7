package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinder_NotIn_EmptyListYieldsNoFragment(t *testing.T) {
	var b binder

	fragment := b.notIn("si.key", nil)

	assert.Equal(t, "", fragment)
	assert.Empty(t, b.args)
}

func TestBinder_NotIn_BindsOnePlaceholderPerValue(t *testing.T) {
	var b binder
	// Two placeholders are already taken by the time window.
	b.bind(int64(100))
	b.bind(int64(200))

	fragment := b.notIn("si.key", []string{"10.0.0.1", "10.0.0.2"})

	assert.Equal(t, "AND si.key NOT IN ($3, $4)", fragment)
	assert.Equal(t, []any{int64(100), int64(200), "10.0.0.1", "10.0.0.2"}, b.args)
}

func TestBinder_Bind_NumbersSequentially(t *testing.T) {
	var b binder

	assert.Equal(t, "$1", b.bind("a"))
	assert.Equal(t, "$2", b.bind("b"))
}
