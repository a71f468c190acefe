package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func constHandler(status int) Handler {
	return HandlerFunc(func(context.Context, IO, []string) int {
		return status
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("a"))
	_, ok := r.Get("a")
	assert.False(t, ok)

	r.Register("b", constHandler(1))
	r.Register("a", constHandler(2))
	r.Register("b", constHandler(3))

	assert.True(t, r.Has("a"))
	assert.Equal(t, []string{"a", "b"}, r.Names())

	h, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, h.Main(context.Background(), NewLineBuffer(), nil), "last registration wins")
}
