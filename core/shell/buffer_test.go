package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineBuffer(t *testing.T) {
	b := NewLineBuffer()
	assert.Equal(t, "", b.Pop(), "empty pop")

	b.Push("a")
	b.Write("b", Fg(ColorRed))
	b.Push("c")
	assert.Equal(t, 3, b.Len())

	assert.Equal(t, "a", b.Pop())
	assert.Equal(t, "b", b.ReadLine(context.Background(), ReadOptions{}))

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.Pop())
}

func TestIsEndOfInput(t *testing.T) {
	assert.True(t, IsEndOfInput("abc"+EndOfInput))
	assert.False(t, IsEndOfInput("abc"+Submit))
	assert.True(t, IsCompletion("ab"+Completion))
	assert.False(t, IsCompletion("ab"))
}
