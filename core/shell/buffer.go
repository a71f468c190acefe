package shell

import "context"

// LineBuffer is a FIFO of text chunks that relays one stage's output to the
// next stage's input.
type LineBuffer struct {
	chunks []string
}

var _ IO = (*LineBuffer)(nil)

// NewLineBuffer creates an empty buffer.
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{}
}

// Push appends a chunk to the tail.
func (b *LineBuffer) Push(chunk string) {
	b.chunks = append(b.chunks, chunk)
}

// Pop removes and returns the head chunk, or "" if nothing is queued.
func (b *LineBuffer) Pop() string {
	if len(b.chunks) == 0 {
		return ""
	}
	head := b.chunks[0]
	b.chunks[0] = ""
	b.chunks = b.chunks[1:]
	return head
}

// Clear discards all queued chunks.
func (b *LineBuffer) Clear() {
	b.chunks = nil
}

// Len returns the number of queued chunks.
func (b *LineBuffer) Len() int {
	return len(b.chunks)
}

// ReadLine pops the next chunk, it never blocks.
func (b *LineBuffer) ReadLine(context.Context, ReadOptions) string {
	return b.Pop()
}

// Write pushes text as a single chunk, styles don't survive a pipe.
func (b *LineBuffer) Write(text string, _ Style) {
	b.Push(text)
}
