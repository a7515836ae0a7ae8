package tint

import "sync"

// buffer is a reusable byte buffer for building log lines.
type buffer []byte

var bufPool = sync.Pool{
	New: func() any {
		b := make(buffer, 0, 1024)
		return &b
	},
}

// newBuffer returns a buffer from the pool.
func newBuffer() *buffer {
	return bufPool.Get().(*buffer)
}

// Free resets and returns the buffer to the pool.
func (b *buffer) Free() {
	*b = (*b)[:0]
	bufPool.Put(b)
}

// Write implements io.Writer.
func (b *buffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *buffer) WriteByte(c byte) error {
	*b = append(*b, c)
	return nil
}

// WriteString appends a string.
func (b *buffer) WriteString(s string) {
	*b = append(*b, s...)
}
