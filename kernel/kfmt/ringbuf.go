package kfmt

import "io"

// ringBufferSize defines the size of the ring buffer that captures early
// Printf output. The default size is selected so the buffer can hold the
// contents of a standard 80x25 text-mode console. It must always be a
// power of 2.
const ringBufferSize = 2048

// ringBuffer buffers the output of Printf calls made before an output sink
// has been registered. Once a sink is installed the buffered data is drained
// into it by SetOutputSink.
type ringBuffer struct {
	buffer         [ringBufferSize]byte
	rIndex, wIndex int
}

// Write writes len(p) bytes from p to the ring buffer. When the buffer is
// full the oldest data is overwritten.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[rb.wIndex] = b
		rb.wIndex = (rb.wIndex + 1) & (ringBufferSize - 1)
		if rb.rIndex == rb.wIndex {
			rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read reads up to len(p) bytes into p. It returns the number of bytes read
// and io.EOF once the buffered data has been fully consumed.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.rIndex == rb.wIndex {
		return 0, io.EOF
	}

	// Read up to the write index or, if the data wraps around, up to the
	// end of the buffer; the next Read picks up the wrapped part.
	end := rb.wIndex
	if rb.rIndex > rb.wIndex {
		end = ringBufferSize
	}

	n := copy(p, rb.buffer[rb.rIndex:end])
	rb.rIndex = (rb.rIndex + n) & (ringBufferSize - 1)

	return n, nil
}
