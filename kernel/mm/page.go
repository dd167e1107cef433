package mm

import "math"

// Frame describes a physical memory page index. On this architecture
// physical addresses are 32 bits wide so a frame index always fits in
// the 20 high bits of a table entry.
type Frame uint32

const (
	// InvalidFrame is returned by allocators when they fail to reserve
	// the requested frame.
	InvalidFrame = Frame(math.MaxUint32)
)

// Valid returns true if this is a valid frame.
func (f Frame) Valid() bool {
	return f != InvalidFrame
}

// Address returns the physical memory address where this Frame begins.
func (f Frame) Address() uint32 {
	return uint32(f) << PageShift
}

// FrameFromAddress returns the Frame that contains the given physical
// address. Addresses that are not page-aligned are rounded down to the
// frame that contains them.
func FrameFromAddress(physAddr uint32) Frame {
	return Frame(physAddr >> PageShift)
}

// Page describes a virtual memory page index.
type Page uint32

// Address returns the virtual memory address where this Page begins.
func (p Page) Address() uint32 {
	return uint32(p) << PageShift
}

// PageFromAddress returns the Page that contains the given virtual
// address. Addresses that are not page-aligned are rounded down to the
// page that contains them.
func PageFromAddress(virtAddr uint32) Page {
	return Page(virtAddr >> PageShift)
}
