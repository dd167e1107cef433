package paging

import "stinkos/kernel/mm"

const (
	// TableEntries is the number of entries in the page global directory
	// as well as in each page table. With 1024*1024 leaf entries of 4 KiB
	// pages, a fully populated directory spans the whole 4 GiB address
	// space.
	TableEntries = 1024

	// pgdIndexShift is the right shift that extracts the directory index
	// bits (22-31) from a virtual address.
	pgdIndexShift = 22

	// tableIndexMask masks the 10 table index bits of a virtual address
	// after it has been shifted right by mm.PageShift.
	tableIndexMask = TableEntries - 1

	// entryFlagsMask selects the flag bits (0-11) of a table entry. The
	// remaining bits always hold a 4 KiB-aligned physical address.
	entryFlagsMask = uint32(1)<<mm.PageShift - 1
)

// EntryFlag describes a flag that can be applied to a table entry. The bit
// positions are fixed by the x86 paging format and must be preserved exactly
// as the hardware walks these entries directly.
type EntryFlag uint32

const (
	// FlagPresent is set when the page is available in memory and not
	// swapped out.
	FlagPresent EntryFlag = 1 << iota

	// FlagRW is set if the page can be written to.
	FlagRW

	// FlagUserAccessible is set if user-mode code can access this page.
	// If not set only kernel code can access this page.
	FlagUserAccessible

	// FlagWriteThrough implies write-through caching when set and
	// write-back caching if cleared.
	FlagWriteThrough

	// FlagDoNotCache prevents this page from being cached if set.
	FlagDoNotCache

	// FlagAccessed is set by the CPU when this page is accessed.
	FlagAccessed

	// FlagDirty is set by the CPU when this page is modified.
	FlagDirty
)

// Entry describes a single 32-bit directory or page table entry. The 20 high
// bits hold a 4 KiB-aligned physical address (a page table's address for
// directory entries, a page frame's address for leaf entries) and the 12 low
// bits hold the entry's flags.
type Entry uint32

// NewEntry packs a physical address and a flag set into an Entry. The
// address must already be page-aligned; NewEntry does not validate this as
// its callers route every externally supplied address through Decompose.
func NewEntry(physAddr uint32, flags EntryFlag) Entry {
	return Entry(physAddr | uint32(flags))
}

// Address returns the physical address encoded in this entry.
func (e Entry) Address() uint32 {
	return uint32(e) &^ entryFlagsMask
}

// Flags returns the flag bits of this entry.
func (e Entry) Flags() EntryFlag {
	return EntryFlag(uint32(e) & entryFlagsMask)
}

// HasFlags returns true if this entry has all the input flags set.
func (e Entry) HasFlags(flags EntryFlag) bool {
	return e.Flags()&flags == flags
}

// HasAnyFlag returns true if this entry has at least one of the input flags set.
func (e Entry) HasAnyFlag(flags EntryFlag) bool {
	return e.Flags()&flags != 0
}

// SetFlags sets the input list of flags on this entry.
func (e *Entry) SetFlags(flags EntryFlag) {
	*e = Entry(uint32(*e) | uint32(flags))
}

// ClearFlags unsets the input list of flags from this entry.
func (e *Entry) ClearFlags(flags EntryFlag) {
	*e = Entry(uint32(*e) &^ uint32(flags))
}

// Frame returns the physical frame that this entry points to.
func (e Entry) Frame() mm.Frame {
	return mm.Frame(e.Address() >> mm.PageShift)
}

// SetFrame updates this entry to point to the given physical frame without
// touching its flag bits.
func (e *Entry) SetFrame(frame mm.Frame) {
	*e = Entry(uint32(*e)&entryFlagsMask | frame.Address())
}
