package paging

import (
	"stinkos/kernel"
	"stinkos/kernel/kfmt"
	"stinkos/kernel/mm"
)

var (
	// ErrInvalidAddress is returned when a virtual address supplied to an
	// indexing or mutation operation is not page-aligned. Callers should
	// treat it as a programming error to be fixed upstream rather than a
	// condition to retry.
	ErrInvalidAddress = &kernel.Error{Module: "paging", Message: "virtual address is not page-aligned"}

	// panicFn is used by tests to intercept the fatal path taken when
	// the allocator cannot provide memory for the core tables.
	panicFn = kfmt.Panic
)

// Decompose splits a virtual address into its directory and page table
// indices. It fails with ErrInvalidAddress unless virtAddr is a multiple
// of the page size. This is the single alignment-enforcement point; every
// operation that accepts a virtual address routes through it instead of
// duplicating the check.
//
// For any address it accepts, pgdIndex*1024*PageSize +
// tableIndex*PageSize reconstructs the address exactly.
func Decompose(virtAddr uint32) (pgdIndex, tableIndex uint32, err *kernel.Error) {
	if !mm.IsAligned(virtAddr) {
		return 0, 0, ErrInvalidAddress
	}

	return virtAddr >> pgdIndexShift, (virtAddr >> mm.PageShift) & tableIndexMask, nil
}

// AddressSpace owns a page global directory together with the 1024 page
// tables its entries point to. Handles returned by NewIdentitySpace are
// always fully populated; a partially built directory never escapes this
// package and can therefore never become the active translation root.
type AddressSpace struct {
	alloc Allocator

	pgd     *Table
	pgdPhys uint32
}

// NewIdentitySpace allocates a page global directory and 1024 page tables
// and populates every leaf entry with an identity mapping (virtual address
// equals physical address) over the full 4 GiB range, tagged with the
// supplied flags. Directory entries are additionally marked writable
// regardless of flags so that SetEntry can later reach any leaf through
// this directory no matter which per-page flags were chosen.
//
// Failure to allocate table memory is fatal: the kernel cannot run without
// its core translation tables, so the error is reported through the kernel
// panic path instead of a partially built space being returned.
func NewIdentitySpace(alloc Allocator, flags EntryFlag) *AddressSpace {
	pgd, err := alloc.NewTable()
	if err != nil {
		panicFn(err)
	}

	var pageAddr uint32
	for i := 0; i < TableEntries; i++ {
		table, err := alloc.NewTable()
		if err != nil {
			panicFn(err)
		}

		for b := 0; b < TableEntries; b++ {
			table[b] = NewEntry(pageAddr, flags)
			pageAddr += mm.PageSize
		}

		pgd[i] = NewEntry(alloc.PhysicalFor(table), flags|FlagRW)
	}

	return &AddressSpace{
		alloc:   alloc,
		pgd:     pgd,
		pgdPhys: alloc.PhysicalFor(pgd),
	}
}

// PGDPhys returns the physical address of this space's page global
// directory, the value that activation loads into the translation root
// register.
func (s *AddressSpace) PGDPhys() uint32 {
	return s.pgdPhys
}

// SetEntry overwrites the leaf entry that maps virtAddr with the supplied
// raw entry value. This is the only sanctioned way to remap a single page
// after initial construction. On alignment failure the error is returned
// and no entry is touched.
//
// SetEntry does not re-check the present flag on the directory entry it
// follows: spaces are always fully pre-populated by NewIdentitySpace.
// Mutations against the currently active space must go through
// Context.SetActiveEntry so the affected translation is also invalidated.
func (s *AddressSpace) SetEntry(virtAddr uint32, entry Entry) *kernel.Error {
	pgdIndex, tableIndex, err := Decompose(virtAddr)
	if err != nil {
		return err
	}

	s.table(pgdIndex)[tableIndex] = entry
	return nil
}

// Entry returns the leaf entry that maps virtAddr.
func (s *AddressSpace) Entry(virtAddr uint32) (Entry, *kernel.Error) {
	pgdIndex, tableIndex, err := Decompose(virtAddr)
	if err != nil {
		return 0, err
	}

	return s.table(pgdIndex)[tableIndex], nil
}

// table resolves the page table referenced by the directory slot at
// pgdIndex, stripping the flag bits off the directory entry to recover
// the table's physical address.
func (s *AddressSpace) table(pgdIndex uint32) *Table {
	return s.alloc.LookupTable(s.pgd[pgdIndex].Address())
}

// Release tears down this address space, returning every page table and
// the directory itself to the allocator. It consumes the handle: the
// space's internals are cleared so any use after Release fails fast
// instead of touching freed tables.
//
// Release must never be called on the active space; Context.Activate
// enforces this by keeping sole ownership of the active handle and only
// handing it back once another space has been activated.
func (s *AddressSpace) Release() {
	for i := 0; i < TableEntries; i++ {
		s.alloc.FreeTable(s.table(uint32(i)))
	}

	s.alloc.FreeTable(s.pgd)
	s.alloc = nil
	s.pgd = nil
	s.pgdPhys = 0
}
