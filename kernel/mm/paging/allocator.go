package paging

import (
	"stinkos/kernel"
	"stinkos/kernel/mm"
)

var errArenaExhausted = &kernel.Error{Module: "paging", Message: "table arena exhausted; cannot allocate page table"}

// Table is a 4 KiB block holding the 1024 entries of a page global
// directory or of a single page table.
type Table [TableEntries]Entry

// Allocator hands out zeroed table blocks and resolves the physical
// addresses packed into directory entries back to the blocks they refer
// to. Using an explicit lookup instead of dereferencing the raw address
// turns the directory-to-table pointer chain into a checked operation.
type Allocator interface {
	// NewTable returns a zero-filled table block together with the
	// 4 KiB-aligned physical address it will be known by.
	NewTable() (*Table, *kernel.Error)

	// PhysicalFor returns the physical address previously assigned to
	// the given table block.
	PhysicalFor(table *Table) uint32

	// LookupTable returns the table block known by the given physical
	// address or nil if the address does not refer to a live block.
	LookupTable(physAddr uint32) *Table

	// FreeTable releases a table block previously returned by NewTable.
	FreeTable(table *Table)
}

// TableArena is the kernel's table Allocator. It carves table blocks out
// of the Go heap and assigns each one a synthetic 4 KiB-aligned physical
// address, mirroring the role the kernel heap plays for table storage. A
// zero maxTables places no limit on the number of live blocks.
type TableArena struct {
	maxTables int

	tables map[uint32]*Table
	phys   map[*Table]uint32

	nextPhysAddr uint32
}

// NewTableArena returns an empty arena that will serve up to maxTables
// live table blocks, or an unbounded number of blocks if maxTables is 0.
func NewTableArena(maxTables int) *TableArena {
	return &TableArena{
		maxTables: maxTables,
		tables:    make(map[uint32]*Table),
		phys:      make(map[*Table]uint32),
		// Address 0 is never assigned so a zeroed directory entry can
		// never resolve to a live table.
		nextPhysAddr: mm.PageSize,
	}
}

// NewTable allocates a zero-filled table block and assigns it the next
// available physical address. It fails with errArenaExhausted once the
// arena's configured capacity has been reached.
func (a *TableArena) NewTable() (*Table, *kernel.Error) {
	if a.maxTables != 0 && len(a.tables) >= a.maxTables {
		return nil, errArenaExhausted
	}

	table := new(Table)
	physAddr := a.nextPhysAddr
	a.nextPhysAddr += mm.PageSize

	a.tables[physAddr] = table
	a.phys[table] = physAddr
	return table, nil
}

// PhysicalFor returns the physical address assigned to the given table
// block, or 0 if the block is not live in this arena.
func (a *TableArena) PhysicalFor(table *Table) uint32 {
	return a.phys[table]
}

// LookupTable resolves a physical address to the live table block it was
// assigned to. Callers must mask the flag bits off a directory entry
// before passing its address field here.
func (a *TableArena) LookupTable(physAddr uint32) *Table {
	return a.tables[physAddr]
}

// FreeTable releases the given table block. Freeing a block that is not
// live is a no-op.
func (a *TableArena) FreeTable(table *Table) {
	physAddr, live := a.phys[table]
	if !live {
		return
	}

	delete(a.tables, physAddr)
	delete(a.phys, table)
}

// Live returns the number of table blocks that have been allocated but
// not yet freed.
func (a *TableArena) Live() int {
	return len(a.tables)
}
