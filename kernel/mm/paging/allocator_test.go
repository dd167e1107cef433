package paging

import (
	"testing"

	"stinkos/kernel/mm"
)

func TestTableArenaAlloc(t *testing.T) {
	arena := NewTableArena(0)

	table1, err := arena.NewTable()
	if err != nil {
		t.Fatal(err)
	}

	table2, err := arena.NewTable()
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < TableEntries; i++ {
		if table1[i] != 0 {
			t.Fatalf("expected new table to be zero-filled; got %x at index %d", table1[i], i)
		}
	}

	phys1, phys2 := arena.PhysicalFor(table1), arena.PhysicalFor(table2)

	if phys1 == 0 || phys2 == 0 {
		t.Fatal("expected allocated tables to be assigned non-zero physical addresses")
	}

	if phys1 == phys2 {
		t.Fatalf("expected distinct tables to get distinct physical addresses; both got %x", phys1)
	}

	if !mm.IsAligned(phys1) || !mm.IsAligned(phys2) {
		t.Fatalf("expected assigned physical addresses to be page-aligned; got %x and %x", phys1, phys2)
	}

	if got := arena.LookupTable(phys1); got != table1 {
		t.Fatalf("expected LookupTable(%x) to resolve the first table; got %p", phys1, got)
	}

	if got := arena.Live(); got != 2 {
		t.Fatalf("expected 2 live tables; got %d", got)
	}
}

func TestTableArenaFree(t *testing.T) {
	arena := NewTableArena(0)

	table, err := arena.NewTable()
	if err != nil {
		t.Fatal(err)
	}

	physAddr := arena.PhysicalFor(table)
	arena.FreeTable(table)

	if got := arena.LookupTable(physAddr); got != nil {
		t.Fatalf("expected LookupTable to return nil for a freed table; got %p", got)
	}

	if got := arena.Live(); got != 0 {
		t.Fatalf("expected 0 live tables after free; got %d", got)
	}

	// Double free must be a no-op
	arena.FreeTable(table)

	if got := arena.Live(); got != 0 {
		t.Fatalf("expected double free to leave 0 live tables; got %d", got)
	}
}

func TestTableArenaExhaustion(t *testing.T) {
	arena := NewTableArena(2)

	for i := 0; i < 2; i++ {
		if _, err := arena.NewTable(); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := arena.NewTable(); err != errArenaExhausted {
		t.Fatalf("expected to get errArenaExhausted; got %v", err)
	}
}

func TestTableArenaLookupUnknownAddress(t *testing.T) {
	arena := NewTableArena(0)

	if got := arena.LookupTable(0); got != nil {
		t.Fatalf("expected LookupTable(0) to return nil; got %p", got)
	}

	if got := arena.LookupTable(0xdeadb000); got != nil {
		t.Fatalf("expected LookupTable of an unknown address to return nil; got %p", got)
	}
}
