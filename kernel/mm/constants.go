package mm

const (
	// PageShift is equal to log2(PageSize). This constant is used when
	// we need to convert a physical address to a page number (shift right
	// by PageShift) and vice-versa.
	PageShift = 12

	// PageSize defines the system's page size in bytes. The target uses
	// the standard x86 4 KiB paging granule.
	PageSize = uint32(1) << PageShift
)

// IsAligned returns true if addr is a multiple of the page size. Table
// indexing and entry mutation only accept aligned virtual addresses; this
// predicate is the definition they rely on.
func IsAligned(addr uint32) bool {
	return addr&(PageSize-1) == 0
}
