package paging

import (
	"stinkos/kernel"
	"stinkos/kernel/cpu"
)

var (
	// switchPGDFn is used by tests to override calls to cpu.SwitchPGD
	// which would fault outside kernel mode.
	switchPGDFn = cpu.SwitchPGD

	// flushTLBEntryFn is used by tests to override calls to
	// cpu.FlushTLBEntry which would fault outside kernel mode.
	flushTLBEntryFn = cpu.FlushTLBEntry

	errNoActiveSpace = &kernel.Error{Module: "paging", Message: "no address space has been activated"}
)

// Context tracks which address space is installed in the CPU's translation
// root register. It is the only holder of the active space's handle: the
// handle goes in through Activate and only comes back out when a different
// space replaces it, so the space being destroyed can never be the one the
// CPU is translating through.
//
// The kernel runs a single Context on its single core. Tests instantiate
// as many independent contexts as they need. No locking is performed;
// callers that need a sequence of operations to appear atomic to the rest
// of the kernel are expected to disable interrupts around it.
type Context struct {
	active *AddressSpace
}

// NewContext returns a Context with no active address space.
func NewContext() *Context {
	return &Context{}
}

// Activate installs space as the CPU's active translation root and returns
// the previously active space (nil on the first activation), transferring
// its ownership back to the caller who may now release it.
//
// The hardware load is issued first and the active-space record is updated
// last, so no observer can ever see a recorded space that is not actually
// loaded in hardware. After Activate returns, every memory access on this
// core is translated through the new directory.
func (ctx *Context) Activate(space *AddressSpace) *AddressSpace {
	switchPGDFn(space.PGDPhys())

	prev := ctx.active
	ctx.active = space
	return prev
}

// Active returns the currently active address space, or nil if no space
// has been activated yet. The returned handle is for inspection and
// mutation via SetActiveEntry; ownership stays with the context.
func (ctx *Context) Active() *AddressSpace {
	return ctx.active
}

// SetActiveEntry overwrites the leaf entry that maps virtAddr in the
// active address space and invalidates the cached translation for that
// address, making the new mapping visible to subsequent memory accesses.
// On alignment failure the error is returned, no entry is touched and no
// invalidation is issued.
//
// Calling SetActiveEntry before any space has been activated is a kernel
// bring-up bug and is treated as fatal.
func (ctx *Context) SetActiveEntry(virtAddr uint32, entry Entry) *kernel.Error {
	if ctx.active == nil {
		panicFn(errNoActiveSpace)
	}

	if err := ctx.active.SetEntry(virtAddr, entry); err != nil {
		return err
	}

	flushTLBEntryFn(virtAddr)
	return nil
}
