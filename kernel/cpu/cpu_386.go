package cpu

// EnableInterrupts enables interrupt handling.
func EnableInterrupts()

// DisableInterrupts disables interrupt handling.
func DisableInterrupts()

// Halt disables interrupts and stops instruction execution.
func Halt()

// SwitchPGD loads CR3 with the physical address of a page global
// directory, making it the active translation root and flushing any
// non-global TLB entries. The supplied address must be page-aligned.
// This instruction has no software-visible failure mode.
func SwitchPGD(pgdPhysAddr uint32)

// ActivePGD returns the physical address of the page global directory
// that is currently loaded in CR3.
func ActivePGD() uint32

// FlushTLBEntry invalidates the TLB entry for a particular virtual
// address. It must be issued after modifying a table entry that is
// reachable through the active page global directory.
func FlushTLBEntry(virtAddr uint32)
