//go:build !386

package cpu

// The privileged primitives are only implemented for the 386 target. The
// stubs below allow packages that reference them to be compiled and tested
// on other host architectures; tests are expected to swap the function
// variables that point here with mocks before anything calls them.

// EnableInterrupts enables interrupt handling.
func EnableInterrupts() { panic("cpu: not supported on this architecture") }

// DisableInterrupts disables interrupt handling.
func DisableInterrupts() { panic("cpu: not supported on this architecture") }

// Halt disables interrupts and stops instruction execution.
func Halt() { panic("cpu: not supported on this architecture") }

// SwitchPGD loads CR3 with the physical address of a page global directory.
func SwitchPGD(pgdPhysAddr uint32) { panic("cpu: not supported on this architecture") }

// ActivePGD returns the physical address of the directory loaded in CR3.
func ActivePGD() uint32 { panic("cpu: not supported on this architecture") }

// FlushTLBEntry invalidates the TLB entry for a particular virtual address.
func FlushTLBEntry(virtAddr uint32) { panic("cpu: not supported on this architecture") }
