package kernel

// Error describes a kernel error. Kernel errors are always declared as global
// variables pointing to an Error value; the Go allocator is not available in
// a freestanding kernel so errors.New cannot be used.
type Error struct {
	// The subsystem where the error occurred.
	Module string

	// The error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
