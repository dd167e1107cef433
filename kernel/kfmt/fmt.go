package kfmt

import (
	"io"
	"unsafe"
)

// numBufSize defines the scratch buffer size for formatting numbers. It is
// large enough for a 64-bit value in base 8 plus a sign.
const numBufSize = 24

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")
	trueValue       = []byte("true")
	falseValue      = []byte("false")

	// numBuf is a shared scratch buffer for number formatting. The kernel
	// runs single-threaded so sharing it is safe.
	numBuf [numBufSize]byte

	// singleByte is a shared buffer for emitting individual characters
	// without triggering a string-to-slice conversion (and hence a memory
	// allocation) inside doWrite.
	singleByte = []byte{0}

	// earlyPrintBuffer buffers Printf output generated before an output
	// sink has been registered.
	earlyPrintBuffer ringBuffer

	// outputSink is the io.Writer where Printf sends its output. While
	// nil, output is redirected to earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the target for calls to Printf to w and drains any
// output accumulated in the early print buffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// Printf provides a minimal Printf implementation that does not allocate any
// memory and can therefore be safely used before the Go runtime has been
// fully bootstrapped.
//
// It supports the following subset of formatting verbs:
//
// Strings:
//	%s	the uninterpreted bytes of a string or byte slice
//
// Integers:
//	%o	base 8
//	%d	base 10
//	%x	base 16, lower-case letters for a-f
//
// Booleans:
//	%t	"true" or "false"
//
// A verb may be preceded by an optional decimal width. String and base-10
// values shorter than the width are left-padded with spaces; base-8 and
// base-16 values are left-padded with zeroes. Pointer verbs are not
// supported as they would pull in the reflect package whose use of
// runtime.convT2E crashes the kernel before memory management is up.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but writes the formatted output to w.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		argIndex int
		i        int
		fmtLen   = len(format)
	)

	for i < fmtLen {
		ch := format[i]
		if ch != '%' {
			emitByte(w, ch)
			i++
			continue
		}

		// Scan the optional width that follows '%'
		i++
		width := 0
		for ; i < fmtLen && format[i] >= '0' && format[i] <= '9'; i++ {
			width = width*10 + int(format[i]-'0')
		}

		if i == fmtLen {
			doWrite(w, errNoVerb)
			break
		}

		verb := format[i]
		i++

		if verb == '%' {
			emitByte(w, '%')
			continue
		}

		if verb != 'o' && verb != 'd' && verb != 'x' && verb != 's' && verb != 't' {
			doWrite(w, errNoVerb)
			continue
		}

		if argIndex >= len(args) {
			doWrite(w, errMissingArg)
			continue
		}

		switch verb {
		case 'o':
			fmtInt(w, args[argIndex], 8, width)
		case 'd':
			fmtInt(w, args[argIndex], 10, width)
		case 'x':
			fmtInt(w, args[argIndex], 16, width)
		case 's':
			fmtString(w, args[argIndex], width)
		case 't':
			fmtBool(w, args[argIndex])
		}
		argIndex++
	}

	// Flag any unused args
	for ; argIndex < len(args); argIndex++ {
		doWrite(w, errExtraArg)
	}
}

// fmtBool emits a formatted version of boolean value v.
func fmtBool(w io.Writer, v interface{}) {
	bVal, isBool := v.(bool)
	if !isBool {
		doWrite(w, errWrongArgType)
		return
	}

	if bVal {
		doWrite(w, trueValue)
	} else {
		doWrite(w, falseValue)
	}
}

// fmtString emits a formatted version of string or byte-slice value v,
// left-padding with spaces up to width.
func fmtString(w io.Writer, v interface{}, width int) {
	switch sVal := v.(type) {
	case string:
		for pad := width - len(sVal); pad > 0; pad-- {
			emitByte(w, ' ')
		}
		// Converting the string to a byte slice would allocate so the
		// bytes are emitted one at a time.
		for i := 0; i < len(sVal); i++ {
			emitByte(w, sVal[i])
		}
	case []byte:
		for pad := width - len(sVal); pad > 0; pad-- {
			emitByte(w, ' ')
		}
		doWrite(w, sVal)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtInt emits a formatted version of v in the requested base, left-padding
// up to width with spaces for base 10 and zeroes for bases 8 and 16. All
// built-in signed and unsigned integer types are supported.
func fmtInt(w io.Writer, v interface{}, base, width int) {
	var (
		uval     uint64
		negative bool
		padCh    byte = '0'
	)

	if base == 10 {
		padCh = ' '
	}

	switch iVal := v.(type) {
	case uint8:
		uval = uint64(iVal)
	case uint16:
		uval = uint64(iVal)
	case uint32:
		uval = uint64(iVal)
	case uint64:
		uval = iVal
	case uint:
		uval = uint64(iVal)
	case uintptr:
		uval = uint64(iVal)
	case int8:
		negative = iVal < 0
		uval = abs64(int64(iVal))
	case int16:
		negative = iVal < 0
		uval = abs64(int64(iVal))
	case int32:
		negative = iVal < 0
		uval = abs64(int64(iVal))
	case int64:
		negative = iVal < 0
		uval = abs64(iVal)
	case int:
		negative = iVal < 0
		uval = abs64(int64(iVal))
	default:
		doWrite(w, errWrongArgType)
		return
	}

	if width > numBufSize-1 {
		width = numBufSize - 1
	}

	// Generate the digits in reverse order
	digits := 0
	for {
		rem := byte(uval % uint64(base))
		if rem < 10 {
			numBuf[digits] = rem + '0'
		} else {
			numBuf[digits] = rem - 10 + 'a'
		}
		digits++

		uval /= uint64(base)
		if uval == 0 {
			break
		}
	}

	for ; digits < width; digits++ {
		numBuf[digits] = padCh
	}

	if negative {
		// Place the sign in the pad slot adjacent to the digits or, if
		// the number filled the requested width, prepend it.
		signAt := digits
		for i := 0; i < digits; i++ {
			if numBuf[i] == ' ' {
				signAt = i
				break
			}
		}
		if signAt == digits {
			digits++
		}
		numBuf[signAt] = '-'
	}

	// Emit in reverse to restore the most-significant-first order
	for i := digits - 1; i >= 0; i-- {
		emitByte(w, numBuf[i])
	}
}

// abs64 returns the absolute value of v as a uint64.
func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// emitByte writes a single byte to w via the shared single-byte buffer.
func emitByte(w io.Writer, b byte) {
	singleByte[0] = b
	doWrite(w, singleByte)
}

// doWrite is a proxy that uses the runtime.noescape trick to hide p from the
// compiler's escape analysis. Without it the compiler cannot prove that p
// does not escape through the unknown io.Writer and flags it as escaping,
// which would make every Printf call allocate and crash the kernel when
// called before the Go allocator is initialized.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis. This function is copied
// over from runtime/stubs.go
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
