package kfmt

import (
	"io"
	"unsafe"
)

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	errNoVerb       = []byte("%!(NOVERB)")
	errExtraArg     = []byte("%!(EXTRA)")

	// hexBuf is scratch space for formatting a single %x argument; 16
	// hex digits covers the widest type Fprintf accepts (uint64).
	hexBuf [16]byte

	// singleByte is a shared one-byte buffer for passing literal
	// characters to doWrite without allocating a slice per character.
	singleByte = []byte(" ")
)

// Fprintf is a minimal, non-allocating Printf that the address-space
// backings use to emit trace output. It only implements the two verbs
// those backings actually format with:
//
//	%s  the uninterpreted bytes of a string or []byte
//	%x  base 16, lower-case, of any sized unsigned or signed integer
//
// There is no width/padding support, and no support for %d, %o, %t or %p:
// none of this package's callers need them, and adding them back would
// just be unused surface. If w is nil the output is discarded, so callers
// with an optional trace sink don't need to guard every call.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	if w == nil {
		return
	}

	var (
		nextArgIndex         int
		blockStart, blockEnd int
		fmtLen               = len(format)
	)

	for blockEnd < fmtLen {
		if format[blockEnd] != '%' {
			blockEnd++
			continue
		}

		for i := blockStart; i < blockEnd; i++ {
			singleByte[0] = format[i]
			doWrite(w, singleByte)
		}

		blockEnd++
		if blockEnd >= fmtLen {
			doWrite(w, errNoVerb)
			break
		}

		switch format[blockEnd] {
		case '%':
			singleByte[0] = '%'
			doWrite(w, singleByte)
		case 's':
			if nextArgIndex >= len(args) {
				doWrite(w, errMissingArg)
			} else {
				fmtString(w, args[nextArgIndex])
				nextArgIndex++
			}
		case 'x':
			if nextArgIndex >= len(args) {
				doWrite(w, errMissingArg)
			} else {
				fmtHex(w, args[nextArgIndex])
				nextArgIndex++
			}
		default:
			doWrite(w, errNoVerb)
		}

		blockStart, blockEnd = blockEnd+1, blockEnd+1
	}

	for i := blockStart; i < blockEnd; i++ {
		singleByte[0] = format[i]
		doWrite(w, singleByte)
	}

	for ; nextArgIndex < len(args); nextArgIndex++ {
		doWrite(w, errExtraArg)
	}
}

// fmtString writes the uninterpreted bytes of a string or []byte value.
func fmtString(w io.Writer, v interface{}) {
	switch castedVal := v.(type) {
	case string:
		// converting the string to a byte slice triggers a memory
		// allocation, so write it one byte at a time instead.
		for i := 0; i < len(castedVal); i++ {
			singleByte[0] = castedVal[i]
			doWrite(w, singleByte)
		}
	case []byte:
		doWrite(w, castedVal)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtHex writes v in base 16 with lower-case digits and no padding. It
// accepts every built-in sized integer type; negative signed values are
// printed as their two's complement bit pattern, matching %x on fmt.Printf
// for unsigned conversions of a signed value.
func fmtHex(w io.Writer, v interface{}) {
	var uval uint64
	switch tv := v.(type) {
	case uint8:
		uval = uint64(tv)
	case uint16:
		uval = uint64(tv)
	case uint32:
		uval = uint64(tv)
	case uint64:
		uval = tv
	case uintptr:
		uval = uint64(tv)
	case int8:
		uval = uint64(uint8(tv))
	case int16:
		uval = uint64(uint16(tv))
	case int32:
		uval = uint64(uint32(tv))
	case int64:
		uval = uint64(tv)
	case int:
		uval = uint64(tv)
	default:
		doWrite(w, errWrongArgType)
		return
	}

	if uval == 0 {
		singleByte[0] = '0'
		doWrite(w, singleByte)
		return
	}

	var n int
	for ; uval > 0; n++ {
		digit := uval & 0xf
		if digit < 10 {
			hexBuf[n] = byte(digit) + '0'
		} else {
			hexBuf[n] = byte(digit-10) + 'a'
		}
		uval >>= 4
	}

	for left, right := 0, n-1; left < right; left, right = left+1, right-1 {
		hexBuf[left], hexBuf[right] = hexBuf[right], hexBuf[left]
	}

	doWrite(w, hexBuf[:n])
}

// doWrite is a proxy that uses the runtime.noescape hack to hide p from the
// compiler's escape analysis. Without this hack, the compiler cannot properly
// detect that p does not escape (due to the call to the yet unknown w
// io.Writer) and plays it safe by flagging it as escaping. This causes all
// calls to Fprintf to call runtime.convT2E which triggers a memory
// allocation, defeating the point of a non-allocating formatter.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	w.Write(p)
}

// noEscape hides a pointer from escape analysis. This function is copied
// over from runtime/stubs.go.
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
