package region

import (
	"sync/atomic"
	"unsafe"

	"github.com/Mathewnd/uacpi/kernel"
)

// memoryRead performs a single, naturally-aligned load of width bytes at
// ptr. Widths of 4 and 8 bytes go through sync/atomic so the compiler
// cannot fold or reorder the access relative to other atomic accesses; 1
// and 2 byte widths have no atomic counterpart in Go and fall back to a
// direct typed dereference, which is still a single bus-width load -- it
// just carries no reordering guarantee beyond what the platform's memory
// model already provides for plain loads.
func memoryRead(ptr uintptr, width uint8) (uint64, *kernel.Error) {
	switch width {
	case 1:
		return uint64(*(*uint8)(unsafe.Pointer(ptr))), nil
	case 2:
		return uint64(*(*uint16)(unsafe.Pointer(ptr))), nil
	case 4:
		return uint64(atomic.LoadUint32((*uint32)(unsafe.Pointer(ptr)))), nil
	case 8:
		return atomic.LoadUint64((*uint64)(unsafe.Pointer(ptr))), nil
	default:
		return 0, ErrInvalidArgument
	}
}

// memoryWrite performs a single, naturally-aligned store of width bytes at
// ptr. See memoryRead for the rationale behind the width-to-primitive
// mapping.
func memoryWrite(ptr uintptr, width uint8, value uint64) *kernel.Error {
	switch width {
	case 1:
		*(*uint8)(unsafe.Pointer(ptr)) = uint8(value)
	case 2:
		*(*uint16)(unsafe.Pointer(ptr)) = uint16(value)
	case 4:
		atomic.StoreUint32((*uint32)(unsafe.Pointer(ptr)), uint32(value))
	case 8:
		atomic.StoreUint64((*uint64)(unsafe.Pointer(ptr)), value)
	default:
		return ErrInvalidArgument
	}

	return nil
}
