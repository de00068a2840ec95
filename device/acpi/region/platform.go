package region

import "github.com/Mathewnd/uacpi/kernel"

// AddressSpaceID identifies an ACPI operation-region address space using
// the numeric values defined by the ACPI specification. Only the three
// handled by this package are named here.
type AddressSpaceID uint8

const (
	// AddressSpaceSystemMemory is the MMIO address space.
	AddressSpaceSystemMemory AddressSpaceID = 0

	// AddressSpaceSystemIO is the port I/O address space.
	AddressSpaceSystemIO AddressSpaceID = 1

	// AddressSpacePCIConfig is the PCI configuration space.
	AddressSpacePCIConfig AddressSpaceID = 2
)

// IOHandle is an opaque handle returned by Platform.IOMap and consumed by
// IORead, IOWrite and IOUnmap. Its representation belongs entirely to the
// platform; this package never inspects it.
type IOHandle interface{}

// PCIAddress identifies a PCI function's configuration space by its full
// (segment, bus, device, function) tuple.
type PCIAddress struct {
	Segment  uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// Platform is the set of hardware primitives the region handlers need from
// the embedding kernel: physical-to-virtual mapping, port I/O, and PCI
// configuration access. None of it is implemented by this package --
// allocation, mapping and the actual bus transactions are platform kernel
// glue and are supplied by whoever embeds the interpreter.
type Platform interface {
	// Map establishes a readable/writable virtual mapping covering
	// [phys, phys+size) and returns its base virtual address.
	Map(phys, size uint64) (virt uintptr, err *kernel.Error)

	// Unmap releases a mapping previously returned by Map. It is only
	// ever called with the exact (virt, size) pair a matching Map call
	// returned and was given.
	Unmap(virt uintptr, size uint64)

	// IOMap reserves [base, base+size) of port I/O space and returns an
	// opaque handle for subsequent IORead/IOWrite/IOUnmap calls.
	IOMap(base, size uint64) (handle IOHandle, err *kernel.Error)

	// IOUnmap releases a handle previously returned by IOMap.
	IOUnmap(handle IOHandle)

	// IORead reads width bytes at offset within handle's port range.
	IORead(handle IOHandle, offset uint64, width uint8) (value uint64, err *kernel.Error)

	// IOWrite writes the low width bytes of value at offset within
	// handle's port range.
	IOWrite(handle IOHandle, offset uint64, width uint8, value uint64) *kernel.Error

	// PCIRead reads width bytes at offset within the configuration space
	// addressed by addr.
	PCIRead(addr PCIAddress, offset uint64, width uint8) (value uint64, err *kernel.Error)

	// PCIWrite writes the low width bytes of value at offset within the
	// configuration space addressed by addr.
	PCIWrite(addr PCIAddress, offset uint64, width uint8, value uint64) *kernel.Error
}
