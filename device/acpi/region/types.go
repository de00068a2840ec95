// Package region implements the default ACPI operation-region address-space
// handlers: system memory (MMIO), system I/O ports, and PCI configuration
// space. It sits between the ACPI interpreter, which evaluates AML and
// issues region accesses in (op, op_data) terms, and the platform layer,
// which owns the actual hardware mappings.
//
// The interpreter, the namespace it walks, and the platform primitives used
// to perform the real hardware accesses are all external collaborators;
// this package only consumes them through the interfaces declared in
// namespace.go and platform.go.
package region

import "github.com/Mathewnd/uacpi/kernel"

// RegionOp identifies the operation an interpreter is asking a backing to
// perform against an operation region.
type RegionOp uint8

const (
	// OpAttach asks the backing to build per-region state for the region
	// node carried in the op data.
	OpAttach RegionOp = iota

	// OpDetach asks the backing to release the per-region state and any
	// resources it owns.
	OpDetach

	// OpRead asks the backing to read a value out of the region.
	OpRead

	// OpWrite asks the backing to write a value into the region.
	OpWrite
)

func (op RegionOp) String() string {
	switch op {
	case OpAttach:
		return "attach"
	case OpDetach:
		return "detach"
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Context is the opaque per-region state a backing owns between a
// successful Attach and its matching Detach. Its concrete type is chosen by
// the backing that created it; callers only ever pass it back unmodified.
type Context interface{}

// AttachData is the op data supplied alongside OpAttach. On success, the
// handler stores the newly created context in Context.
type AttachData struct {
	// RegionNode is the namespace node that declared the operation
	// region being attached.
	RegionNode NamespaceNode

	// Context is set by the handler on success.
	Context Context
}

// DetachData is the op data supplied alongside OpDetach.
type DetachData struct {
	// Context is the value previously stored by a matching OpAttach.
	Context Context
}

// RWData is the op data supplied alongside OpRead and OpWrite.
type RWData struct {
	// Context is the value previously stored by a matching OpAttach.
	Context Context

	// Address is the absolute address being accessed. The MMIO backing
	// translates it directly against the region's mapped base; the
	// port-I/O backing subtracts its region's base port from it to get
	// a relative offset. The PCI-config backing ignores it in favor of
	// Offset.
	Address uint64

	// Offset is the access's offset within the region, already relative
	// to the region's declared base. Only the PCI-config backing uses
	// it; MMIO and port I/O derive their own offset from Address.
	Offset uint64

	// ByteWidth is the width of the access in bytes. Valid widths are
	// backing-specific; the MMIO backing accepts {1,2,4,8} and rejects
	// anything else with ErrInvalidArgument.
	ByteWidth uint8

	// Value carries the value to write for OpWrite, and receives the
	// value read for OpRead.
	Value uint64
}

// Handler is the uniform entry point exposed by every backing: discriminate
// on op, operate on opData, and return a terminal status. opData's
// concrete type depends on op: *AttachData for OpAttach, *DetachData for
// OpDetach, and *RWData for OpRead/OpWrite.
type Handler func(op RegionOp, opData interface{}) *kernel.Error
