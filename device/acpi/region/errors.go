package region

import "github.com/Mathewnd/uacpi/kernel"

var (
	// ErrInvalidArgument is returned for an unknown RegionOp or an
	// access width the backing cannot honor.
	ErrInvalidArgument = &kernel.Error{Module: "acpi/region", Message: "invalid argument"}

	// ErrOutOfMemory is returned when a context cannot be allocated
	// during attach. Go code backed by a real allocator is not expected
	// to hit this in practice; it exists so the backings can propagate
	// the same error kind a freestanding implementation would.
	ErrOutOfMemory = &kernel.Error{Module: "acpi/region", Message: "out of memory"}

	// ErrNotFound is returned when the PCI-config backing cannot locate
	// a controlling device ancestor for a region during attach.
	ErrNotFound = &kernel.Error{Module: "acpi/region", Message: "unable to find device responsible for region"}
)
