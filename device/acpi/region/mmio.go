package region

import (
	"io"

	"github.com/Mathewnd/uacpi/kernel"
	"github.com/Mathewnd/uacpi/kernel/kfmt"
)

// mmioContext is the per-region state the MMIO backing keeps between a
// successful attach and its matching detach.
type mmioContext struct {
	phys uint64
	virt uintptr
	size uint64
}

// MMIOBacking implements the SystemMemory address-space handler. Attach
// maps the region's full physical extent up front; accesses translate the
// absolute address the interpreter supplies into a virtual pointer and
// perform a single, width-dispatched volatile load or store.
type MMIOBacking struct {
	platform Platform
	trace    io.Writer
}

// NewMMIOBacking returns a SystemMemory handler backed by platform. trace
// may be nil, in which case attach failures are silent.
func NewMMIOBacking(platform Platform, trace io.Writer) *MMIOBacking {
	return &MMIOBacking{platform: platform, trace: trace}
}

// Handle implements the Handler ABI for the MMIO backing.
func (b *MMIOBacking) Handle(op RegionOp, opData interface{}) *kernel.Error {
	switch op {
	case OpAttach:
		return b.attach(opData.(*AttachData))
	case OpDetach:
		return b.detach(opData.(*DetachData))
	case OpRead, OpWrite:
		return b.rw(op, opData.(*RWData))
	default:
		return ErrInvalidArgument
	}
}

func (b *MMIOBacking) attach(data *AttachData) *kernel.Error {
	desc, ok := data.RegionNode.OpRegionDescriptor()
	if !ok {
		return ErrInvalidArgument
	}

	ctx := &mmioContext{phys: desc.Offset, size: desc.Length}

	virt, err := b.platform.Map(ctx.phys, ctx.size)
	if err != nil {
		kfmt.Fprintf(b.trace, "acpi: unable to map region %s: %s\n", data.RegionNode.Name(), err.Error())
		return err
	}
	ctx.virt = virt

	data.Context = ctx
	return nil
}

func (b *MMIOBacking) detach(data *DetachData) *kernel.Error {
	ctx := data.Context.(*mmioContext)
	b.platform.Unmap(ctx.virt, ctx.size)
	return nil
}

func (b *MMIOBacking) rw(op RegionOp, data *RWData) *kernel.Error {
	ctx := data.Context.(*mmioContext)
	ptr := ctx.virt + uintptr(data.Address-ctx.phys)

	if op == OpRead {
		value, err := memoryRead(ptr, data.ByteWidth)
		if err != nil {
			return err
		}
		data.Value = value
		return nil
	}

	return memoryWrite(ptr, data.ByteWidth, data.Value)
}
