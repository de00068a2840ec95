package region

import (
	"io"

	"github.com/Mathewnd/uacpi/kernel"
	"github.com/Mathewnd/uacpi/kernel/kfmt"
)

// ioContext is the per-region state the port-I/O backing keeps between a
// successful attach and its matching detach.
type ioContext struct {
	base   uint64
	handle IOHandle
}

// IOBacking implements the SystemIO address-space handler. Accesses are
// relative: the backing subtracts the region's base port from the absolute
// address the interpreter supplies before handing the offset to the
// platform. Width validity is the platform's responsibility; this backing
// passes it through unchanged.
type IOBacking struct {
	platform Platform
	trace    io.Writer
}

// NewIOBacking returns a SystemIO handler backed by platform.
func NewIOBacking(platform Platform, trace io.Writer) *IOBacking {
	return &IOBacking{platform: platform, trace: trace}
}

// Handle implements the Handler ABI for the port-I/O backing.
func (b *IOBacking) Handle(op RegionOp, opData interface{}) *kernel.Error {
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

func (b *IOBacking) attach(data *AttachData) *kernel.Error {
	desc, ok := data.RegionNode.OpRegionDescriptor()
	if !ok {
		return ErrInvalidArgument
	}

	handle, err := b.platform.IOMap(desc.Offset, desc.Length)
	if err != nil {
		kfmt.Fprintf(b.trace, "acpi: unable to map an IO region %s: %s\n", data.RegionNode.Name(), err.Error())
		return err
	}

	data.Context = &ioContext{base: desc.Offset, handle: handle}
	return nil
}

func (b *IOBacking) detach(data *DetachData) *kernel.Error {
	ctx := data.Context.(*ioContext)
	b.platform.IOUnmap(ctx.handle)
	return nil
}

func (b *IOBacking) rw(op RegionOp, data *RWData) *kernel.Error {
	ctx := data.Context.(*ioContext)
	offset := data.Address - ctx.base

	if op == OpRead {
		value, err := b.platform.IORead(ctx.handle, offset, data.ByteWidth)
		if err != nil {
			return err
		}
		data.Value = value
		return nil
	}

	return b.platform.IOWrite(ctx.handle, offset, data.ByteWidth, data.Value)
}
