package region

import (
	"io"

	"github.com/Mathewnd/uacpi/kernel"
	"github.com/Mathewnd/uacpi/kernel/kfmt"
)

// pciRootBridgeIDs lists the PNP identifiers recognized as PCI (or PCI
// Express) root bridges, matched against both _HID and every entry of
// _CID.
var pciRootBridgeIDs = map[string]bool{
	"PNP0A03": true, // PCI bus
	"PNP0A08": true, // PCI Express bus
}

func isPCIRootBridgeID(id string) bool {
	return pciRootBridgeIDs[id]
}

func nodeIsPCIRoot(node NamespaceNode) bool {
	if id, ok := node.EvalString("_HID"); ok && isPCIRootBridgeID(id) {
		return true
	}

	if ids, ok := node.EvalStringList("_CID"); ok {
		for _, id := range ids {
			if isPCIRootBridgeID(id) {
				return true
			}
		}
	}

	return false
}

// findPCIRoot ascends from node's parent toward the namespace root looking
// for the nearest ancestor whose _HID or _CID identifies it as a PCI root
// bridge. If none is found, it falls back to using node itself as the
// root: _SEG and _BBN evaluation against it will typically fail and leave
// those fields zero, but attach still succeeds.
func findPCIRoot(node NamespaceNode, trace io.Writer) NamespaceNode {
	for ancestor := node.Parent(); ancestor != nil; ancestor = ancestor.Parent() {
		if nodeIsPCIRoot(ancestor) {
			kfmt.Fprintf(trace, "acpi: found a PCI root node %s controlling region %s\n", ancestor.Name(), node.Name())
			return ancestor
		}
	}

	kfmt.Fprintf(trace, "acpi: unable to find PCI root controlling region %s\n", node.Name())
	return node
}

// findControllingDevice ascends from node (inclusive) toward the namespace
// root looking for the nearest ancestor whose object type is Device.
func findControllingDevice(node NamespaceNode) (NamespaceNode, *kernel.Error) {
	for n := node; n != nil; n = n.Parent() {
		if n.Type() == ObjectTypeDevice {
			return n, nil
		}
	}

	return nil, ErrNotFound
}

// pciContext is the per-region state the PCI-config backing keeps between
// a successful attach and its matching detach. The resolved address is
// fixed at attach time and never revisited.
type pciContext struct {
	address PCIAddress
}

// PCIBacking implements the PCIConfig address-space handler. Attach walks
// the namespace to resolve the (segment, bus, device, function) tuple that
// addresses the region's underlying PCI function; reads and writes then
// use that fixed address unconditionally.
type PCIBacking struct {
	platform Platform
	trace    io.Writer
}

// NewPCIBacking returns a PCIConfig handler backed by platform.
func NewPCIBacking(platform Platform, trace io.Writer) *PCIBacking {
	return &PCIBacking{platform: platform, trace: trace}
}

// Handle implements the Handler ABI for the PCI-config backing.
func (b *PCIBacking) Handle(op RegionOp, opData interface{}) *kernel.Error {
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

func (b *PCIBacking) attach(data *AttachData) *kernel.Error {
	node := data.RegionNode

	pciRoot := findPCIRoot(node, b.trace)

	device, err := findControllingDevice(node)
	if err != nil {
		kfmt.Fprintf(b.trace, "acpi: unable to find device responsible for region %s\n", node.Name())
		return err
	}

	var addr PCIAddress
	if adr, ok := device.EvalInteger("_ADR"); ok {
		addr.Function = uint8(adr)
		addr.Device = uint8(adr >> 16)
	}
	if seg, ok := pciRoot.EvalInteger("_SEG"); ok {
		addr.Segment = uint16(seg)
	}
	if bbn, ok := pciRoot.EvalInteger("_BBN"); ok {
		addr.Bus = uint8(bbn)
	}

	kfmt.Fprintf(b.trace, "acpi: detected PCI device %s@%x:%x:%x:%x\n",
		device.Name(), addr.Segment, addr.Bus, addr.Device, addr.Function)

	data.Context = &pciContext{address: addr}
	return nil
}

func (b *PCIBacking) detach(data *DetachData) *kernel.Error {
	return nil
}

func (b *PCIBacking) rw(op RegionOp, data *RWData) *kernel.Error {
	ctx := data.Context.(*pciContext)

	if op == OpRead {
		value, err := b.platform.PCIRead(ctx.address, data.Offset, data.ByteWidth)
		if err != nil {
			return err
		}
		data.Value = value
		return nil
	}

	return b.platform.PCIWrite(ctx.address, data.Offset, data.ByteWidth, data.Value)
}
