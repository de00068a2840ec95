package region

import "testing"

// buildPCITopology builds \_SB.PCI0.DEV0.REG, where PCI0 is a recognized
// PCI root bridge and DEV0 is the controlling device, matching the
// resolution scenario from the seed test suite.
func buildPCITopology() (root, pci0, dev0, reg *fakeNode) {
	root = newFakeNode("\\", nil)
	sb := newFakeNode("_SB_", root)
	pci0 = newFakeNode("PCI0", sb)
	pci0.withString("_HID", "PNP0A08").withInteger("_SEG", 1).withInteger("_BBN", 0x40)
	pci0.objType = ObjectTypeDevice

	dev0 = newFakeNode("DEV0", pci0)
	dev0.objType = ObjectTypeDevice
	dev0.withInteger("_ADR", 0x001F0003)

	reg = newFakeNode("REG", dev0)
	reg.opRegion = &OpRegionDescriptor{Offset: 0, Length: 0x100}

	return root, pci0, dev0, reg
}

func TestPCIResolution(t *testing.T) {
	_, _, _, reg := buildPCITopology()

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	ctx := attach.Context.(*pciContext)
	exp := PCIAddress{Segment: 1, Bus: 0x40, Device: 0x1F, Function: 0x03}
	if ctx.address != exp {
		t.Fatalf("expected resolved address %+v; got %+v", exp, ctx.address)
	}
}

func TestPCIResolutionViaCID(t *testing.T) {
	root := newFakeNode("\\", nil)
	pciRoot := newFakeNode("PCI0", root)
	pciRoot.withStringList("_CID", []string{"PNP0A03"}).withInteger("_SEG", 0).withInteger("_BBN", 0)
	dev := newFakeNode("DEV0", pciRoot)
	dev.objType = ObjectTypeDevice
	reg := newFakeNode("REG", dev)
	reg.opRegion = &OpRegionDescriptor{Offset: 0, Length: 0x10}

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}
}

func TestPCINoControllingDevice(t *testing.T) {
	root := newFakeNode("\\", nil)
	reg := newFakeNode("REG", root)
	reg.opRegion = &OpRegionDescriptor{Offset: 0, Length: 0x10}

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound when no device ancestor exists; got %v", err)
	}
	if attach.Context != nil {
		t.Fatalf("expected no context to be stored on a failed attach")
	}
}

func TestPCINoRootFallsBackToRegionNode(t *testing.T) {
	root := newFakeNode("\\", nil)
	dev := newFakeNode("DEV0", root)
	dev.objType = ObjectTypeDevice
	dev.withInteger("_ADR", 0x0002)
	reg := newFakeNode("REG", dev)
	reg.opRegion = &OpRegionDescriptor{Offset: 0, Length: 0x10}

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	ctx := attach.Context.(*pciContext)
	exp := PCIAddress{Segment: 0, Bus: 0, Device: 0, Function: 2}
	if ctx.address != exp {
		t.Fatalf("expected segment/bus to default to zero when no root is found; got %+v", ctx.address)
	}
}

func TestPCIMissingADRIsNonFatal(t *testing.T) {
	root := newFakeNode("\\", nil)
	pciRoot := newFakeNode("PCI0", root)
	pciRoot.withString("_HID", "PNP0A08")
	dev := newFakeNode("DEV0", pciRoot)
	dev.objType = ObjectTypeDevice
	reg := newFakeNode("REG", dev)
	reg.opRegion = &OpRegionDescriptor{Offset: 0, Length: 0x10}

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	ctx := attach.Context.(*pciContext)
	if ctx.address.Device != 0 || ctx.address.Function != 0 {
		t.Fatalf("expected device/function to default to zero without _ADR; got %+v", ctx.address)
	}
}

func TestPCIResolutionIdempotence(t *testing.T) {
	_, pci0, _, reg := buildPCITopology()

	backing := NewPCIBacking(newFakePlatform(0), nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	// Mutating the namespace after attach must not affect a resolved
	// region: the tuple is captured once and never revisited.
	pci0.withInteger("_BBN", 0x99)

	read := &RWData{Context: attach.Context, Offset: 0, ByteWidth: 4}
	if err := backing.Handle(OpRead, read); err != nil {
		t.Fatalf("read failed: %s", err)
	}

	ctx := attach.Context.(*pciContext)
	if ctx.address.Bus != 0x40 {
		t.Fatalf("expected bus to remain 0x40 after attach; got 0x%x", ctx.address.Bus)
	}
}

func TestPCIReadWriteUsesResolvedAddress(t *testing.T) {
	_, _, _, reg := buildPCITopology()

	platform := newFakePlatform(0)
	backing := NewPCIBacking(platform, nil)
	attach := &AttachData{RegionNode: reg}
	if err := backing.Handle(OpAttach, attach); err != nil {
		t.Fatalf("attach failed: %s", err)
	}

	write := &RWData{Context: attach.Context, Offset: 0x10, ByteWidth: 2, Value: 0x1234}
	if err := backing.Handle(OpWrite, write); err != nil {
		t.Fatalf("write failed: %s", err)
	}

	read := &RWData{Context: attach.Context, Offset: 0x10, ByteWidth: 2}
	if err := backing.Handle(OpRead, read); err != nil {
		t.Fatalf("read failed: %s", err)
	}
	if read.Value != 0x1234 {
		t.Fatalf("expected read-back value 0x1234; got 0x%x", read.Value)
	}

	exp := PCIAddress{Segment: 1, Bus: 0x40, Device: 0x1F, Function: 0x03}
	if len(platform.pciCalls) != 2 {
		t.Fatalf("expected two platform PCI calls; got %d", len(platform.pciCalls))
	}
	for _, call := range platform.pciCalls {
		if call.addr != exp {
			t.Fatalf("expected platform calls to use %+v; got %+v", exp, call.addr)
		}
	}
}

func TestPCIInvalidOp(t *testing.T) {
	backing := NewPCIBacking(newFakePlatform(0), nil)
	if err := backing.Handle(RegionOp(7), nil); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for an unknown op; got %v", err)
	}
}
