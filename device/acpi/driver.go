// Package acpi wires the region handlers in device/acpi/region into the
// device driver framework: once the ACPI namespace has been loaded by the
// interpreter, the driver installs the default SystemMemory, SystemIO and
// PCIConfig handlers at the namespace root.
package acpi

import (
	"io"

	"github.com/Mathewnd/uacpi/device"
	"github.com/Mathewnd/uacpi/device/acpi/region"
	"github.com/Mathewnd/uacpi/kernel"
)

var errMissingNamespace = &kernel.Error{Module: "acpi", Message: "no ACPI namespace supplied to driver"}

// driver is a device.Driver that installs the default address-space
// handlers once its namespace has been loaded and initialized by the
// interpreter.
type driver struct {
	ns       region.Namespace
	platform region.Platform
}

// NewDriver returns a device.Driver that installs the default ACPI
// address-space handlers against ns's root once DriverInit runs. ns is
// expected to already reflect a fully loaded namespace; platform supplies
// the hardware primitives the handlers delegate to.
func NewDriver(ns region.Namespace, platform region.Platform) device.Driver {
	return &driver{ns: ns, platform: platform}
}

// DriverInit installs the default address-space handlers. w becomes the
// backings' trace sink for diagnostics emitted later during region attach;
// the installation itself writes nothing to it.
func (drv *driver) DriverInit(w io.Writer) *kernel.Error {
	if drv.ns == nil {
		return errMissingNamespace
	}

	region.InstallDefaultHandlers(drv.ns, drv.platform, w)
	return nil
}

// DriverName returns the name of this driver.
func (*driver) DriverName() string {
	return "ACPI"
}

// DriverVersion returns the version of this driver.
func (*driver) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}
