package domain

import (
	"fmt"
	"strings"
)

// Device is a simulated preview viewport.
type Device string

// Available preview devices.
const (
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DeviceMobile  Device = "mobile"
)

// Viewport is the CSS size of a preview frame.
type Viewport struct {
	Width  string
	Height string
	// Columns is the terminal width used for text previews of this device.
	Columns int
}

// AllDevices returns every preview device.
func AllDevices() []Device {
	return []Device{DeviceDesktop, DeviceTablet, DeviceMobile}
}

// IsValid returns true if the device is recognised.
func (d Device) IsValid() bool {
	switch d {
	case DeviceDesktop, DeviceTablet, DeviceMobile:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Device) String() string {
	return string(d)
}

// Viewport returns the frame dimensions for the device.
func (d Device) Viewport() Viewport {
	switch d {
	case DeviceTablet:
		return Viewport{Width: "768px", Height: "1024px", Columns: 76}
	case DeviceMobile:
		return Viewport{Width: "375px", Height: "667px", Columns: 40}
	default:
		return Viewport{Width: "100%", Height: "600px", Columns: 100}
	}
}

// Next cycles desktop -> tablet -> mobile -> desktop.
func (d Device) Next() Device {
	switch d {
	case DeviceDesktop:
		return DeviceTablet
	case DeviceTablet:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// ParseDevice converts user input to a Device.
func ParseDevice(s string) (Device, error) {
	d := Device(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: device %q", ErrInvalidInput, s)
	}
	return d, nil
}
