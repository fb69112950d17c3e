package driver

import (
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// boundsSize reads the window dimensions from bounds, treating absent fields
// as zero.
func boundsSize(bounds *proto.BrowserBounds) (width, height int) {
	if bounds == nil {
		return 0, 0
	}
	if bounds.Width != nil {
		width = *bounds.Width
	}
	if bounds.Height != nil {
		height = *bounds.Height
	}
	return width, height
}

// sizeBounds builds the devtools bounds payload for a resize.
func sizeBounds(width, height int) *proto.BrowserBounds {
	return &proto.BrowserBounds{
		Width:  &width,
		Height: &height,
	}
}

// WindowSize returns the current browser window size.
func (d *Driver) WindowSize() (width, height int, err error) {
	if err := d.ensureOpen(); err != nil {
		return 0, 0, err
	}
	bounds, err := d.page.GetWindow()
	if err != nil {
		return 0, 0, fmt.Errorf("get window: %w", err)
	}
	width, height = boundsSize(bounds)
	return width, height, nil
}

// SetWindowSize resizes both the browser window and the page viewport, so
// layout and fingerprintable metrics stay consistent.
func (d *Driver) SetWindowSize(width, height int) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("window size must be positive")
	}

	if err := d.page.SetWindow(sizeBounds(width, height)); err != nil {
		return fmt.Errorf("set window: %w", err)
	}

	if err := d.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}

	return nil
}
