package driver

import (
	"fmt"
)

// Get navigates to the URL and waits for the document load event, bounded by
// the driver's page timeout.
func (d *Driver) Get(url string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}

	if err := d.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}

	if err := d.page.Timeout(d.opts.pageTimeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}

	d.log.Debugw("navigated", "id", d.id, "url", url)
	return nil
}

// Title returns the current document title.
func (d *Driver) Title() (string, error) {
	if err := d.ensureOpen(); err != nil {
		return "", err
	}
	info, err := d.page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.Title, nil
}

// CurrentURL returns the URL of the current document.
func (d *Driver) CurrentURL() (string, error) {
	if err := d.ensureOpen(); err != nil {
		return "", err
	}
	info, err := d.page.Info()
	if err != nil {
		return "", fmt.Errorf("page info: %w", err)
	}
	return info.URL, nil
}

// PageSource returns the serialized HTML of the current document.
func (d *Driver) PageSource() (string, error) {
	if err := d.ensureOpen(); err != nil {
		return "", err
	}
	html, err := d.page.HTML()
	if err != nil {
		return "", fmt.Errorf("page source: %w", err)
	}
	return html, nil
}

// Back navigates one step backward in the session history.
func (d *Driver) Back() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	return d.page.NavigateBack()
}

// Forward navigates one step forward in the session history.
func (d *Driver) Forward() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	return d.page.NavigateForward()
}

// Refresh reloads the current document.
func (d *Driver) Refresh() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	return d.page.Reload()
}
