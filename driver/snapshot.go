package driver

import (
	"github.com/mohammedbenserya/stealthium/snapshot"
)

// Snapshot captures the current page source and parses it for offline
// inspection (links, meta tags, text queries) with no further browser calls.
func (d *Driver) Snapshot() (*snapshot.Snapshot, error) {
	html, err := d.PageSource()
	if err != nil {
		return nil, err
	}
	return snapshot.Parse(html)
}
