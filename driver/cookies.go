package driver

import (
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// Cookies returns all cookies visible to the current browser context.
func (d *Driver) Cookies() ([]*proto.NetworkCookie, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}
	cookies, err := d.browser.GetCookies()
	if err != nil {
		return nil, fmt.Errorf("get cookies: %w", err)
	}
	return cookies, nil
}

// AddCookies installs the given cookies into the browser context.
func (d *Driver) AddCookies(cookies ...*proto.NetworkCookieParam) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if err := d.browser.SetCookies(cookies); err != nil {
		return fmt.Errorf("set cookies: %w", err)
	}
	return nil
}

// DeleteCookies removes every cookie from the browser context.
func (d *Driver) DeleteCookies() error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if err := (proto.NetworkClearBrowserCookies{}).Call(d.page); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

// toCookieParams converts read cookies into the settable parameter form,
// dropping nil entries.
func toCookieParams(cs []*proto.NetworkCookie) []*proto.NetworkCookieParam {
	out := make([]*proto.NetworkCookieParam, 0, len(cs))
	for _, c := range cs {
		if c == nil {
			continue
		}
		out = append(out, &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
			SameSite: c.SameSite,
			Priority: c.Priority,
		})
	}
	return out
}
