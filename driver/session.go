package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-rod/rod/lib/proto"

	"github.com/mohammedbenserya/stealthium/storage"
)

// SaveSession captures the browser's cookies and persists them under key in
// the configured store, so a later driver can resume the logged-in state.
// An empty key defaults to the driver's session id.
func (d *Driver) SaveSession(ctx context.Context, key string) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if key == "" {
		key = d.id
	}

	cookies, err := d.browser.GetCookies()
	if err != nil {
		return fmt.Errorf("get cookies: %w", err)
	}

	payload, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}

	if err := d.store.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	d.log.Infow("session persisted", "id", d.id, "key", key)
	return nil
}

// RestoreSession loads cookies stored under key and injects them into the
// browser. It returns false without error when no session is stored, and
// false when the stored blob cannot be parsed or applied.
func (d *Driver) RestoreSession(ctx context.Context, key string) (bool, error) {
	if err := d.ensureOpen(); err != nil {
		return false, err
	}
	if key == "" {
		key = d.id
	}

	raw, err := d.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load session: %w", err)
	}

	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(raw, &cookies); err != nil {
		d.log.Warnw("session parse failed", "id", d.id, "key", key, "error", err)
		return false, nil
	}

	if err := d.browser.SetCookies(toCookieParams(cookies)); err != nil {
		d.log.Warnw("session cookie inject failed", "id", d.id, "key", key, "error", err)
		return false, nil
	}

	d.log.Infow("session restored", "id", d.id, "key", key, "cookies", len(cookies))
	return true, nil
}
