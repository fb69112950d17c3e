// Package driver provides a stealth browser-automation client shaped after
// the WebDriver surface: construct a Driver, navigate, query elements, run
// scripts, read cookies and headers, then Quit. Detection countermeasures
// (launcher hardening, fingerprint patches, human-like input pacing) are
// applied automatically so the driver can be used as a drop-in replacement
// for a plain WebDriver client.
package driver

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mohammedbenserya/stealthium/config"
	"github.com/mohammedbenserya/stealthium/stealth"
	"github.com/mohammedbenserya/stealthium/storage"
)

// ErrDriverClosed is returned by every method called after Quit.
var ErrDriverClosed = errors.New("driver: session closed")

// Driver owns one launched browser and one active page.
// It is not safe for concurrent use; run one Driver per goroutine.
type Driver struct {
	id   string
	log  *zap.SugaredLogger
	opts *options

	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	headers     *headerRecorder
	stopHeaders func()
	store       storage.StateStore

	closed   atomic.Bool
	quitOnce sync.Once
	quitErr  error
}

// New launches a hardened browser, opens a page, and arms the stealth layer
// (fingerprint script on every new document, request-header capture) before
// any navigation happens.
func New(opts ...Option) (*Driver, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("driver options: %w", err)
	}

	l := buildLauncher(o)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	if o.proxyUser != "" || o.proxyPass != "" {
		// The proxy challenges every request; answer in the background for
		// the whole session.
		go func() {
			_ = browser.HandleAuth(o.proxyUser, o.proxyPass)()
		}()
	}

	pageOwner := browser
	if o.incognito {
		pageOwner, err = browser.Incognito()
		if err != nil {
			_ = browser.Close()
			l.Kill()
			return nil, fmt.Errorf("incognito context: %w", err)
		}
	}

	page, err := pageOwner.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}

	d := &Driver{
		id:       uuid.NewString(),
		log:      o.log,
		opts:     o,
		launcher: l,
		browser:  browser,
		page:     page,
		store:    o.store,
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             o.windowW,
		Height:            o.windowH,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		d.log.Warnw("set viewport", "id", d.id, "error", err)
	}

	// Header capture must precede the first navigation so the first
	// document's request is observed.
	d.headers = newHeaderRecorder()
	d.stopHeaders = d.headers.listen(page)

	if err := stealth.Inject(page); err != nil {
		_ = d.Quit()
		return nil, fmt.Errorf("stealth: %w", err)
	}
	// The initial about:blank document predates the injection; patch it too.
	if err := stealth.Apply(page); err != nil {
		d.log.Warnw("stealth apply on initial document", "id", d.id, "error", err)
	}

	d.log.Infow("driver ready",
		"id", d.id,
		"headless", o.headless,
		"incognito", o.incognito,
		"userAgent", o.userAgent,
		"viewportWidth", o.windowW,
		"viewportHeight", o.windowH,
		"proxy", o.proxyHost != "",
	)

	return d, nil
}

// With runs fn against a freshly constructed Driver and guarantees the
// session is released on every exit path, the scoped-resource analog of
// manual Quit.
func With(fn func(*Driver) error, opts ...Option) (err error) {
	d, err := New(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if qerr := d.Quit(); err == nil {
			err = qerr
		}
	}()
	return fn(d)
}

// ID returns the session identifier carried in log fields and default
// storage keys.
func (d *Driver) ID() string {
	return d.id
}

// Timing exposes the pacing bounds used for human-like input.
func (d *Driver) Timing() config.TimingConfig {
	return d.opts.timing
}

// Page exposes the underlying rod page for callers that need the full rod
// surface. The stealth layer stays active on it.
func (d *Driver) Page() *rod.Page {
	return d.page
}

// Quit releases the page, the browser, and the launched process. It is
// idempotent: every call after the first returns the first result.
func (d *Driver) Quit() error {
	d.quitOnce.Do(func() {
		d.closed.Store(true)

		if d.stopHeaders != nil {
			d.stopHeaders()
		}
		if d.page != nil {
			if err := d.page.Close(); err != nil && d.quitErr == nil {
				d.quitErr = fmt.Errorf("close page: %w", err)
			}
		}
		if d.browser != nil {
			if err := d.browser.Close(); err != nil && d.quitErr == nil {
				d.quitErr = fmt.Errorf("close browser: %w", err)
			}
		}
		if d.launcher != nil {
			d.launcher.Kill()
			d.launcher.Cleanup()
		}

		if d.log != nil {
			d.log.Infow("driver quit", "id", d.id, "error", d.quitErr)
		}
	})
	return d.quitErr
}

func (d *Driver) ensureOpen() error {
	if d.closed.Load() {
		return ErrDriverClosed
	}
	if d.page == nil {
		return ErrDriverClosed
	}
	return nil
}
