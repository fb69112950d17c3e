// Command examples walks through the driver surface: basic navigation,
// header extraction, proxy usage, the full element/script/cookie surface,
// scoped sessions, and custom launcher options.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mohammedbenserya/stealthium/config"
	"github.com/mohammedbenserya/stealthium/driver"
	"github.com/mohammedbenserya/stealthium/logger"
	"github.com/mohammedbenserya/stealthium/snapshot"
)

const configPath = "./config.yaml"

func main() {
	// Load optional .env to ease local development.
	_ = godotenv.Load()

	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := config.Load(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zapLogger.Sync()
	logr := zapLogger.Sugar()

	examples := []struct {
		name string
		run  func(*config.Config, *zap.SugaredLogger) error
	}{
		{"basic usage", exampleBasicUsage},
		{"extract headers", exampleHeaders},
		{"proxy", exampleProxy},
		{"full surface", exampleFullSurface},
		{"scoped session", exampleScopedSession},
		{"custom options", exampleCustomOptions},
	}

	for _, ex := range examples {
		logr.Infow("running example", "name", ex.name)
		if err := ex.run(cfg, logr); err != nil {
			// Errors at this level are logged with a stacktrace by the
			// production zap config. os.Exit skips deferred calls, so the
			// buffer is flushed here.
			logr.Errorw("example failed", "name", ex.name, "error", err)
			_ = zapLogger.Sync()
			os.Exit(1)
		}
	}

	logr.Info("all examples completed")
}

// exampleBasicUsage drives the browser exactly like a plain WebDriver client.
func exampleBasicUsage(cfg *config.Config, logr *zap.SugaredLogger) error {
	d, err := driver.New(driver.WithLogger(logr))
	if err != nil {
		return err
	}
	defer d.Quit()

	if err := d.Get("https://example.com"); err != nil {
		return err
	}

	title, err := d.Title()
	if err != nil {
		return err
	}
	url, err := d.CurrentURL()
	if err != nil {
		return err
	}
	logr.Infow("page loaded", "title", title, "url", url)

	el, err := d.FindElement(driver.ByTagName, "h1")
	if err != nil {
		return err
	}
	text, err := el.Text()
	if err != nil {
		return err
	}
	logr.Infow("found element", "text", text)

	return nil
}

// exampleHeaders shows the non-standard accessor: the request headers the
// browser actually sent for the main document.
func exampleHeaders(cfg *config.Config, logr *zap.SugaredLogger) error {
	d, err := driver.New(driver.WithLogger(logr))
	if err != nil {
		return err
	}
	defer d.Quit()

	if err := d.Get("https://httpbin.org/headers"); err != nil {
		return err
	}

	headers := d.Headers()
	logr.Infow("captured headers",
		"user-agent", headers["user-agent"],
		"accept", headers["accept"],
		"total", len(headers),
	)

	return nil
}

// exampleProxy routes the session through the configured proxy. Skipped when
// no proxy is configured.
func exampleProxy(cfg *config.Config, logr *zap.SugaredLogger) error {
	if !cfg.Proxy.Enabled() {
		logr.Info("no proxy configured, skipping proxy example")
		return nil
	}

	opts := []driver.Option{
		driver.WithLogger(logr),
		driver.WithProxy(cfg.Proxy.Host, cfg.Proxy.Port),
	}
	if cfg.Proxy.Username != "" || cfg.Proxy.Password != "" {
		opts = append(opts, driver.WithProxyAuth(cfg.Proxy.Username, cfg.Proxy.Password))
	}

	d, err := driver.New(opts...)
	if err != nil {
		return err
	}
	defer d.Quit()

	if err := d.Get("https://httpbin.org/ip"); err != nil {
		return err
	}
	source, err := d.PageSource()
	if err != nil {
		return err
	}
	logr.Infow("proxy response", "body", source)

	return nil
}

// exampleFullSurface exercises element queries, script execution, cookies,
// and offline snapshot parsing in one session.
func exampleFullSurface(cfg *config.Config, logr *zap.SugaredLogger) error {
	d, err := driver.New(driver.WithLogger(logr), driver.WithTiming(cfg.Timing))
	if err != nil {
		return err
	}
	defer d.Quit()

	if err := d.Get("https://example.com"); err != nil {
		return err
	}

	paragraphs, err := d.FindElements(driver.ByTagName, "p")
	if err != nil {
		return err
	}
	logr.Infow("found paragraphs", "count", len(paragraphs))

	result, err := d.ExecuteScript("return document.title;")
	if err != nil {
		return err
	}
	logr.Infow("title via script", "result", result)

	cookies, err := d.Cookies()
	if err != nil {
		return err
	}
	logr.Infow("cookies", "count", len(cookies))

	snap, err := d.Snapshot()
	if err != nil {
		return err
	}
	for _, link := range snap.Links() {
		logr.Infow("page link", "href", link.Href, "text", link.Text)
	}

	return nil
}

// exampleScopedSession relies on With to release the session on every exit
// path instead of a manual Quit.
func exampleScopedSession(cfg *config.Config, logr *zap.SugaredLogger) error {
	return driver.With(func(d *driver.Driver) error {
		if err := d.Get("https://example.com"); err != nil {
			return err
		}
		title, err := d.Title()
		if err != nil {
			return err
		}
		logr.Infow("scoped session", "title", title)
		return nil
	}, driver.WithLogger(logr))
}

// exampleCustomOptions demonstrates window sizing, incognito mode, and
// pass-through launcher flags alongside the stealth defaults.
func exampleCustomOptions(cfg *config.Config, logr *zap.SugaredLogger) error {
	d, err := driver.New(
		driver.WithLogger(logr),
		driver.WithWindowSize(1920, 1080),
		driver.WithIncognito(),
		driver.WithFlag("lang", "en-US"),
	)
	if err != nil {
		return err
	}
	defer d.Quit()

	if err := d.Get("https://example.com"); err != nil {
		return err
	}

	w, h, err := d.WindowSize()
	if err != nil {
		return err
	}
	logr.Infow("window size", "size", fmt.Sprintf("%dx%d", w, h))

	source, err := d.PageSource()
	if err != nil {
		return err
	}
	snap, err := snapshot.Parse(source)
	if err != nil {
		return err
	}
	logr.Infow("snapshot", "title", snap.Title(), "links", len(snap.Links()))

	return nil
}
