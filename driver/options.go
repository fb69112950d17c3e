package driver

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"go.uber.org/zap"

	"github.com/mohammedbenserya/stealthium/config"
	"github.com/mohammedbenserya/stealthium/logger"
	"github.com/mohammedbenserya/stealthium/storage"
)

// Option customizes a Driver at construction time.
type Option func(*options)

type options struct {
	headless  bool
	incognito bool

	proxyHost string
	proxyPort int
	proxyUser string
	proxyPass string

	windowW   int
	windowH   int
	userAgent string
	bin       string

	// extra pass-through launcher flags, applied after the stealth set so
	// callers can override anything.
	flags map[string][]string

	log         *zap.SugaredLogger
	timing      config.TimingConfig
	humanInput  bool
	pageTimeout time.Duration
	store       storage.StateStore
}

func defaultOptions() *options {
	def := config.Default()
	w, h := randomViewport(def.Browser.MinViewport, def.Browser.MaxViewport)

	return &options{
		headless:    def.Browser.Headless,
		windowW:     w,
		windowH:     h,
		userAgent:   def.Browser.UserAgents[rand.Intn(len(def.Browser.UserAgents))],
		flags:       map[string][]string{},
		log:         logger.Nop(),
		timing:      def.Timing,
		pageTimeout: 30 * time.Second,
		store:       storage.NewMemStore(),
	}
}

func (o *options) validate() error {
	if o.proxyHost == "" && (o.proxyUser != "" || o.proxyPass != "") {
		return fmt.Errorf("proxy credentials require a proxy host")
	}
	if o.proxyHost != "" && (o.proxyPort <= 0 || o.proxyPort > 65535) {
		return fmt.Errorf("proxy port must be within 1-65535")
	}
	if o.windowW <= 0 || o.windowH <= 0 {
		return fmt.Errorf("window size must be positive")
	}
	if o.pageTimeout <= 0 {
		return fmt.Errorf("page timeout must be positive")
	}
	return nil
}

func (o *options) proxyAddr() string {
	return fmt.Sprintf("%s:%d", o.proxyHost, o.proxyPort)
}

// WithHeadless toggles headless mode. Drivers are headless by default.
func WithHeadless(headless bool) Option {
	return func(o *options) { o.headless = headless }
}

// WithIncognito runs the session inside an incognito browser context.
func WithIncognito() Option {
	return func(o *options) { o.incognito = true }
}

// WithProxy routes all browser traffic through the given proxy endpoint.
func WithProxy(host string, port int) Option {
	return func(o *options) {
		o.proxyHost = host
		o.proxyPort = port
	}
}

// WithProxyAuth supplies credentials for a proxy configured via WithProxy.
func WithProxyAuth(username, password string) Option {
	return func(o *options) {
		o.proxyUser = username
		o.proxyPass = password
	}
}

// WithWindowSize overrides the randomized default window and viewport size.
func WithWindowSize(width, height int) Option {
	return func(o *options) {
		o.windowW = width
		o.windowH = height
	}
}

// WithUserAgent overrides the randomized default user agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithBrowserBin points the launcher at a specific browser binary.
func WithBrowserBin(path string) Option {
	return func(o *options) { o.bin = path }
}

// WithFlag passes an arbitrary flag to the browser launcher. Flags set here
// are applied last, so they win over the built-in stealth set.
func WithFlag(name string, values ...string) Option {
	return func(o *options) { o.flags[name] = values }
}

// WithLogger attaches a logger to the driver. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithTiming sets the pacing bounds for human-like input and enables it for
// element clicks, typing, and scrolling.
func WithTiming(t config.TimingConfig) Option {
	return func(o *options) {
		o.timing = t
		o.humanInput = true
	}
}

// WithPageTimeout bounds navigation and element lookups.
func WithPageTimeout(d time.Duration) Option {
	return func(o *options) { o.pageTimeout = d }
}

// WithStore sets the backend used by SaveSession and RestoreSession.
func WithStore(s storage.StateStore) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// FromConfig maps a loaded configuration onto driver options.
func FromConfig(cfg *config.Config) []Option {
	opts := []Option{
		WithHeadless(cfg.Browser.Headless),
		WithTiming(cfg.Timing),
	}
	if cfg.Browser.Incognito {
		opts = append(opts, WithIncognito())
	}
	if cfg.Browser.Bin != "" {
		opts = append(opts, WithBrowserBin(cfg.Browser.Bin))
	}
	if len(cfg.Browser.UserAgents) > 0 {
		opts = append(opts, WithUserAgent(cfg.Browser.UserAgents[rand.Intn(len(cfg.Browser.UserAgents))]))
	}
	if cfg.Browser.MinViewport > 0 && cfg.Browser.MaxViewport > cfg.Browser.MinViewport {
		opts = append(opts, WithWindowSize(randomViewport(cfg.Browser.MinViewport, cfg.Browser.MaxViewport)))
	}
	if cfg.Proxy.Enabled() {
		opts = append(opts, WithProxy(cfg.Proxy.Host, cfg.Proxy.Port))
		if cfg.Proxy.Username != "" || cfg.Proxy.Password != "" {
			opts = append(opts, WithProxyAuth(cfg.Proxy.Username, cfg.Proxy.Password))
		}
	}
	return opts
}

// buildLauncher translates options into launcher flags. The stealth set
// removes Chrome's automation tells before the caller's flags are applied.
func buildLauncher(o *options) *launcher.Launcher {
	l := launcher.New().
		Bin(o.bin).
		Leakless(false).
		Headless(o.headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-features", "IsolateOrigins,site-per-process").
		Set("disable-extensions").
		Set("disable-component-update").
		Set("disable-client-side-phishing-detection").
		Set("window-size", fmt.Sprintf("%d,%d", o.windowW, o.windowH))

	if o.userAgent != "" {
		l = l.Set("user-agent", o.userAgent)
	}
	if o.proxyHost != "" {
		l = l.Proxy(o.proxyAddr())
	}
	for name, values := range o.flags {
		l = l.Set(flags.Flag(name), values...)
	}

	return l
}

// randomViewport picks a width in [min,max] and derives a common 16:9 height,
// so sessions do not share one static fingerprintable size.
func randomViewport(min, max int) (int, int) {
	if min <= 0 {
		min = 1024
	}
	if max <= min {
		max = min + 200
	}

	w := min + rand.Intn(max-min+1)
	h := int(math.Round(float64(w) * 0.5625))

	return w, h
}
