package driver

import (
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedbenserya/stealthium/config"
)

func buildOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func TestDefaultOptionsAreValid(t *testing.T) {
	t.Parallel()

	o := defaultOptions()
	require.NoError(t, o.validate())

	assert.True(t, o.headless)
	assert.False(t, o.incognito)
	assert.NotEmpty(t, o.userAgent)
	assert.Greater(t, o.windowW, 0)
	assert.Greater(t, o.windowH, 0)
	assert.NotNil(t, o.log)
	assert.NotNil(t, o.store)
}

func TestOptionApplication(t *testing.T) {
	t.Parallel()

	o := buildOptions(
		WithHeadless(false),
		WithIncognito(),
		WithProxy("proxy.internal", 8080),
		WithProxyAuth("user", "secret"),
		WithWindowSize(1920, 1080),
		WithUserAgent("test-agent"),
		WithBrowserBin("/opt/chrome"),
		WithFlag("lang", "en-US"),
		WithPageTimeout(5*time.Second),
	)
	require.NoError(t, o.validate())

	assert.False(t, o.headless)
	assert.True(t, o.incognito)
	assert.Equal(t, "proxy.internal:8080", o.proxyAddr())
	assert.Equal(t, "user", o.proxyUser)
	assert.Equal(t, 1920, o.windowW)
	assert.Equal(t, 1080, o.windowH)
	assert.Equal(t, "test-agent", o.userAgent)
	assert.Equal(t, "/opt/chrome", o.bin)
	assert.Equal(t, []string{"en-US"}, o.flags["lang"])
	assert.Equal(t, 5*time.Second, o.pageTimeout)
}

func TestValidateRejectsBadOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{
			name:    "credentials without proxy",
			opts:    []Option{WithProxyAuth("user", "secret")},
			wantErr: "proxy credentials",
		},
		{
			name:    "proxy port out of range",
			opts:    []Option{WithProxy("proxy.internal", 0)},
			wantErr: "proxy port",
		},
		{
			name:    "non-positive window",
			opts:    []Option{WithWindowSize(0, 600)},
			wantErr: "window size",
		},
		{
			name:    "non-positive timeout",
			opts:    []Option{WithPageTimeout(0)},
			wantErr: "page timeout",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := buildOptions(tc.opts...).validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBuildLauncherFlags(t *testing.T) {
	t.Parallel()

	o := buildOptions(
		WithProxy("proxy.internal", 8080),
		WithWindowSize(1920, 1080),
		WithUserAgent("test-agent"),
		WithFlag("lang", "en-US"),
	)
	l := buildLauncher(o)

	assert.Equal(t, "AutomationControlled", l.Get("disable-blink-features"))
	assert.Equal(t, "1920,1080", l.Get("window-size"))
	assert.Equal(t, "test-agent", l.Get("user-agent"))
	assert.Equal(t, "proxy.internal:8080", l.Get(flags.ProxyServer))
	assert.Equal(t, "en-US", l.Get("lang"))
	assert.True(t, l.Has("disable-component-update"))
}

func TestBuildLauncherHeadful(t *testing.T) {
	t.Parallel()

	l := buildLauncher(buildOptions(WithHeadless(false)))
	assert.False(t, l.Has(flags.Headless))
}

func TestCallerFlagsWinOverStealthSet(t *testing.T) {
	t.Parallel()

	l := buildLauncher(buildOptions(WithFlag("disable-blink-features", "none")))
	assert.Equal(t, "none", l.Get("disable-blink-features"))
}

func TestRandomViewport(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		w, h := randomViewport(1280, 1600)
		assert.GreaterOrEqual(t, w, 1280)
		assert.LessOrEqual(t, w, 1600)
		// Height tracks a 16:9 ratio of the width.
		assert.InDelta(t, float64(w)*0.5625, float64(h), 1)
	}
}

func TestRandomViewportDegenerateBounds(t *testing.T) {
	t.Parallel()

	w, h := randomViewport(0, 0)
	assert.Greater(t, w, 0)
	assert.Greater(t, h, 0)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Browser.Headless = false
	cfg.Browser.Incognito = true
	cfg.Browser.Bin = "/opt/chrome"
	cfg.Browser.UserAgents = []string{"only-agent"}
	cfg.Proxy = config.ProxyConfig{Host: "proxy.internal", Port: 8080, Username: "user", Password: "secret"}

	o := buildOptions(FromConfig(cfg)...)
	require.NoError(t, o.validate())

	assert.False(t, o.headless)
	assert.True(t, o.incognito)
	assert.Equal(t, "/opt/chrome", o.bin)
	assert.Equal(t, "only-agent", o.userAgent)
	assert.Equal(t, "proxy.internal:8080", o.proxyAddr())
	assert.Equal(t, "secret", o.proxyPass)
	assert.True(t, o.humanInput)
	assert.Equal(t, cfg.Timing, o.timing)
}

func TestFromConfigHonorsViewportBounds(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Browser.MinViewport = 800
	cfg.Browser.MaxViewport = 900

	for i := 0; i < 50; i++ {
		o := buildOptions(FromConfig(cfg)...)
		require.NoError(t, o.validate())
		assert.GreaterOrEqual(t, o.windowW, 800)
		assert.LessOrEqual(t, o.windowW, 900)
		assert.InDelta(t, float64(o.windowW)*0.5625, float64(o.windowH), 1)
	}
}
