package driver

import (
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCookieParams(t *testing.T) {
	t.Parallel()

	cookies := []*proto.NetworkCookie{
		{
			Name:     "sid",
			Value:    "abc123",
			Domain:   ".example.com",
			Path:     "/",
			Expires:  proto.TimeSinceEpoch(1924992000),
			HTTPOnly: true,
			Secure:   true,
			SameSite: proto.NetworkCookieSameSiteLax,
		},
		nil,
		{
			Name:   "theme",
			Value:  "dark",
			Domain: "example.com",
			Path:   "/settings",
		},
	}

	params := toCookieParams(cookies)
	require.Len(t, params, 2)

	assert.Equal(t, "sid", params[0].Name)
	assert.Equal(t, "abc123", params[0].Value)
	assert.Equal(t, ".example.com", params[0].Domain)
	assert.True(t, params[0].HTTPOnly)
	assert.True(t, params[0].Secure)
	assert.Equal(t, proto.NetworkCookieSameSiteLax, params[0].SameSite)

	assert.Equal(t, "theme", params[1].Name)
	assert.Equal(t, "/settings", params[1].Path)
}

func TestToCookieParamsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, toCookieParams(nil))
	assert.Empty(t, toCookieParams([]*proto.NetworkCookie{nil, nil}))
}
