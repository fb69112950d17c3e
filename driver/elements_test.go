package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		by        By
		value     string
		wantCSS   string
		wantXPath string
	}{
		{"css selector", ByCSSSelector, "div.card > a", "div.card > a", ""},
		{"id", ByID, "login", "#login", ""},
		{"class name", ByClassName, "nav-item", ".nav-item", ""},
		{"name", ByName, "email", `[name="email"]`, ""},
		{"tag name", ByTagName, "h1", "h1", ""},
		{"xpath", ByXPath, "//div[@id='x']", "", "//div[@id='x']"},
		{"link text", ByLinkText, "Sign in", "", "//a[normalize-space(.)='Sign in']"},
		{"partial link text", ByPartialLinkText, "Sign", "", "//a[contains(normalize-space(.), 'Sign')]"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			css, xpath, err := tc.by.resolve(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCSS, css)
			assert.Equal(t, tc.wantXPath, xpath)
		})
	}
}

func TestByResolveQuotedLinkText(t *testing.T) {
	t.Parallel()

	// Single quotes in the value must not break out of the XPath literal.
	_, xpath, err := ByLinkText.resolve("John's profile")
	require.NoError(t, err)
	assert.Equal(t, `//a[normalize-space(.)="John's profile"]`, xpath)

	_, xpath, err = ByPartialLinkText.resolve(`say "hi"`)
	require.NoError(t, err)
	assert.Equal(t, `//a[contains(normalize-space(.), 'say "hi"')]`, xpath)
}

func TestXPathLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Sign in", "'Sign in'"},
		{"single quote", "John's", `"John's"`},
		{"double quote", `say "hi"`, `'say "hi"'`},
		{"both quotes", `it's "here"`, `concat('it', "'", 's "here"')`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, xpathLiteral(tc.in))
		})
	}
}

func TestByResolveUnknownStrategy(t *testing.T) {
	t.Parallel()

	_, _, err := By("telepathy").resolve("h1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telepathy")
}

func TestByResolveReturnsExactlyOneForm(t *testing.T) {
	t.Parallel()

	for _, by := range []By{
		ByCSSSelector, ByXPath, ByID, ByName,
		ByTagName, ByClassName, ByLinkText, ByPartialLinkText,
	} {
		css, xpath, err := by.resolve("x")
		require.NoError(t, err)
		assert.True(t, (css == "") != (xpath == ""), "strategy %q must yield css xor xpath", by)
	}
}
