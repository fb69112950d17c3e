package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapScript(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"function() { return document.title; }",
		wrapScript("return document.title;"),
	)
	assert.Equal(t,
		"function() { return arguments[0] + arguments[1]; }",
		wrapScript("return arguments[0] + arguments[1];"),
	)
}
