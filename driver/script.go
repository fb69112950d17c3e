package driver

import (
	"fmt"

	"github.com/go-rod/rod"
)

// wrapScript turns a WebDriver-style script body ("return ...;" with
// positional arguments[i]) into the function form the devtools protocol
// evaluates.
func wrapScript(script string) string {
	return "function() { " + script + " }"
}

// ExecuteScript evaluates a script body in the page, WebDriver-style: the
// body may use `return` and reads positional arguments via `arguments[i]`.
// The result is the JSON value the script returned, or nil.
func (d *Driver) ExecuteScript(script string, args ...interface{}) (interface{}, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}

	res, err := d.page.Timeout(d.opts.pageTimeout).Evaluate(rod.Eval(wrapScript(script), args...))
	if err != nil {
		return nil, fmt.Errorf("execute script: %w", err)
	}
	if res == nil {
		return nil, nil
	}
	return res.Value.Val(), nil
}
