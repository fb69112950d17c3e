package driver

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mohammedbenserya/stealthium/config"
	"github.com/mohammedbenserya/stealthium/stealth"
)

// By names a locator strategy, mirroring the WebDriver strategy names.
type By string

const (
	ByCSSSelector     By = "css selector"
	ByXPath           By = "xpath"
	ByID              By = "id"
	ByName            By = "name"
	ByTagName         By = "tag name"
	ByClassName       By = "class name"
	ByLinkText        By = "link text"
	ByPartialLinkText By = "partial link text"
)

// resolve translates a strategy plus value into either a CSS selector or an
// XPath expression. Exactly one of the two returns is non-empty.
func (b By) resolve(value string) (css, xpath string, err error) {
	switch b {
	case ByCSSSelector:
		return value, "", nil
	case ByID:
		return "#" + value, "", nil
	case ByClassName:
		return "." + value, "", nil
	case ByName:
		return fmt.Sprintf("[name=%q]", value), "", nil
	case ByTagName:
		return value, "", nil
	case ByXPath:
		return "", value, nil
	case ByLinkText:
		return "", fmt.Sprintf("//a[normalize-space(.)=%s]", xpathLiteral(value)), nil
	case ByPartialLinkText:
		return "", fmt.Sprintf("//a[contains(normalize-space(.), %s)]", xpathLiteral(value)), nil
	default:
		return "", "", fmt.Errorf("unknown locator strategy %q", string(b))
	}
}

// xpathLiteral renders s as an XPath 1.0 string literal. XPath has no escape
// sequences inside literals, so a value mixing both quote kinds must be
// assembled with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	var b strings.Builder
	b.WriteString("concat(")
	for i, p := range parts {
		if i > 0 {
			b.WriteString(`, "'", `)
		}
		b.WriteString("'" + p + "'")
	}
	b.WriteString(")")
	return b.String()
}

// Element wraps a located page element. Input methods pace themselves like a
// human when the driver was built with WithTiming.
type Element struct {
	el     *rod.Element
	page   *rod.Page
	timing config.TimingConfig
	human  bool
}

// FindElement locates the first element matching the strategy and value,
// waiting up to the page timeout for it to appear.
func (d *Driver) FindElement(by By, value string) (*Element, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}

	css, xpath, err := by.resolve(value)
	if err != nil {
		return nil, err
	}

	p := d.page.Timeout(d.opts.pageTimeout)

	var el *rod.Element
	if css != "" {
		el, err = p.Element(css)
	} else {
		el, err = p.ElementX(xpath)
	}
	if err != nil {
		return nil, fmt.Errorf("find element (%s=%s): %w", by, value, err)
	}

	return d.wrapElement(el), nil
}

// FindElements returns all elements currently matching the strategy and
// value. Unlike FindElement it does not wait; no match yields an empty slice.
func (d *Driver) FindElements(by By, value string) ([]*Element, error) {
	if err := d.ensureOpen(); err != nil {
		return nil, err
	}

	css, xpath, err := by.resolve(value)
	if err != nil {
		return nil, err
	}

	var els rod.Elements
	if css != "" {
		els, err = d.page.Elements(css)
	} else {
		els, err = d.page.ElementsX(xpath)
	}
	if err != nil {
		return nil, fmt.Errorf("find elements (%s=%s): %w", by, value, err)
	}

	out := make([]*Element, 0, len(els))
	for _, el := range els {
		out = append(out, d.wrapElement(el))
	}
	return out, nil
}

func (d *Driver) wrapElement(el *rod.Element) *Element {
	return &Element{
		el:     el,
		page:   d.page,
		timing: d.opts.timing,
		human:  d.opts.humanInput,
	}
}

// Text returns the visible text content of the element.
func (e *Element) Text() (string, error) {
	return e.el.Text()
}

// Attribute returns the value of the named attribute, or "" when the
// attribute is absent.
func (e *Element) Attribute(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// Click clicks the element. With human input enabled the pointer first
// travels a curved path to the element.
func (e *Element) Click() error {
	if e.human {
		if err := stealth.MoveToElementHuman(e.page, e.el, e.timing); err != nil {
			return err
		}
		stealth.ShortPause(e.timing)
	}
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

// SendKeys types text into the element. With human input enabled keystrokes
// are paced with variable delays and occasional corrected typos.
func (e *Element) SendKeys(text string) error {
	if e.human {
		return stealth.TypeHuman(e.el, text, e.timing)
	}
	return e.el.Input(text)
}

// ScrollIntoView brings the element into the viewport.
func (e *Element) ScrollIntoView() error {
	if e.human {
		return stealth.ScrollToElement(e.page, e.el, e.timing)
	}
	return e.el.ScrollIntoView()
}

// Rod exposes the underlying rod element for callers that need more than the
// wrapped surface.
func (e *Element) Rod() *rod.Element {
	return e.el
}
