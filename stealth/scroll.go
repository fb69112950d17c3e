package stealth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-rod/rod"

	"github.com/mohammedbenserya/stealthium/config"
)

// ScrollToElement scrolls an element into view in a human-like way.
func ScrollToElement(page *rod.Page, el *rod.Element, cfg config.TimingConfig) error {
	currentScroll, err := page.Eval(`() => window.scrollY`)
	if err != nil {
		return fmt.Errorf("get scroll position: %w", err)
	}

	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("scroll into view: %w", err)
	}

	ShortPause(cfg)

	// If the viewport actually moved, linger a bit like a reader would.
	newScroll, err := page.Eval(`() => window.scrollY`)
	if err == nil && newScroll.Value.Num() != currentScroll.Value.Num() {
		time.Sleep(RandomDelay(max(400, cfg.MinDelayMs), max(1200, cfg.MaxDelayMs)))
	}

	return nil
}

// SmoothScrollDown performs a smooth scroll down animation (more human-like
// than an instant jump). Distance is broken into randomized micro-scrolls.
func SmoothScrollDown(page *rod.Page, distance int, cfg config.TimingConfig) error {
	steps := 8 + rand.Intn(5)
	stepDistance := distance / steps

	for i := 0; i < steps; i++ {
		if err := page.Mouse.Scroll(0, float64(stepDistance), 1); err != nil {
			return err
		}
		time.Sleep(time.Duration(20+rand.Intn(30)) * time.Millisecond)
	}

	return nil
}
