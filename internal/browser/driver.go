// Package browser drives a headless browser through the fixed login and
// screenshot sequence used to capture the weekly timesheet dashboard.
package browser

import "context"

// Driver abstracts the headless browser so the session sequencing can be
// tested without a real browser process.
type Driver interface {
	// Navigate loads the given URL.
	Navigate(ctx context.Context, url string) error
	// ElementInteractable reports whether the element matched by the CSS
	// selector exists, is visible, and accepts input. A missing element is
	// false, not an error.
	ElementInteractable(ctx context.Context, selector string) (bool, error)
	// SendKeys types the key sequence into the element matched by the CSS
	// selector. Tab and newline characters are delivered as keystrokes.
	SendKeys(ctx context.Context, selector, keys string) error
	// TextVisible reports whether the text is currently visible on the page.
	TextVisible(ctx context.Context, text string) (bool, error)
	// Screenshot captures the full page as a PNG.
	Screenshot(ctx context.Context) ([]byte, error)
	// Close releases the browser process. It must be safe to call on every
	// exit path, including after failures.
	Close() error
}

// DriverFactory launches a fresh browser per automation session. Concurrent
// sessions each own their own process; there is no pooling.
type DriverFactory func(ctx context.Context) (Driver, error)
