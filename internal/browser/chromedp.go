package browser

import (
	"context"
	"fmt"
	"strconv"

	"github.com/chromedp/chromedp"
)

// ChromeDriver implements Driver on top of a headless Chrome instance.
type ChromeDriver struct {
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewChromeDriver launches a headless Chrome with a fixed window size.
// Sandboxing is disabled because the tool runs inside containers without the
// kernel features Chrome's sandbox needs.
func NewChromeDriver(ctx context.Context) (Driver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Start the browser process now so launch failures surface here rather
	// than on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &ChromeDriver{
		browserCtx:  browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Navigate implements Driver.
func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	return d.run(ctx, chromedp.Navigate(url))
}

// ElementInteractable implements Driver.
func (d *ChromeDriver) ElementInteractable(ctx context.Context, selector string) (bool, error) {
	expr := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el || el.disabled) { return false; }
		const style = window.getComputedStyle(el);
		return style.visibility !== 'hidden' && el.offsetParent !== null;
	})()`, strconv.Quote(selector))

	var interactable bool
	if err := d.run(ctx, chromedp.Evaluate(expr, &interactable)); err != nil {
		return false, err
	}
	return interactable, nil
}

// SendKeys implements Driver.
func (d *ChromeDriver) SendKeys(ctx context.Context, selector, keys string) error {
	return d.run(ctx, chromedp.SendKeys(selector, keys, chromedp.ByQuery))
}

// TextVisible implements Driver.
func (d *ChromeDriver) TextVisible(ctx context.Context, text string) (bool, error) {
	expr := fmt.Sprintf(`(() => {
		const body = document.body;
		return body !== null && body.innerText.includes(%s);
	})()`, strconv.Quote(text))

	var visible bool
	if err := d.run(ctx, chromedp.Evaluate(expr, &visible)); err != nil {
		return false, err
	}
	return visible, nil
}

// Screenshot implements Driver.
func (d *ChromeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close implements Driver. It waits for the browser process to exit so no
// process is leaked.
func (d *ChromeDriver) Close() error {
	err := chromedp.Cancel(d.browserCtx)
	d.cancelCtx()
	d.cancelAlloc()
	return err
}

// run executes actions against the browser, bailing out early if the
// caller's context is already done.
func (d *ChromeDriver) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(d.browserCtx, actions...)
}
