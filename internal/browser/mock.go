package browser

import "context"

// MockDriver is a scriptable Driver for testing session sequencing.
type MockDriver struct {
	// Functions that can be set by tests to control behavior.
	NavigateFn            func(ctx context.Context, url string) error
	ElementInteractableFn func(ctx context.Context, selector string) (bool, error)
	SendKeysFn            func(ctx context.Context, selector, keys string) error
	TextVisibleFn         func(ctx context.Context, text string) (bool, error)
	ScreenshotFn          func(ctx context.Context) ([]byte, error)

	// Call tracking.
	NavigatedURLs []string
	SentKeys      []string
	Closed        bool
}

// NewMockDriver creates a mock whose probes succeed immediately and whose
// screenshot is a one-byte placeholder.
func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

// Navigate implements Driver.
func (m *MockDriver) Navigate(ctx context.Context, url string) error {
	m.NavigatedURLs = append(m.NavigatedURLs, url)
	if m.NavigateFn != nil {
		return m.NavigateFn(ctx, url)
	}
	return nil
}

// ElementInteractable implements Driver.
func (m *MockDriver) ElementInteractable(ctx context.Context, selector string) (bool, error) {
	if m.ElementInteractableFn != nil {
		return m.ElementInteractableFn(ctx, selector)
	}
	return true, nil
}

// SendKeys implements Driver.
func (m *MockDriver) SendKeys(ctx context.Context, selector, keys string) error {
	m.SentKeys = append(m.SentKeys, keys)
	if m.SendKeysFn != nil {
		return m.SendKeysFn(ctx, selector, keys)
	}
	return nil
}

// TextVisible implements Driver.
func (m *MockDriver) TextVisible(ctx context.Context, text string) (bool, error) {
	if m.TextVisibleFn != nil {
		return m.TextVisibleFn(ctx, text)
	}
	return true, nil
}

// Screenshot implements Driver.
func (m *MockDriver) Screenshot(ctx context.Context) ([]byte, error) {
	if m.ScreenshotFn != nil {
		return m.ScreenshotFn(ctx)
	}
	return []byte{0x89}, nil
}

// Close implements Driver.
func (m *MockDriver) Close() error {
	m.Closed = true
	return nil
}

// Ensure MockDriver implements the Driver interface.
var _ Driver = (*MockDriver)(nil)
