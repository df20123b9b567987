package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ledgerline/invoiceflow/internal/common"
)

// State is the automation session's position in its fixed sequence.
type State string

// Session states. Failed is terminal and reachable from any other state.
const (
	StateLaunching         State = "launching"
	StateAwaitingLogin     State = "awaiting-login"
	StateAuthenticating    State = "authenticating"
	StateAwaitingDashboard State = "awaiting-dashboard"
	StateCaptured          State = "captured"
	StateFailed            State = "failed"
)

// loginFieldSelector targets the dashboard's login form. The same field
// receives username, password and submit via tab order; see Capture.
const loginFieldSelector = `input[name="email"]`

// Dashboard readiness markers. The title is stable; the week label exists in
// two phrasings because the site A/B-tests its copy.
const (
	dashboardTitleMarker = "Spotlight on your top activities"
	weekLabelMarker      = "in the week"
	weekLabelMarkerAlt   = "so far this week"
)

// Defaults for the wait policy.
const (
	DefaultDashboardURL = "https://app.crossover.com/x/dashboard/contractor/my-dashboard"
	DefaultPollInterval = 200 * time.Millisecond
	DefaultWaitCeiling  = 300 * time.Second
)

// Credentials are the dashboard login credentials.
type Credentials struct {
	Username string
	Password string
}

// Config holds the session configuration.
type Config struct {
	// NewDriver launches the browser; defaults to NewChromeDriver.
	NewDriver DriverFactory
	// DashboardURL is the dashboard page, parameterized by week date.
	DashboardURL string
	// PollInterval is the fixed probe interval.
	PollInterval time.Duration
	// WaitCeiling bounds each wait stage.
	WaitCeiling time.Duration
}

// Session drives one screenshot capture. Create a fresh session per
// invocation; concurrent captures must not share one.
type Session struct {
	newDriver    DriverFactory
	logger       *slog.Logger
	dashboardURL string
	state        State
	pollInterval time.Duration
	waitCeiling  time.Duration
}

// NewSession creates a session from the given configuration.
func NewSession(cfg Config) *Session {
	newDriver := cfg.NewDriver
	if newDriver == nil {
		newDriver = NewChromeDriver
	}
	dashboardURL := cfg.DashboardURL
	if dashboardURL == "" {
		dashboardURL = DefaultDashboardURL
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	waitCeiling := cfg.WaitCeiling
	if waitCeiling <= 0 {
		waitCeiling = DefaultWaitCeiling
	}

	return &Session{
		newDriver:    newDriver,
		dashboardURL: dashboardURL,
		pollInterval: pollInterval,
		waitCeiling:  waitCeiling,
		state:        StateLaunching,
		logger:       slog.Default().With("component", "browser"),
	}
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Capture signs in to the dashboard for the given week and writes a
// screenshot to outputPath, overwriting any existing file. On failure no
// partial file is left behind. The browser process is released on every exit
// path.
func (s *Session) Capture(ctx context.Context, creds Credentials, weekDate time.Time, outputPath string) error {
	err := s.capture(ctx, creds, weekDate, outputPath)
	if err != nil {
		s.state = StateFailed
		return err
	}
	s.state = StateCaptured
	return nil
}

func (s *Session) capture(ctx context.Context, creds Credentials, weekDate time.Time, outputPath string) error {
	s.state = StateLaunching
	driver, err := s.newDriver(ctx)
	if err != nil {
		return &common.AutomationError{Stage: "launch", Err: err}
	}
	defer func() {
		if closeErr := driver.Close(); closeErr != nil {
			s.logger.Warn("Failed to close browser", "error", closeErr)
		}
	}()

	targetURL := fmt.Sprintf("%s?date=%s", s.dashboardURL, weekDate.Format("2006-01-02"))
	s.logger.Info("Capturing timesheet screenshot", "url", targetURL, "output", outputPath)

	if err := driver.Navigate(ctx, targetURL); err != nil {
		return &common.AutomationError{Stage: "navigate", Err: err}
	}

	s.state = StateAwaitingLogin
	if err := s.await(ctx, "login form", func(ctx context.Context) (bool, error) {
		return driver.ElementInteractable(ctx, loginFieldSelector)
	}); err != nil {
		return err
	}

	// Reload once so the cookie-consent popup no longer covers the form.
	if err := driver.Navigate(ctx, targetURL); err != nil {
		return &common.AutomationError{Stage: "navigate", Err: err}
	}
	if err := s.await(ctx, "login form", func(ctx context.Context) (bool, error) {
		return driver.ElementInteractable(ctx, loginFieldSelector)
	}); err != nil {
		return err
	}

	s.state = StateAuthenticating
	// One composite keystroke fills both fields and submits, relying on the
	// page's tab order. Accepted brittleness: a layout change upstream
	// breaks this silently.
	keys := creds.Username + "\t" + creds.Password + "\t" + "\n"
	if err := driver.SendKeys(ctx, loginFieldSelector, keys); err != nil {
		return &common.AutomationError{Stage: "login", Err: err}
	}

	s.state = StateAwaitingDashboard
	if err := s.await(ctx, "dashboard", func(ctx context.Context) (bool, error) {
		return dashboardLoaded(ctx, driver)
	}); err != nil {
		return err
	}

	shot, err := driver.Screenshot(ctx)
	if err != nil {
		return &common.AutomationError{Stage: "screenshot", Err: err}
	}

	if err := writeAtomic(outputPath, shot); err != nil {
		return &common.AutomationError{Stage: "write output", Err: err}
	}

	s.logger.Info("Screenshot captured", "output", outputPath, "bytes", len(shot))

	return nil
}

// dashboardLoaded reports whether both readiness markers are visible.
func dashboardLoaded(ctx context.Context, driver Driver) (bool, error) {
	title, err := driver.TextVisible(ctx, dashboardTitleMarker)
	if err != nil || !title {
		return false, err
	}

	week, err := driver.TextVisible(ctx, weekLabelMarker)
	if err != nil {
		return false, err
	}
	if week {
		return true, nil
	}

	return driver.TextVisible(ctx, weekLabelMarkerAlt)
}

// await polls the probe at the fixed interval until it reports true or the
// wait ceiling is exceeded.
func (s *Session) await(ctx context.Context, stage string, probe func(context.Context) (bool, error)) error {
	deadline := time.Now().Add(s.waitCeiling)
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := probe(ctx)
		if err != nil {
			return &common.AutomationError{Stage: stage, Err: err}
		}
		if ok {
			return nil
		}
		if !time.Now().Before(deadline) {
			return &common.TimeoutError{Stage: stage, Ceiling: s.waitCeiling}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// writeAtomic writes data to path via a temp file and rename, so the target
// is either the previous file or the complete new one.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".screenshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
