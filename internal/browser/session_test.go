package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ledgerline/invoiceflow/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(driver *MockDriver) *Session {
	return NewSession(Config{
		NewDriver: func(_ context.Context) (Driver, error) {
			return driver, nil
		},
		DashboardURL: "https://dashboard.test/my-dashboard",
		PollInterval: time.Millisecond,
		WaitCeiling:  time.Millisecond,
	})
}

func TestCaptureSuccess(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "week.png")

	// Pre-existing file must be overwritten, not left alongside a new one.
	require.NoError(t, os.WriteFile(output, []byte("stale"), 0o600))

	driver := NewMockDriver()
	driver.ScreenshotFn = func(_ context.Context) ([]byte, error) {
		return []byte("fresh screenshot"), nil
	}

	session := newTestSession(driver)
	creds := Credentials{Username: "user", Password: "pw"}
	week := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	err := session.Capture(context.Background(), creds, week, output)
	require.NoError(t, err)
	assert.Equal(t, StateCaptured, session.State())
	assert.True(t, driver.Closed, "browser must be released on success")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "fresh screenshot", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one file at the output path")

	// Navigated twice to the week-parameterized URL: once to load, once to
	// clear the cookie popup.
	require.Len(t, driver.NavigatedURLs, 2)
	assert.Equal(t, "https://dashboard.test/my-dashboard?date=2024-01-01", driver.NavigatedURLs[0])
	assert.Equal(t, driver.NavigatedURLs[0], driver.NavigatedURLs[1])
}

func TestCaptureCompositeKeystroke(t *testing.T) {
	driver := NewMockDriver()
	session := newTestSession(driver)

	output := filepath.Join(t.TempDir(), "week.png")
	err := session.Capture(context.Background(), Credentials{Username: "user", Password: "pw"}, time.Now(), output)
	require.NoError(t, err)

	require.Len(t, driver.SentKeys, 1)
	assert.Equal(t, "user\tpw\t\n", driver.SentKeys[0])
}

func TestCaptureLoginTimeout(t *testing.T) {
	driver := NewMockDriver()
	driver.ElementInteractableFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}

	session := newTestSession(driver)
	output := filepath.Join(t.TempDir(), "week.png")

	err := session.Capture(context.Background(), Credentials{}, time.Now(), output)

	var timeoutErr *common.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "login form", timeoutErr.Stage)
	assert.Equal(t, StateFailed, session.State())
	assert.True(t, driver.Closed, "browser must be released on timeout")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no partial file on failure")
}

func TestCaptureDashboardTimeout(t *testing.T) {
	driver := NewMockDriver()
	driver.TextVisibleFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}

	session := newTestSession(driver)
	output := filepath.Join(t.TempDir(), "week.png")

	err := session.Capture(context.Background(), Credentials{}, time.Now(), output)

	var timeoutErr *common.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "dashboard", timeoutErr.Stage)
	assert.True(t, driver.Closed)
}

func TestCaptureAcceptsAlternateWeekLabel(t *testing.T) {
	driver := NewMockDriver()
	driver.TextVisibleFn = func(_ context.Context, text string) (bool, error) {
		switch text {
		case dashboardTitleMarker, weekLabelMarkerAlt:
			return true, nil
		default:
			return false, nil
		}
	}

	session := newTestSession(driver)
	output := filepath.Join(t.TempDir(), "week.png")

	err := session.Capture(context.Background(), Credentials{}, time.Now(), output)
	require.NoError(t, err)
	assert.Equal(t, StateCaptured, session.State())
}

func TestCaptureLaunchFailure(t *testing.T) {
	session := NewSession(Config{
		NewDriver: func(_ context.Context) (Driver, error) {
			return nil, errors.New("no chrome binary")
		},
	})

	err := session.Capture(context.Background(), Credentials{}, time.Now(), "unused.png")

	var automationErr *common.AutomationError
	require.ErrorAs(t, err, &automationErr)
	assert.Equal(t, "launch", automationErr.Stage)
	assert.Equal(t, StateFailed, session.State())
}

func TestCaptureScreenshotFailure(t *testing.T) {
	driver := NewMockDriver()
	driver.ScreenshotFn = func(_ context.Context) ([]byte, error) {
		return nil, errors.New("page crashed")
	}

	session := newTestSession(driver)
	output := filepath.Join(t.TempDir(), "week.png")

	err := session.Capture(context.Background(), Credentials{}, time.Now(), output)

	var automationErr *common.AutomationError
	require.ErrorAs(t, err, &automationErr)
	assert.True(t, driver.Closed)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCaptureHonorsCancellation(t *testing.T) {
	driver := NewMockDriver()
	driver.ElementInteractableFn = func(_ context.Context, _ string) (bool, error) {
		return false, nil
	}

	session := NewSession(Config{
		NewDriver: func(_ context.Context) (Driver, error) {
			return driver, nil
		},
		PollInterval: time.Millisecond,
		WaitCeiling:  time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := session.Capture(ctx, Credentials{}, time.Now(), filepath.Join(t.TempDir(), "week.png"))
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, driver.Closed)
}
