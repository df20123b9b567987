package main

import (
	"fmt"
	"time"

	"github.com/ledgerline/invoiceflow/internal/browser"
	"github.com/ledgerline/invoiceflow/internal/common"
	"github.com/ledgerline/invoiceflow/internal/config"
	"github.com/ledgerline/invoiceflow/internal/crossover"
	"github.com/ledgerline/invoiceflow/internal/httpx"
	"github.com/ledgerline/invoiceflow/internal/invoice"
	"github.com/ledgerline/invoiceflow/internal/modulebank"
	"github.com/ledgerline/invoiceflow/internal/service"
	"github.com/ledgerline/invoiceflow/internal/store"
	"github.com/spf13/viper"
)

// newHTTPClient builds the shared typed HTTP client. One instance serves
// both gateways; it is safe for concurrent use.
func newHTTPClient() *httpx.Client {
	return httpx.NewClient(httpx.Config{
		Timeout: viper.GetDuration("http.timeout"),
	})
}

// newBankGateway builds the banking gateway from configuration.
func newBankGateway(client *httpx.Client) (service.BankGateway, error) {
	return modulebank.NewClient(modulebank.Config{
		HTTPClient: client,
		BaseURL:    viper.GetString("modulbank.base_url"),
	})
}

// newTimesheetGateway builds the timesheet gateway from configuration.
func newTimesheetGateway(client *httpx.Client) (service.TimesheetGateway, error) {
	return crossover.NewClient(crossover.Config{
		HTTPClient:      client,
		BaseURL:         viper.GetString("crossover.base_url"),
		WrappedPayments: viper.GetBool("crossover.wrapped_payments"),
	})
}

// newCaptureSession builds a fresh automation session from configuration.
func newCaptureSession() *browser.Session {
	return browser.NewSession(browser.Config{
		DashboardURL: viper.GetString("browser.dashboard_url"),
		PollInterval: viper.GetDuration("browser.poll_interval"),
		WaitCeiling:  viper.GetDuration("browser.wait_ceiling"),
	})
}

// openSettings opens the settings store at the configured or default path.
func openSettings() (service.Settings, error) {
	path := config.ExpandPath(viper.GetString("settings.path"))
	if path == "" {
		defaultPath, err := config.DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return store.NewSettingsStore(path)
}

// bankToken returns the configured banking API token.
func bankToken() (string, error) {
	token := viper.GetString("modulbank.token")
	if token == "" {
		return "", fmt.Errorf("%w: modulbank.token (INVOICEFLOW_MODULBANK_TOKEN)", common.ErrMissingConfig)
	}
	return token, nil
}

// timesheetCredentials returns the configured timesheet platform credentials.
func timesheetCredentials() (string, string, error) {
	username := viper.GetString("crossover.username")
	password := viper.GetString("crossover.password")
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%w: crossover.username and crossover.password", common.ErrMissingConfig)
	}
	return username, password, nil
}

// parseWeekFlag resolves the --week flag: an explicit 2006-01-02 date, or
// the Monday of the current week when empty.
func parseWeekFlag(value string) (time.Time, error) {
	if value == "" {
		return invoice.StartOfWeek(time.Now()), nil
	}
	week, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week date %q (expected 2006-01-02): %w", value, err)
	}
	return week, nil
}
